package health

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

// Reference cigarette used when a profile leaves nicotine or tar unset.
const (
	DefaultNicotineMg = 0.8
	DefaultTarMg      = 10.0
)

// SmokingProfile describes a smoking habit. Zero nicotine or tar means
// "use the reference cigarette".
type SmokingProfile struct {
	CigarettesPerDay float64 `json:"cigarettesPerDay" validate:"gte=0,lte=100"`
	YearsSmoked      float64 `json:"yearsSmoked" validate:"gte=0,lte=70"`
	NicotineMg       float64 `json:"nicotineMg,omitempty" validate:"omitempty,gte=0.1,lte=2"`
	TarMg            float64 `json:"tarMg,omitempty" validate:"omitempty,gte=1,lte=20"`
}

var validate = validator.New()

// WithDefaults returns a copy with the reference nicotine and tar filled in.
func (p SmokingProfile) WithDefaults() SmokingProfile {
	if p.NicotineMg <= 0 {
		p.NicotineMg = DefaultNicotineMg
	}
	if p.TarMg <= 0 {
		p.TarMg = DefaultTarMg
	}
	return p
}

// Validate checks the profile against the accepted input domain.
func (p SmokingProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return apperrors.Wrap(apperrors.CodeInvalidInput, describeValidation(err), err)
	}
	return nil
}

// IsSmoker reports whether the profile models any exposure at all.
func (p SmokingProfile) IsSmoker() bool {
	return p.CigarettesPerDay > 0 && p.YearsSmoked > 0
}

func describeValidation(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "invalid smoking profile"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", lowerFirst(fe.Field()), fe.Tag(), fe.Param()))
	}
	return strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
