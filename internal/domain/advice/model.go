package advice

import (
	"context"

	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/pkg/metrics"
)

// Source records how a response was produced.
type Source string

const (
	// SourceModel means the reply parsed into structured advice.
	SourceModel Source = "model"
	// SourceUnparsed means the reply arrived but held no usable JSON.
	SourceUnparsed Source = "unparsed"
	// SourceFallback means the call failed and static content was returned.
	SourceFallback Source = "fallback"
	// SourceOffline means no text generator is configured.
	SourceOffline Source = "offline"
)

// Request asks for personalised advice.
type Request struct {
	Profile health.SmokingProfile `json:"profile"`
	// Health overrides the computed score when set.
	Health *float64          `json:"health,omitempty"`
	Extra  map[string]string `json:"extra,omitempty"`
}

// Response is advisory content. Every field is populated, either from the
// model or from placeholders.
type Response struct {
	HealthRisks      []string            `json:"healthRisks"`
	QuitStrategies   []string            `json:"quitStrategies"`
	RecoveryTimeline map[string]string   `json:"recoveryTimeline"`
	MedicalStats     []string            `json:"medicalStats"`
	Motivation       string              `json:"motivation"`
	Source           Source              `json:"source"`
	Health           float64             `json:"health"`
	Usage            *metrics.TokenUsage `json:"usage,omitempty"`
}

// Prompt is one generation call: system instructions plus the user prompt.
type Prompt struct {
	System string
	User   string
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// TextGeneratorFunc adapts a function to TextGenerator.
type TextGeneratorFunc func(ctx context.Context, prompt Prompt) (string, error)

// Generate implements TextGenerator.
func (f TextGeneratorFunc) Generate(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}
