package advice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/pkg/metrics"
)

// Config tunes the advice call.
type Config struct {
	SystemPrompt string
	// Timeout bounds the external call; zero leaves the caller's deadline.
	Timeout time.Duration
}

// Service produces personalised cessation advice.
type Service interface {
	// Advise never fails: upstream errors and unusable replies turn into
	// placeholder content.
	Advise(ctx context.Context, req Request) Response
	Resources() map[string][]string
}

type service struct {
	cfg       Config
	generator TextGenerator
	counter   *metrics.TokenCounter
	logger    *slog.Logger
}

// NewService wires the advice domain. A nil generator serves offline
// placeholders; a nil counter estimates usage by word count.
func NewService(cfg Config, generator TextGenerator, counter *metrics.TokenCounter, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		generator: generator,
		counter:   counter,
		logger:    logger.With("component", "advice.service"),
	}
}

func (s *service) Resources() map[string][]string {
	return StaticResources()
}

func (s *service) Advise(ctx context.Context, req Request) Response {
	profile := req.Profile.WithDefaults()
	score := health.Score(profile)
	if req.Health != nil {
		if override, ok := health.NormalizeScore(*req.Health); ok {
			score = override
		}
	}

	if s.generator == nil {
		resp := fallbackResponse(SourceOffline)
		resp.Health = score
		return resp
	}

	prompt := Prompt{System: s.systemPrompt(), User: BuildPrompt(profile, score, req.Extra)}
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("advice generation failed, serving fallback", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		resp := fallbackResponse(SourceFallback)
		resp.Health = score
		return resp
	}
	usage := s.counter.Usage(prompt.System+"\n"+prompt.User, reply)

	resp, err := parseReply(reply)
	if err != nil {
		s.logger.Info("advice reply not structured, returning raw text", "error", err)
		resp = unparsedResponse(strings.TrimSpace(reply))
	} else {
		resp = fillGaps(resp)
		resp.Source = SourceModel
	}
	resp.Health = score
	resp.Usage = &usage
	s.logger.Info("advice generated",
		"source", resp.Source,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return resp
}

func (s *service) systemPrompt() string {
	base := strings.TrimSpace(s.cfg.SystemPrompt)
	if base == "" {
		base = "You are a physician specialising in smoking cessation."
	}
	return base + " Respond ONLY with one JSON object using this shape: " +
		`{"health_risks":string[],"quit_strategies":string[],"recovery_timeline":{label:string},"medical_stats":string[],"motivation":string}.`
}

// BuildPrompt embeds the profile and score in the advice request.
func BuildPrompt(profile health.SmokingProfile, score float64, extra map[string]string) string {
	intake := health.IntakeFor(profile)
	var b strings.Builder
	b.WriteString("Analyse the following smoker and give professional health advice, ")
	b.WriteString("with a detailed analysis, concrete quitting advice and an evidence based recovery forecast.\n\n")
	b.WriteString("Smoker data:\n")
	fmt.Fprintf(&b, "- Cigarettes per day: %g\n", profile.CigarettesPerDay)
	fmt.Fprintf(&b, "- Years smoked: %g\n", profile.YearsSmoked)
	fmt.Fprintf(&b, "- Total cigarettes smoked: %d\n", intake.TotalCigarettes)
	fmt.Fprintf(&b, "- Pack years: %.1f\n", intake.PackYears)
	fmt.Fprintf(&b, "- Nicotine per cigarette: %.1f mg\n", profile.NicotineMg)
	fmt.Fprintf(&b, "- Tar per cigarette: %.1f mg\n", profile.TarMg)
	fmt.Fprintf(&b, "- Current lung health: %.1f%%\n", score)
	for _, key := range sortedKeys(extra) {
		if v := strings.TrimSpace(extra[key]); v != "" {
			fmt.Fprintf(&b, "- %s: %s\n", strings.TrimSpace(key), v)
		}
	}
	b.WriteString("\nBased on the medical literature, provide as JSON:\n")
	b.WriteString("1. health_risks: the main health risks this smoker faces\n")
	b.WriteString("2. quit_strategies: 3-5 evidence based strategies covering psychological and physical coping\n")
	b.WriteString("3. recovery_timeline: expected recovery after 1 week, 1 month, 3 months, 6 months, 1 year and 5 years\n")
	b.WriteString("4. medical_stats: 2-3 key research figures relevant to this smoker\n")
	b.WriteString("5. motivation: an encouraging message\n")
	return b.String()
}
