package advice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/lung-visualizer/internal/domain/health"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var referenceProfile = health.SmokingProfile{CigarettesPerDay: 10, YearsSmoked: 5}

func TestAdviseParsesFencedJSON(t *testing.T) {
	var captured Prompt
	gen := TextGeneratorFunc(func(_ context.Context, p Prompt) (string, error) {
		captured = p
		return "Here you go:\n```json\n" + `{
  "health_risks": ["COPD", " COPD ", "lung cancer"],
  "quit_strategies": "Set a quit date",
  "recovery_timeline": {"1 week": "Taste improves", "1 month": 2},
  "medical_stats": [],
  "motivation": "You can do it"
}` + "\n```", nil
	})
	svc := NewService(Config{}, gen, nil, newTestLogger())

	resp := svc.Advise(context.Background(), Request{Profile: referenceProfile})
	require.Equal(t, SourceModel, resp.Source)
	require.Equal(t, []string{"COPD", "lung cancer"}, resp.HealthRisks)
	require.Equal(t, []string{"Set a quit date"}, resp.QuitStrategies)
	require.Equal(t, "Taste improves", resp.RecoveryTimeline["1 week"])
	require.Equal(t, "2", resp.RecoveryTimeline["1 month"])
	require.NotEmpty(t, resp.MedicalStats, "empty lists are backed by placeholders")
	require.Equal(t, "You can do it", resp.Motivation)
	require.InDelta(t, 82.08, resp.Health, 0.01)
	require.NotNil(t, resp.Usage)
	require.Positive(t, resp.Usage.PromptTokens)

	require.Contains(t, captured.User, "Total cigarettes smoked: 18250")
	require.Contains(t, captured.User, "Pack years: 2.5")
	require.Contains(t, captured.User, "Current lung health: 82.1%")
	require.Contains(t, captured.System, "health_risks")
}

func TestAdviseKeepsRawTextWhenNoJSON(t *testing.T) {
	gen := TextGeneratorFunc(func(context.Context, Prompt) (string, error) {
		return "  Quitting today halves your risk within a year.  ", nil
	})
	svc := NewService(Config{}, gen, nil, newTestLogger())

	resp := svc.Advise(context.Background(), Request{Profile: referenceProfile})
	require.Equal(t, SourceUnparsed, resp.Source)
	require.Equal(t, "Quitting today halves your risk within a year.", resp.Motivation)
	require.NotEmpty(t, resp.HealthRisks)
	require.NotEmpty(t, resp.RecoveryTimeline)
}

func TestAdviseTreatsMalformedJSONAsUnparsed(t *testing.T) {
	cases := []string{
		`{"health_risks": [1, 2]}`,
		`{"unrelated": true}`,
		`{broken json}`,
	}
	for _, reply := range cases {
		gen := TextGeneratorFunc(func(context.Context, Prompt) (string, error) { return reply, nil })
		svc := NewService(Config{}, gen, nil, newTestLogger())
		resp := svc.Advise(context.Background(), Request{Profile: referenceProfile})
		require.Equal(t, SourceUnparsed, resp.Source, reply)
		require.Equal(t, reply, resp.Motivation)
	}
}

func TestAdviseFallsBackOnGeneratorError(t *testing.T) {
	gen := TextGeneratorFunc(func(context.Context, Prompt) (string, error) {
		return "", errors.New("503 service unavailable")
	})
	svc := NewService(Config{}, gen, nil, newTestLogger())

	resp := svc.Advise(context.Background(), Request{Profile: referenceProfile})
	require.Equal(t, SourceFallback, resp.Source)
	require.Equal(t, fallbackMotivation, resp.Motivation)
	require.NotEmpty(t, resp.HealthRisks)
	require.NotEmpty(t, resp.QuitStrategies)
	require.NotEmpty(t, resp.MedicalStats)
	require.Nil(t, resp.Usage)
}

func TestAdviseAppliesTimeout(t *testing.T) {
	gen := TextGeneratorFunc(func(ctx context.Context, _ Prompt) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	svc := NewService(Config{Timeout: 10 * time.Millisecond}, gen, nil, newTestLogger())

	resp := svc.Advise(context.Background(), Request{Profile: referenceProfile})
	require.Equal(t, SourceFallback, resp.Source)
}

func TestAdviseOfflineWithoutGenerator(t *testing.T) {
	svc := NewService(Config{}, nil, nil, newTestLogger())
	h := 40.0
	resp := svc.Advise(context.Background(), Request{Profile: referenceProfile, Health: &h})
	require.Equal(t, SourceOffline, resp.Source)
	require.NotEmpty(t, resp.Motivation)
	require.InDelta(t, 40, resp.Health, 1e-9)
}

func TestBuildPromptIncludesExtraSorted(t *testing.T) {
	prompt := BuildPrompt(referenceProfile.WithDefaults(), 80, map[string]string{
		"zodiac":   "",
		"exercise": "rarely",
		"age":      "42",
	})
	require.Contains(t, prompt, "- age: 42\n- exercise: rarely\n")
	require.NotContains(t, prompt, "zodiac")
}

func TestStaticResources(t *testing.T) {
	res := StaticResources()
	for _, category := range []string{CategoryHotlines, CategoryApps, CategoryWebsites, CategoryTreatments} {
		require.NotEmpty(t, res[category], category)
	}
	res[CategoryApps][0] = "mutated"
	require.NotEqual(t, "mutated", StaticResources()[CategoryApps][0])
}

func TestAdviseClampsHealthOverride(t *testing.T) {
	var captured Prompt
	gen := TextGeneratorFunc(func(_ context.Context, p Prompt) (string, error) {
		captured = p
		return "plain text", nil
	})
	svc := NewService(Config{}, gen, nil, newTestLogger())

	low := -250.0
	resp := svc.Advise(context.Background(), Request{Profile: referenceProfile, Health: &low})
	require.Equal(t, 0.0, resp.Health)
	require.Contains(t, captured.User, "Current lung health: 0.0%")

	high := 180.0
	resp = svc.Advise(context.Background(), Request{Profile: referenceProfile, Health: &high})
	require.Equal(t, 100.0, resp.Health)

	nan := math.NaN()
	resp = svc.Advise(context.Background(), Request{Profile: referenceProfile, Health: &nan})
	require.InDelta(t, 82.08, resp.Health, 0.01)

	inf := math.Inf(1)
	resp = svc.Advise(context.Background(), Request{Profile: referenceProfile, Health: &inf})
	require.InDelta(t, 82.08, resp.Health, 0.01)
}
