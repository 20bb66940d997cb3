package assessment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/yanqian/lung-visualizer/internal/domain/cost"
	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
	"github.com/yanqian/lung-visualizer/pkg/util"
)

var validate = validator.New()

// Config carries pricing defaults and render concurrency.
type Config struct {
	Currency       string
	PricePerPack   float64
	PackSize       int
	RenderParallel int
}

// Service assembles reports and progression galleries.
type Service interface {
	Assess(ctx context.Context, req Request) (Report, error)
	Progression(ctx context.Context, profile health.SmokingProfile, format lungviz.Format) (Gallery, error)
}

type service struct {
	cfg      Config
	renderer lungviz.Service
	logger   *slog.Logger
	now      util.Clock
}

// NewService wires the assessment domain.
func NewService(cfg Config, renderer lungviz.Service, logger *slog.Logger) Service {
	if cfg.PackSize <= 0 {
		cfg.PackSize = cost.DefaultPackSize
	}
	if cfg.RenderParallel <= 0 {
		cfg.RenderParallel = 4
	}
	return &service{
		cfg:      cfg,
		renderer: renderer,
		logger:   logger.With("component", "assessment.service"),
		now:      util.NowUTC,
	}
}

func (s *service) Assess(ctx context.Context, req Request) (Report, error) {
	if err := req.Profile.Validate(); err != nil {
		return Report{}, err
	}
	if err := validate.Struct(req); err != nil {
		return Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "pricePerPack must be positive and packSize between 1 and 50", err)
	}
	profile := req.Profile.WithDefaults()
	price := req.PricePerPack
	if price == 0 {
		price = s.cfg.PricePerPack
	}
	packSize := req.PackSize
	if packSize == 0 {
		packSize = s.cfg.PackSize
	}

	score := health.Score(profile)
	metrics := health.RiskMetricsFor(score)
	impact := cost.Impact(profile.CigarettesPerDay, profile.YearsSmoked, price, packSize)

	report := Report{
		Profile:     profile,
		Health:      score,
		Description: health.Describe(score),
		Stage:       lungviz.StageFor(score).String(),
		Metrics:     metrics,
		Impacts:     metrics.Impacts(),
		Intake:      health.IntakeFor(profile),
		Spending: Spending{
			Currency:     s.cfg.Currency,
			PricePerPack: price,
			PackSize:     packSize,
			Impact:       impact,
			Equivalents:  cost.Equivalents(impact.Lifetime),
			Shopping:     cost.Shopping(impact.Lifetime),
			QuitSavings:  cost.Savings(profile.CigarettesPerDay, cost.PricePerCigarette(price, packSize)),
		},
		Timeline:    health.Timeline(profile),
		Progression: progressionSteps(profile),
		GeneratedAt: s.now(),
	}
	s.logger.Info("assessment computed",
		"health", score,
		"stage", report.Stage,
		"pack_years", report.Intake.PackYears,
	)
	return report, nil
}

func (s *service) Progression(ctx context.Context, profile health.SmokingProfile, format lungviz.Format) (Gallery, error) {
	if err := profile.Validate(); err != nil {
		return Gallery{}, err
	}
	profile = profile.WithDefaults()
	steps := progressionSteps(profile)
	frames := make([]Frame, len(steps))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RenderParallel)
	for i, step := range steps {
		g.Go(func() error {
			img, err := s.renderer.Render(gCtx, lungviz.RenderRequest{Health: step.Health, Format: format})
			if err != nil {
				return fmt.Errorf("render year %d: %w", step.Year, err)
			}
			// Each goroutine owns its slot.
			frames[i] = Frame{
				ProgressionStep: step,
				Format:          img.Format,
				ContentType:     img.ContentType,
				Image:           img.Data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if apperrors.CodeOf(err) != "" {
			return Gallery{}, err
		}
		return Gallery{}, apperrors.Wrap(apperrors.CodeRenderError, "failed to render progression", err)
	}
	s.logger.Info("progression rendered", "frames", len(frames))
	return Gallery{Profile: profile, Frames: frames}, nil
}

func progressionSteps(profile health.SmokingProfile) []ProgressionStep {
	years := health.ProgressionYears(profile.YearsSmoked)
	steps := make([]ProgressionStep, len(years))
	for i, year := range years {
		score := health.ComputeHealthScore(profile.CigarettesPerDay, float64(year), profile.NicotineMg, profile.TarMg)
		steps[i] = ProgressionStep{
			Year:    year,
			Health:  score,
			Stage:   lungviz.StageFor(score).String(),
			Insight: health.InsightFor(i, len(years)),
		}
	}
	return steps
}
