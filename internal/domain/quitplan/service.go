package quitplan

import (
	"context"
	"log/slog"
)

// Config supplies pricing defaults.
type Config struct {
	PricePerCigarette float64
}

// Service exposes plan generation.
type Service interface {
	Plan(ctx context.Context, req Request) (Plan, error)
}

type service struct {
	cfg    Config
	logger *slog.Logger
}

// NewService wires the quit plan domain.
func NewService(cfg Config, logger *slog.Logger) Service {
	return &service{cfg: cfg, logger: logger.With("component", "quitplan.service")}
}

func (s *service) Plan(_ context.Context, req Request) (Plan, error) {
	if req.PricePerCigarette <= 0 {
		req.PricePerCigarette = s.cfg.PricePerCigarette
	}
	plan, err := Generate(req)
	if err != nil {
		return Plan{}, err
	}
	s.logger.Info("quit plan generated",
		"dependence", plan.Dependence,
		"weeks", plan.DurationWeeks,
		"triggers", len(plan.Triggers),
	)
	return plan, nil
}
