package assessment

import (
	"time"

	"github.com/yanqian/lung-visualizer/internal/domain/cost"
	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
)

// Request is a smoking profile plus pricing.
type Request struct {
	Profile      health.SmokingProfile `json:"profile"`
	PricePerPack float64               `json:"pricePerPack,omitempty" validate:"omitempty,gt=0"`
	PackSize     int                   `json:"packSize,omitempty" validate:"omitempty,gte=1,lte=50"`
}

// ProgressionStep is one point of the progression gallery.
type ProgressionStep struct {
	Year    int            `json:"year"`
	Health  float64        `json:"health"`
	Stage   string         `json:"stage"`
	Insight health.Insight `json:"insight"`
}

// Spending groups the money side of a report.
type Spending struct {
	Currency     string               `json:"currency"`
	PricePerPack float64              `json:"pricePerPack"`
	PackSize     int                  `json:"packSize"`
	Impact       cost.FinancialImpact `json:"impact"`
	Equivalents  []cost.Equivalent    `json:"equivalents"`
	Shopping     []cost.ShoppingLine  `json:"shopping"`
	QuitSavings  cost.QuitSavings     `json:"quitSavings"`
}

// Report is the full assessment of a profile.
type Report struct {
	Profile     health.SmokingProfile  `json:"profile"`
	Health      float64                `json:"health"`
	Description string                 `json:"description"`
	Stage       string                 `json:"stage"`
	Metrics     health.RiskMetrics     `json:"metrics"`
	Impacts     []health.Impact        `json:"impacts"`
	Intake      health.Intake          `json:"intake"`
	Spending    Spending               `json:"spending"`
	Timeline    []health.TimelinePoint `json:"timeline"`
	Progression []ProgressionStep      `json:"progression"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// Frame is a rendered progression step. Image marshals as base64.
type Frame struct {
	ProgressionStep
	Format      lungviz.Format `json:"format"`
	ContentType string         `json:"contentType"`
	Image       []byte         `json:"image"`
}

// Gallery is the rendered progression for a profile.
type Gallery struct {
	Profile health.SmokingProfile `json:"profile"`
	Frames  []Frame               `json:"frames"`
}
