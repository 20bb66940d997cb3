package lungviz

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

// Format selects the encoded image type.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts png or svg, case-insensitively. Empty input returns
// fallback.
func ParseFormat(raw string, fallback Format) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		return fallback, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	default:
		return "", apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported format %q", raw), nil)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// Config controls canvas size, default format and cache lifetime.
type Config struct {
	Width         int
	Height        int
	DefaultFormat Format
	CacheTTL      time.Duration
}

// Store caches encoded illustrations.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// RenderRequest asks for one illustration.
type RenderRequest struct {
	Health float64
	Format Format
}

// Illustration is an encoded image plus the parameters that produced it.
type Illustration struct {
	Health      float64
	Stage       Stage
	Seed        int64
	Format      Format
	ContentType string
	Data        []byte
	Cached      bool
}

// Service renders lung illustrations.
type Service interface {
	Render(ctx context.Context, req RenderRequest) (Illustration, error)
	Scene(health float64) Scene
}

type service struct {
	cfg    Config
	canvas Canvas
	store  Store
	logger *slog.Logger
}

// NewService builds the render service. A nil store disables caching.
func NewService(cfg Config, store Store, logger *slog.Logger) Service {
	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = FormatPNG
	}
	if store == nil {
		store = nopStore{}
	}
	return &service{
		cfg:    cfg,
		canvas: NewCanvas(cfg.Width, cfg.Height),
		store:  store,
		logger: logger.With("component", "lungviz.service"),
	}
}

func (s *service) Scene(health float64) Scene {
	return BuildScene(health)
}

func (s *service) Render(ctx context.Context, req RenderRequest) (Illustration, error) {
	if math.IsNaN(req.Health) || math.IsInf(req.Health, 0) {
		return Illustration{}, apperrors.Wrap(apperrors.CodeInvalidInput, "health must be a finite number", nil)
	}
	format := req.Format
	if format == "" {
		format = s.cfg.DefaultFormat
	}
	if format != FormatPNG && format != FormatSVG {
		return Illustration{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("unsupported format %q", format), nil)
	}

	health := clampHealth(req.Health)
	out := Illustration{
		Health:      health,
		Stage:       StageFor(health),
		Seed:        SeedFor(health),
		Format:      format,
		ContentType: format.ContentType(),
	}

	key := CacheKey(format, s.canvas.Width, s.canvas.Height, health)
	if data, ok, err := s.store.Get(ctx, key); err != nil {
		s.logger.Warn("render cache lookup failed", "key", key, "error", err)
	} else if ok {
		out.Data = data
		out.Cached = true
		return out, nil
	}

	start := time.Now()
	scene := BuildScene(health)
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatSVG:
		err = EncodeSVG(&buf, scene, s.canvas)
	default:
		err = EncodePNG(&buf, scene, s.canvas)
	}
	if err != nil {
		return Illustration{}, apperrors.Wrap(apperrors.CodeRenderError, "failed to encode illustration", err)
	}
	out.Data = buf.Bytes()
	s.logger.Debug("illustration rendered",
		"health", health,
		"stage", out.Stage.String(),
		"format", format,
		"shapes", len(scene.Shapes),
		"bytes", len(out.Data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if err := s.store.Put(ctx, key, out.Data, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("render cache store failed", "key", key, "error", err)
	}
	return out, nil
}

// CacheKey identifies a rendered image. Health keeps six decimals so values
// sharing a seed but drawing different overlays never collide.
func CacheKey(format Format, width, height int, health float64) string {
	return fmt.Sprintf("%s:%dx%d:%.6f", format, width, height, health)
}

type nopStore struct{}

func (nopStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nopStore) Put(context.Context, string, []byte, time.Duration) error { return nil }
