package assessment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/lung-visualizer/internal/domain/health"
	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
	"github.com/yanqian/lung-visualizer/pkg/util"
)

type stubRenderer struct {
	mu       sync.Mutex
	requests []lungviz.RenderRequest
	renderFn func(ctx context.Context, req lungviz.RenderRequest) (lungviz.Illustration, error)
}

func (s *stubRenderer) Render(ctx context.Context, req lungviz.RenderRequest) (lungviz.Illustration, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.renderFn != nil {
		return s.renderFn(ctx, req)
	}
	return lungviz.Illustration{
		Health:      req.Health,
		Format:      lungviz.FormatPNG,
		ContentType: "image/png",
		Data:        []byte{byte(req.Health)},
	}, nil
}

func (s *stubRenderer) Scene(h float64) lungviz.Scene { return lungviz.BuildScene(h) }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServiceUnderTest(renderer lungviz.Service) *service {
	svc := NewService(Config{Currency: "NT$", PricePerPack: 100, RenderParallel: 2}, renderer, newTestLogger()).(*service)
	svc.now = util.Fixed(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	return svc
}

func TestAssessReferenceProfile(t *testing.T) {
	svc := newServiceUnderTest(&stubRenderer{})

	report, err := svc.Assess(context.Background(), Request{
		Profile: health.SmokingProfile{CigarettesPerDay: 10, YearsSmoked: 5},
	})
	require.NoError(t, err)
	require.InDelta(t, 82.08, report.Health, 0.01)
	require.Equal(t, "early", report.Stage)
	require.InDelta(t, health.DefaultNicotineMg, report.Profile.NicotineMg, 1e-9)
	require.Len(t, report.Impacts, 5)
	require.Equal(t, "NT$", report.Spending.Currency)
	require.Equal(t, 20, report.Spending.PackSize)
	require.InDelta(t, 91250, report.Spending.Impact.Lifetime, 1e-9)
	require.NotEmpty(t, report.Spending.Equivalents)
	require.Len(t, report.Spending.Shopping, 3)
	require.InDelta(t, 1500, report.Spending.QuitSavings.Month, 1e-9)
	require.Len(t, report.Timeline, 6)
	require.Len(t, report.Progression, 6)
	require.Equal(t, health.PhaseHealthy, report.Progression[0].Insight.Phase)
	require.InDelta(t, 100, report.Progression[0].Health, 1e-9)
	require.Equal(t, 2024, report.GeneratedAt.Year())
}

func TestAssessUsesRequestPricing(t *testing.T) {
	svc := newServiceUnderTest(&stubRenderer{})
	report, err := svc.Assess(context.Background(), Request{
		Profile:      health.SmokingProfile{CigarettesPerDay: 20, YearsSmoked: 1},
		PricePerPack: 150,
		PackSize:     25,
	})
	require.NoError(t, err)
	require.InDelta(t, 120, report.Spending.Impact.Daily, 1e-9)
}

func TestAssessRejectsInvalidInput(t *testing.T) {
	svc := newServiceUnderTest(&stubRenderer{})

	_, err := svc.Assess(context.Background(), Request{Profile: health.SmokingProfile{CigarettesPerDay: -1}})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Assess(context.Background(), Request{
		Profile:      health.SmokingProfile{CigarettesPerDay: 5, YearsSmoked: 1},
		PricePerPack: -3,
	})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestProgressionKeepsStepOrder(t *testing.T) {
	renderer := &stubRenderer{}
	svc := newServiceUnderTest(renderer)

	gallery, err := svc.Progression(context.Background(), health.SmokingProfile{CigarettesPerDay: 20, YearsSmoked: 30}, lungviz.FormatPNG)
	require.NoError(t, err)
	require.Len(t, gallery.Frames, 6)
	require.Len(t, renderer.requests, 6)

	wantYears := []int{0, 6, 12, 18, 24, 30}
	for i, frame := range gallery.Frames {
		require.Equal(t, wantYears[i], frame.Year)
		require.Equal(t, []byte{byte(frame.Health)}, frame.Image)
		require.Equal(t, "image/png", frame.ContentType)
	}
	require.InDelta(t, 100, gallery.Frames[0].Health, 1e-9)
}

func TestProgressionPropagatesRenderFailure(t *testing.T) {
	renderer := &stubRenderer{
		renderFn: func(context.Context, lungviz.RenderRequest) (lungviz.Illustration, error) {
			return lungviz.Illustration{}, errors.New("out of memory")
		},
	}
	svc := newServiceUnderTest(renderer)

	_, err := svc.Progression(context.Background(), health.SmokingProfile{CigarettesPerDay: 5, YearsSmoked: 3}, lungviz.FormatSVG)
	require.True(t, apperrors.IsCode(err, apperrors.CodeRenderError))
}
