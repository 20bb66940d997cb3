package lungviz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

type stubStore struct {
	getFn func(ctx context.Context, key string) ([]byte, bool, error)
	putFn func(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

func (s *stubStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.getFn != nil {
		return s.getFn(ctx, key)
	}
	return nil, false, nil
}

func (s *stubStore) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if s.putFn != nil {
		return s.putFn(ctx, key, data, ttl)
	}
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceRenderStoresResult(t *testing.T) {
	var storedKey string
	var storedTTL time.Duration
	store := &stubStore{
		putFn: func(_ context.Context, key string, data []byte, ttl time.Duration) error {
			storedKey = key
			storedTTL = ttl
			require.NotEmpty(t, data)
			return nil
		},
	}
	svc := NewService(Config{Width: 120, Height: 120, CacheTTL: time.Hour}, store, newTestLogger())

	out, err := svc.Render(context.Background(), RenderRequest{Health: 62.5})
	require.NoError(t, err)
	require.Equal(t, FormatPNG, out.Format)
	require.Equal(t, "image/png", out.ContentType)
	require.Equal(t, StageMild, out.Stage)
	require.Equal(t, int64(62), out.Seed)
	require.False(t, out.Cached)
	require.Equal(t, []byte("\x89PNG"), out.Data[:4])
	require.Equal(t, "png:120x120:62.500000", storedKey)
	require.Equal(t, time.Hour, storedTTL)
}

func TestServiceRenderServesCache(t *testing.T) {
	store := &stubStore{
		getFn: func(context.Context, string) ([]byte, bool, error) {
			return []byte("<svg/>"), true, nil
		},
		putFn: func(context.Context, string, []byte, time.Duration) error {
			t.Fatal("cache hit must not be written back")
			return nil
		},
	}
	svc := NewService(Config{}, store, newTestLogger())

	out, err := svc.Render(context.Background(), RenderRequest{Health: 10, Format: FormatSVG})
	require.NoError(t, err)
	require.True(t, out.Cached)
	require.Equal(t, "image/svg+xml", out.ContentType)
	require.Equal(t, []byte("<svg/>"), out.Data)
}

func TestServiceRenderIgnoresCacheFailures(t *testing.T) {
	store := &stubStore{
		getFn: func(context.Context, string) ([]byte, bool, error) {
			return nil, false, errors.New("connection refused")
		},
		putFn: func(context.Context, string, []byte, time.Duration) error {
			return errors.New("connection refused")
		},
	}
	svc := NewService(Config{Width: 80, Height: 80, DefaultFormat: FormatSVG}, store, newTestLogger())

	out, err := svc.Render(context.Background(), RenderRequest{Health: 45})
	require.NoError(t, err)
	require.Equal(t, FormatSVG, out.Format)
	require.Contains(t, string(out.Data), "<svg")
}

func TestServiceRenderRejectsInvalidInput(t *testing.T) {
	svc := NewService(Config{}, nil, newTestLogger())

	_, err := svc.Render(context.Background(), RenderRequest{Health: math.NaN()})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = svc.Render(context.Background(), RenderRequest{Health: 50, Format: "gif"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

func TestServiceRenderClampsHealth(t *testing.T) {
	svc := NewService(Config{Width: 50, Height: 50}, nil, newTestLogger())
	out, err := svc.Render(context.Background(), RenderRequest{Health: 140})
	require.NoError(t, err)
	require.InDelta(t, 100, out.Health, 1e-9)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" SVG ", FormatPNG)
	require.NoError(t, err)
	require.Equal(t, FormatSVG, f)

	f, err = ParseFormat("", FormatSVG)
	require.NoError(t, err)
	require.Equal(t, FormatSVG, f)

	_, err = ParseFormat("gif", FormatPNG)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}
