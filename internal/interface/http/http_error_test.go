package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/lung-visualizer/pkg/errors"
)

func TestAsHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error passes through", NewHTTPError(http.StatusTeapot, "teapot", "short and stout", nil), http.StatusTeapot, "teapot"},
		{"invalid input", apperrors.Wrap(apperrors.CodeInvalidInput, "bad profile", nil), http.StatusBadRequest, "invalid_request"},
		{"render failure", apperrors.Wrap(apperrors.CodeRenderError, "encode", errors.New("boom")), http.StatusInternalServerError, "render_failed"},
		{"cache failure", apperrors.Wrap(apperrors.CodeCacheError, "valkey", errors.New("down")), http.StatusServiceUnavailable, "cache_unavailable"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := asHTTPError(tt.err)
			require.Equal(t, tt.status, got.Status)
			require.Equal(t, tt.code, got.Code)
		})
	}
	require.Nil(t, asHTTPError(nil))
}

func TestFromDomainErrorFallback(t *testing.T) {
	got := fromDomainError(errors.New("unexpected"), "quit_plan_failed")
	require.Equal(t, http.StatusInternalServerError, got.Status)
	require.Equal(t, "quit_plan_failed", got.Code)
	require.Equal(t, "unexpected", got.Message)
}
