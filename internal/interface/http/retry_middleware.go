package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yanqian/lung-visualizer/internal/infra/config"
)

const retryBodyLimit = 1 << 20

var errBodyTooLarge = errors.New("request body exceeds retry limit")

// retrier replays POST requests whose handler answered with a 5xx. Only the
// final attempt is written to the client.
type retrier struct {
	next     http.Handler
	attempts int
	backoff  time.Duration
	skip     map[string]bool
	logger   *slog.Logger
}

func withRetry(handler http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return handler
	}
	skip := make(map[string]bool, len(cfg.Exclude))
	for _, p := range cfg.Exclude {
		skip[p] = true
	}
	return &retrier{
		next:     handler,
		attempts: cfg.MaxAttempts,
		backoff:  cfg.BaseBackoff,
		skip:     skip,
		logger:   logger,
	}
}

func (rt *retrier) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || rt.skip[r.URL.Path] {
		rt.next.ServeHTTP(w, r)
		return
	}

	body, err := bufferBody(r)
	switch {
	case errors.Is(err, errBodyTooLarge):
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		last  *bufferedResponse
		tried int
	)
	for tried = 1; ; tried++ {
		if tried > 1 {
			if err := wait(r.Context(), rt.delay(tried)); err != nil {
				http.Error(w, "request canceled", http.StatusServiceUnavailable)
				return
			}
			rt.logger.Warn("retrying request after server error", "path", r.URL.Path, "status", last.status, "attempt", tried)
		}

		replay := r.Clone(r.Context())
		replay.Body = io.NopCloser(bytes.NewReader(body))
		replay.ContentLength = int64(len(body))

		last = newBufferedResponse()
		rt.next.ServeHTTP(last, replay)
		if last.status < http.StatusInternalServerError || tried == rt.attempts {
			break
		}
	}
	last.header.Set("X-Attempts", strconv.Itoa(tried))
	last.flushTo(w)
}

const maxBackoffShift = 10

// delay doubles the base backoff for every attempt after the second, up to
// 2^maxBackoffShift times the base.
func (rt *retrier) delay(attempt int) time.Duration {
	return rt.backoff << min(attempt-2, maxBackoffShift)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func bufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	data, err := io.ReadAll(io.LimitReader(r.Body, retryBodyLimit+1))
	if err != nil {
		return nil, err
	}
	if len(data) > retryBodyLimit {
		return nil, errBodyTooLarge
	}
	return data, nil
}

// bufferedResponse is an http.ResponseWriter that holds one attempt's
// output in memory.
type bufferedResponse struct {
	header  http.Header
	body    bytes.Buffer
	status  int
	written bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.written {
		return
	}
	b.status = status
	b.written = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.written = true
	return b.body.Write(p)
}

// Flush is a no-op; the body is released in one piece by flushTo.
func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo(w http.ResponseWriter) {
	dst := w.Header()
	for k, v := range b.header {
		dst[k] = append([]string(nil), v...)
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = b.body.WriteTo(w)
	}
}
