package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/stretchr/testify/require"
)

func TestNilCounterFallsBackToWords(t *testing.T) {
	var counter *TokenCounter

	require.Equal(t, 0, counter.Count(""))
	require.Equal(t, 4, counter.Count("quit smoking today please"))

	usage := counter.Usage("one two", "three")
	require.Equal(t, TokenUsage{PromptTokens: 2, CompletionTokens: 1, TotalTokens: 3}, usage)
	require.False(t, usage.IsZero())
}

func TestTokenUsageIsZero(t *testing.T) {
	require.True(t, TokenUsage{}.IsZero())
	require.False(t, NewTokenUsage(1, 0).IsZero())
}

func TestCountDoesNotWaitForEncoding(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	counter := NewTokenCounter("")
	counter.load = func(string) (*tiktoken.Tiktoken, error) {
		<-release
		return nil, errors.New("never loaded")
	}

	finished := make(chan int, 1)
	go func() { finished <- counter.Count("quit smoking today") }()

	select {
	case got := <-finished:
		require.Equal(t, 3, got)
	case <-time.After(2 * time.Second):
		t.Fatal("Count blocked on the encoding load")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, counter.Warm(ctx), context.DeadlineExceeded)
}

func TestWarmReportsLoadFailure(t *testing.T) {
	counter := NewTokenCounter("missing_base")
	counter.load = func(name string) (*tiktoken.Tiktoken, error) {
		require.Equal(t, "missing_base", name)
		return nil, errors.New("no such encoding")
	}

	require.EqualError(t, counter.Warm(context.Background()), "no such encoding")
	require.Equal(t, 2, counter.Count("still counts"))
}
