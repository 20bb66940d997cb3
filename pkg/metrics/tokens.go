package metrics

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE table used when no model specific table is known.
const DefaultEncoding = "cl100k_base"

// TokenCounter estimates token counts with a tiktoken encoding. The encoding
// loads in the background; until it is ready, or when it fails to load,
// counts fall back to whitespace word counts. A nil counter always counts
// words.
type TokenCounter struct {
	encoding string
	load     func(string) (*tiktoken.Tiktoken, error)

	start sync.Once
	done  chan struct{}
	enc   atomic.Pointer[tiktoken.Tiktoken]
	err   error
}

// NewTokenCounter returns a counter for the given encoding name.
func NewTokenCounter(encoding string) *TokenCounter {
	if strings.TrimSpace(encoding) == "" {
		encoding = DefaultEncoding
	}
	return &TokenCounter{
		encoding: encoding,
		load:     tiktoken.GetEncoding,
		done:     make(chan struct{}),
	}
}

// Warm starts loading the encoding and waits until it is ready or ctx ends.
// Callers that do not care about the outcome may ignore the error; counting
// keeps working either way.
func (c *TokenCounter) Warm(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.startLoad()
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *TokenCounter) startLoad() {
	c.start.Do(func() {
		go func() {
			defer close(c.done)
			enc, err := c.load(c.encoding)
			if err != nil {
				c.err = err
				return
			}
			c.enc.Store(enc)
		}()
	})
}

// Count returns the number of tokens in text. It never waits for the
// encoding to load.
func (c *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c == nil {
		return countWords(text)
	}
	c.startLoad()
	enc := c.enc.Load()
	if enc == nil {
		return countWords(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// Usage estimates usage for a prompt/completion pair.
func (c *TokenCounter) Usage(prompt, completion string) TokenUsage {
	return NewTokenUsage(c.Count(prompt), c.Count(completion))
}

func countWords(text string) int {
	return len(strings.Fields(text))
}
