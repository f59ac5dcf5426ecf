package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrStopUnsupported is returned by a strategy whose underlying call cannot
// take stop sequences; the client retries that strategy without them.
var ErrStopUnsupported = errors.New("llm: strategy does not support stop sequences")

// GenerationError reports that every invocation strategy failed. It carries
// the attempted strategy names and the last underlying cause.
type GenerationError struct {
	Attempted []string
	Last      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("llm: all strategies failed (tried %s): %v", strings.Join(e.Attempted, ", "), e.Last)
}

func (e *GenerationError) Unwrap() error { return e.Last }

// Strategy is one way of invoking the underlying model. Engine variance
// lives entirely inside strategies; the client only sees this interface.
type Strategy interface {
	Name() string
	Invoke(ctx context.Context, prompt string, stop []string) (string, error)
}

// Client tries an ordered list of strategies and returns the first result.
type Client struct {
	strategies []Strategy
	window     int
}

// NewClient builds a client over the given strategies, configured once at
// startup. window is the model context window in tokens.
func NewClient(window int, strategies ...Strategy) *Client {
	return &Client{strategies: strategies, window: window}
}

// ContextWindow returns the configured context window hint.
func (c *Client) ContextWindow() int { return c.window }

// Generate runs the strategies in order. Each strategy gets one attempt with
// stop sequences and, if it reports ErrStopUnsupported, one more without.
// The first non-error result wins; remaining strategies are not tried. When
// everything fails the attempted names and last error are folded into a
// single *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string, stop []string) (string, error) {
	var attempted []string
	var lastErr error
	for _, s := range c.strategies {
		attempted = append(attempted, s.Name())
		text, err := s.Invoke(ctx, prompt, stop)
		if errors.Is(err, ErrStopUnsupported) {
			text, err = s.Invoke(ctx, prompt, nil)
		}
		if err == nil {
			return text, nil
		}
		log.Printf("[llm][invoke][warn] strategy=%s failed: %v", s.Name(), err)
		lastErr = err
	}
	if lastErr == nil {
		lastErr = errors.New("no strategies configured")
	}
	return "", &GenerationError{Attempted: attempted, Last: lastErr}
}
