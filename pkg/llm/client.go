// Package llm wraps the external text-completion oracle behind a typed
// client: per-call timeouts, retry with exponential backoff for transient
// failures, a circuit breaker for upstream back-pressure, and JSON
// extraction from free-form replies.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single completion call when the caller does not
// specify one.
const DefaultTimeout = 60 * time.Second

// MaxAttempts is the retry budget per completion call. Only transient
// errors are retried.
const MaxAttempts = 3

// Options tune a single completion request. Zero values mean
// provider/client defaults.
type Options struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Client is the abstraction over the completion oracle. Implementations
// must honor ctx and the per-call timeout and surface transient vs
// non-transient failures distinctly (see IsTransient).
type Client interface {
	Complete(ctx context.Context, prompt string, opts Options) (string, error)
}

// TransientError marks a failure worth retrying: timeouts, 429s, 5xx,
// network errors, an open circuit breaker.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("transient llm error: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks a failure that retrying cannot fix: auth failures,
// malformed requests.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return fmt.Sprintf("permanent llm error: %v", e.Err) }
func (e *PermanentError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retryable. Context deadline expiry is
// transient from the caller's perspective (the next attempt gets a fresh
// deadline); context cancellation is not.
func IsTransient(err error) bool {
	var te *TransientError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
