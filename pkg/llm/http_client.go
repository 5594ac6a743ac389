package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// HTTPConfig configures the HTTP completion client.
type HTTPConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration

	// Circuit breaker settings. BreakerMaxFailures consecutive upstream
	// failures open the breaker for BreakerCooldown; while open, calls fail
	// fast with a transient error so the pipeline sees back-pressure
	// instead of piling up blocked requests.
	BreakerMaxFailures uint32
	BreakerCooldown    time.Duration
}

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint.
// It is safe for concurrent use and shared across jobs.
type HTTPClient struct {
	cfg     HTTPConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewHTTPClient creates a completion client for the given endpoint.
func NewHTTPClient(cfg HTTPConfig) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "llm",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("LLM circuit breaker state change", "from", from.String(), "to", to.String())
		},
	})

	return &HTTPClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete implements Client. Transient upstream failures are retried with
// exponential backoff up to MaxAttempts; permanent failures return
// immediately.
func (c *HTTPClient) Complete(ctx context.Context, prompt string, opts Options) (string, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(
		backoff.NewExponentialBackOff(), MaxAttempts-1), ctx)

	var text string
	operation := func() error {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		result, err := c.breaker.Execute(func() (any, error) {
			return c.doCall(callCtx, prompt, opts)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return &TransientError{Err: err}
			}
			var pe *PermanentError
			if errors.As(err, &pe) {
				return backoff.Permanent(err)
			}
			if errors.Is(err, context.Canceled) {
				return backoff.Permanent(err)
			}
			return err
		}
		text = result.(string)
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return text, nil
}

// doCall performs a single HTTP round trip, classifying failures.
func (c *HTTPClient) doCall(ctx context.Context, prompt string, opts Options) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.cfg.MaxTokens
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = c.cfg.Temperature
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", &PermanentError{Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &PermanentError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() == context.Canceled {
			return "", ctx.Err()
		}
		// Network failures and client timeouts are worth retrying.
		return "", &TransientError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransientError{Err: fmt.Errorf("reading response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to parse
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return "", &TransientError{Err: fmt.Errorf("upstream status %d: %s", resp.StatusCode, truncate(respBody, 200))}
	default:
		return "", &PermanentError{Err: fmt.Errorf("upstream status %d: %s", resp.StatusCode, truncate(respBody, 200))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &TransientError{Err: fmt.Errorf("malformed completion response: %w", err)}
	}
	if parsed.Error != nil {
		return "", &PermanentError{Err: fmt.Errorf("upstream error: %s", parsed.Error.Message)}
	}
	if len(parsed.Choices) == 0 {
		return "", &TransientError{Err: fmt.Errorf("completion response has no choices")}
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
