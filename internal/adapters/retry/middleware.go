package retry

import (
	"context"
	"math"
	"net"
	"net/http"
	"strings"
	"time"

	"ideaforge/pkg/errors"
)

type Strategy string

const (
	StrategyExponential Strategy = "exponential"
	StrategyLinear      Strategy = "linear"
	StrategyFixed       Strategy = "fixed"
)

// Config controls retry behaviour. Attempts counts the first call.
type Config struct {
	Attempts     int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Strategy     Strategy
	Multiplier   float64
	// RetryAll retries every error except context cancellation
	RetryAll bool
}

// SearchConfig is three attempts two seconds apart
func SearchConfig() Config {
	return Config{
		Attempts:     3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     2 * time.Second,
		Strategy:     StrategyFixed,
		RetryAll:     true,
	}
}

// Middleware runs functions with retries and backoff
type Middleware struct {
	config Config
	sleep  func(ctx context.Context, d time.Duration) error
}

func New(config Config) *Middleware {
	if config.Attempts <= 0 {
		config.Attempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 100 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 2.0
	}
	if config.Strategy == "" {
		config.Strategy = StrategyExponential
	}
	return &Middleware{config: config, sleep: sleepContext}
}

// WithSleep replaces the delay function. Used by tests.
func (m *Middleware) WithSleep(fn func(ctx context.Context, d time.Duration) error) *Middleware {
	m.sleep = fn
	return m
}

// Do calls fn until it succeeds, returns a non-retryable error, or attempts run out
func (m *Middleware) Do(ctx context.Context, fn func(attempt int) error) error {
	var lastErr error

	for attempt := 1; attempt <= m.config.Attempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		if !m.retryable(err) {
			return err
		}
		if attempt == m.config.Attempts {
			break
		}

		if err := m.sleep(ctx, m.delay(attempt-1)); err != nil {
			return errors.Wrap(err, "retry cancelled")
		}
	}

	return errors.Wrapf(lastErr, "failed after %d attempts", m.config.Attempts)
}

func (m *Middleware) delay(retry int) time.Duration {
	var d time.Duration
	switch m.config.Strategy {
	case StrategyExponential:
		d = time.Duration(float64(m.config.InitialDelay) * math.Pow(m.config.Multiplier, float64(retry)))
	case StrategyLinear:
		d = m.config.InitialDelay * time.Duration(1+retry)
	default:
		d = m.config.InitialDelay
	}
	if d > m.config.MaxDelay {
		d = m.config.MaxDelay
	}
	return d
}

func (m *Middleware) retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if m.config.RetryAll {
		return true
	}
	return IsRetryable(err)
}

// IsRetryable reports whether err looks transient: network timeouts, 429 and 5xx, or a known message
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	var httpErr interface{ StatusCode() int }
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode()
		return code == http.StatusTooManyRequests ||
			code == http.StatusRequestTimeout ||
			code >= 500
	}

	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"timeout",
		"temporary failure",
		"too many requests",
		"rate limit",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
