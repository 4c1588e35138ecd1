package resilience

import (
	"context"
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// RetryConfig controls how often and how far apart a call is retried.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts including the first.
	// A value of 1 disables retries. Default: 3.
	MaxAttempts int

	// Delay is the wait before the first retry. Default: 500ms.
	Delay time.Duration

	// MaxDelay caps the wait between attempts. Default: 30s.
	MaxDelay time.Duration

	// Multiplier scales the wait after each attempt. 1 gives a fixed delay.
	// Default: 2.
	Multiplier float64

	// ShouldRetry decides whether an error is worth another attempt.
	// If nil, IsTransient is used.
	ShouldRetry func(err error) bool

	// OnRetry runs before each wait with the attempt that just failed.
	OnRetry func(attempt int, err error)
}

// FixedRetryConfig retries up to attempts times with the same delay between
// attempts.
func FixedRetryConfig(attempts int, delay time.Duration) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		Delay:       delay,
		MaxDelay:    delay,
		Multiplier:  1,
	}
}

// DoVal runs fn until it succeeds, returns an error ShouldRetry rejects, the
// attempts run out, or ctx is done. Errors ShouldRetry rejects are
// returned as-is; the last error after exhausting MaxAttempts is wrapped with
// the attempt count. A context cancelled while waiting ends the loop with the
// context error.
func DoVal[T any](ctx context.Context, cfg RetryConfig, fn func(ctx context.Context) (T, error)) (T, error) {
	cfg = applyDefaults(cfg)

	shouldRetry := cfg.ShouldRetry
	if shouldRetry == nil {
		shouldRetry = IsTransient
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		val, err := fn(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		if ctx.Err() != nil || !shouldRetry(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err)
		}

		timer := time.NewTimer(computeDelay(attempt-1, cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, eris.Wrap(ctx.Err(), "retry: wait cancelled")
		case <-timer.C:
		}
	}

	if cfg.MaxAttempts == 1 {
		return zero, lastErr
	}
	return zero, eris.Wrapf(lastErr, "retry: gave up after %d attempts", cfg.MaxAttempts)
}

func applyDefaults(cfg RetryConfig) RetryConfig {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 500 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.MaxDelay < cfg.Delay {
		cfg.MaxDelay = cfg.Delay
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	return cfg
}

// computeDelay returns the wait after the given zero-based failed attempt.
func computeDelay(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.Delay) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	return time.Duration(delay)
}

// RetryLogger returns an OnRetry callback that logs each failed attempt.
func RetryLogger(service, operation string) func(int, error) {
	return func(attempt int, err error) {
		zap.L().Warn("retrying operation",
			zap.String("service", service),
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
}
