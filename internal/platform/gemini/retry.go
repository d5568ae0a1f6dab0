package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
)

// retryPolicy runs Gemini calls with exponential backoff and jitter.
type retryPolicy struct {
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

func newRetryPolicy(logger *slog.Logger, maxRetries, retryDelaySeconds int) retryPolicy {
	if maxRetries < 0 {
		logger.Warn("invalid max retries value, using default", "max_retries", defaultMaxRetries)
		maxRetries = defaultMaxRetries
	}

	baseDelay := time.Duration(retryDelaySeconds) * time.Second
	if retryDelaySeconds < 1 {
		logger.Warn("invalid retry delay value, using default",
			"base_delay_seconds", defaultRetryDelay.Seconds())
		baseDelay = defaultRetryDelay
	}

	return retryPolicy{maxRetries: maxRetries, baseDelay: baseDelay, logger: logger}
}

// isPermanent reports whether retrying err cannot help.
func isPermanent(err error) bool {
	return errors.Is(err, ErrContentBlocked) || errors.Is(err, ErrInvalidResponse)
}

// do calls fn until it succeeds, returns a permanent error, or the attempts
// run out. Between attempts it waits baseDelay * 2^attempt * (0.5 + rand(0, 0.5)).
func (p retryPolicy) do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		attemptNum := attempt + 1
		p.logger.DebugContext(ctx, "making gemini API call",
			"operation", op,
			"attempt", attemptNum,
			"max_attempts", p.maxRetries+1)

		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if isPermanent(err) {
			p.logger.WarnContext(ctx, "permanent error occurred, not retrying",
				"operation", op,
				"error", err)
			return err
		}

		p.logger.ErrorContext(ctx, "gemini API call failed",
			"operation", op,
			"attempt", attemptNum,
			"error", err)

		if attempt >= p.maxRetries {
			break
		}

		backoff := float64(p.baseDelay) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rand.Float64()*0.5
		delay := time.Duration(backoff * jitter)

		p.logger.InfoContext(ctx, "retrying after delay",
			"operation", op,
			"attempt", attemptNum,
			"delay", delay.String())

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			p.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"operation", op,
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return fmt.Errorf("%w: %w", ErrTransientFailure, ctx.Err())
		}
	}

	p.logger.WarnContext(ctx, "maximum retry attempts reached",
		"operation", op,
		"max_retries", p.maxRetries)
	return fmt.Errorf("%w: exceeded maximum retry attempts (%d): %w",
		ErrTransientFailure, p.maxRetries, lastErr)
}
