package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrMaxRetries is returned, wrapping the last failure, once every attempt
// has failed.
var ErrMaxRetries = errors.New("max retries exceeded")

// RetryOptions tunes WithRetry. Zero fields take the defaults below.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

var defaultRetry = RetryOptions{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     5 * time.Second,
	Multiplier:   2,
}

func (o RetryOptions) withDefaults() RetryOptions {
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = defaultRetry.MaxAttempts
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = defaultRetry.InitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = defaultRetry.MaxDelay
	}
	if o.Multiplier <= 0 {
		o.Multiplier = defaultRetry.Multiplier
	}
	return o
}

// next grows delay by the multiplier, capped at MaxDelay.
func (o RetryOptions) next(delay time.Duration) time.Duration {
	return min(time.Duration(float64(delay)*o.Multiplier), o.MaxDelay)
}

// RetryableError marks an error as worth retrying or not.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether WithRetry should try again after err. Context
// errors never are; an empty artifact always is.
func IsRetryable(err error) bool {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrArtifactEmpty):
		return true
	}
	var marked *RetryableError
	return errors.As(err, &marked) && marked.Retryable
}

// WithRetry calls operation until it succeeds, returns an error IsRetryable
// rejects, or runs out of attempts. Waits between attempts back off
// exponentially and stop early when ctx is done.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	opts = opts.withDefaults()

	delay := opts.InitialDelay
	var err error
	for attempt := 1; ; attempt++ {
		if err = operation(); err == nil || !IsRetryable(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		slog.Debug("Retrying", "attempt", attempt, "delay", delay, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = opts.next(delay)
	}
}
