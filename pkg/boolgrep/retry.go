package boolgrep

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"syscall"
	"time"
)

// RetryPolicy controls how often a document is reopened after a transient
// failure such as running out of file descriptors.
type RetryPolicy struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialBackoff is the starting backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffFactor is the multiplier applied to backoff after each attempt.
	BackoffFactor float64

	// Jitter is the random jitter factor (0.0-1.0).
	Jitter float64
}

// NoRetry opens every document once.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// DefaultOpenRetry suits directories on network file systems.
var DefaultOpenRetry = RetryPolicy{
	MaxAttempts:    3,
	InitialBackoff: 50 * time.Millisecond,
	MaxBackoff:     time.Second,
	BackoffFactor:  2.0,
	Jitter:         0.1,
}

// WithOpenRetry retries opening a document on transient errors.
// Default: NoRetry
func WithOpenRetry(p RetryPolicy) Option {
	return func(c *searchConfig) {
		if p.MaxAttempts > 0 {
			c.openRetry = p
		}
	}
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	for _, errno := range []syscall.Errno{syscall.EAGAIN, syscall.EBUSY, syscall.EINTR, syscall.EMFILE, syscall.ENFILE} {
		if errors.Is(err, errno) {
			return true
		}
	}
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

// openWithRetry opens doc, retrying transient failures with exponential
// backoff. It returns the number of attempts made.
func openWithRetry(ctx context.Context, doc Document, p RetryPolicy) (io.ReadCloser, int, error) {
	backoff := p.InitialBackoff
	var lastErr error

	for attempt := 0; attempt < max(p.MaxAttempts, 1); attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, attempt, err
		}

		rc, err := doc.Open()
		if err == nil {
			return rc, attempt + 1, nil
		}
		lastErr = err
		if !IsTransient(err) || attempt == p.MaxAttempts-1 {
			return nil, attempt + 1, err
		}

		select {
		case <-ctx.Done():
			return nil, attempt + 1, ctx.Err()
		case <-time.After(jittered(backoff, p.Jitter)):
		}

		backoff = time.Duration(float64(backoff) * p.BackoffFactor)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
	return nil, p.MaxAttempts, lastErr
}

// jittered returns base +/- base*jitter*random.
func jittered(base time.Duration, jitter float64) time.Duration {
	if jitter <= 0 {
		return base
	}
	return time.Duration(float64(base) + float64(base)*jitter*(rand.Float64()*2-1))
}
