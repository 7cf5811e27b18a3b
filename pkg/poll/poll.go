// Package poll implements a bounded fixed-interval retry loop for
// asynchronous job status checks. Remote analysis jobs have
// unpredictable completion times and no push channel, so callers poll:
// transient fetch errors are swallowed while the deadline has not
// passed, and only the final timeout surfaces.
package poll

import (
	"context"
	"fmt"
	"time"
)

// Options bound a polling loop.
type Options struct {
	// MaxWait is the hard wall-clock deadline for the whole loop.
	MaxWait time.Duration

	// RetryInterval is the fixed sleep between attempts.
	RetryInterval time.Duration
}

// TimeoutError reports that the deadline passed while the most recent
// attempts were failing. It wraps the last recorded fetch error.
type TimeoutError struct {
	MaxWait time.Duration
	Last    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("polling gave up after %s: %v", e.MaxWait, e.Last)
}

func (e *TimeoutError) Unwrap() error { return e.Last }

// Until calls fetch until isSuccess approves a result or the deadline
// passes.
//
// Fetch errors are recorded and retried, never surfaced mid-loop. When
// the deadline is reached, the outcome depends on the final attempt: a
// non-error but unsuccessful status is returned as-is for the caller to
// interpret, while a trailing fetch error is wrapped in a *TimeoutError.
// Context cancellation stops the loop early with ctx.Err.
func Until[T any](
	ctx context.Context,
	fetch func(ctx context.Context) (T, error),
	isSuccess func(T) bool,
	opts Options,
) (T, error) {
	var zero T
	deadline := time.Now().Add(opts.MaxWait)

	var last T
	var lastErr error
	gotStatus := false

	for {
		status, err := fetch(ctx)
		if err != nil {
			lastErr = err
		} else {
			if isSuccess(status) {
				return status, nil
			}
			last = status
			lastErr = nil
			gotStatus = true
		}

		if !time.Now().Before(deadline) {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(opts.RetryInterval):
		}
	}

	if lastErr == nil && gotStatus {
		return last, nil
	}
	return zero, &TimeoutError{MaxWait: opts.MaxWait, Last: lastErr}
}
