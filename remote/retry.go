package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrTransient marks a failure that may succeed on another attempt.
var ErrTransient = errors.New("transient remote failure")

// StatusError is a non-success HTTP response. It matches ErrUnexpectedStatus.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s %s: %d", ErrUnexpectedStatus, e.Method, e.Path, e.Code)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Transient wraps err so that Retry attempts the call again.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// Retryable reports whether another attempt could succeed: server errors,
// 429 responses and errors wrapped by Transient. Cancellation never is.
func Retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *StatusError
	if errors.As(err, &status) {
		return status.Code >= http.StatusInternalServerError || status.Code == http.StatusTooManyRequests
	}
	return errors.Is(err, ErrTransient)
}

// Retry calls op until it succeeds, fails with a non-retryable error, or
// maxAttempts calls have been made. The wait starts at baseDelay and
// doubles after each retryable failure.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, op func(context.Context) error) error {
	if maxAttempts <= 0 {
		return ErrInvalidMaxAttempts
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	delay := baseDelay
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil || attempt == maxAttempts || !Retryable(err) {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}
