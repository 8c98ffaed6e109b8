package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("bad json"), false},
		{"transient", Transient(errors.New("connection reset")), true},
		{"service unavailable", &StatusError{Code: http.StatusServiceUnavailable}, true},
		{"bad gateway wrapped", fmt.Errorf("lookup: %w", &StatusError{Code: http.StatusBadGateway}), true},
		{"too many requests", &StatusError{Code: http.StatusTooManyRequests}, true},
		{"unauthorized", &StatusError{Code: http.StatusUnauthorized}, false},
		{"not found", &StatusError{Code: http.StatusNotFound}, false},
		{"cancelled transport", Transient(context.Canceled), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Retryable(tt.err))
		})
	}
}

func TestStatusError(t *testing.T) {
	err := error(&StatusError{Method: http.MethodGet, Path: "/search", Code: 418})
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, "unexpected response status: GET /search: 418", err.Error())
}

func TestRetry_Success(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, time.Millisecond, func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetry_EventualSuccess(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, time.Millisecond, func(context.Context) error {
		attempts++
		if attempts < 2 {
			return Transient(errors.New("connection refused"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), 3, time.Millisecond, func(context.Context) error {
		attempts++
		return &StatusError{Code: http.StatusServiceUnavailable}
	})

	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Equal(t, 3, attempts)
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	permanent := errors.New("decode failed")
	attempts := 0
	err := Retry(context.Background(), 5, time.Second, func(context.Context) error {
		attempts++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetry_InvalidAttempts(t *testing.T) {
	err := Retry(context.Background(), 0, time.Millisecond, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetry_ContextCancelled(t *testing.T) {
	t.Run("during backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		err := Retry(ctx, 5, time.Second, func(context.Context) error {
			attempts++
			cancel()
			return Transient(errors.New("timeout"))
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})

	t.Run("before first attempt", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		attempts := 0
		err := Retry(ctx, 5, time.Millisecond, func(context.Context) error {
			attempts++
			return nil
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, attempts)
	})
}
