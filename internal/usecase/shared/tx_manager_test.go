//go:build unit

package shared

import (
	"context"
	"testing"
	"time"

	"studio-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestRunWithRetry(t *testing.T) {
	outage := errs.Mark(errs.New("dial tcp: connection refused"), errs.ErrStoreUnavailable)

	tests := []struct {
		name         string
		failures     []error
		wantAttempts int
		wantErr      error
		wantExceeded bool
	}{
		{name: "first attempt succeeds", wantAttempts: 1},
		{name: "conflict then success", failures: []error{ErrTxConflict}, wantAttempts: 2},
		{name: "non retryable stops", failures: []error{errs.ErrSlotConflict}, wantAttempts: 1, wantErr: errs.ErrSlotConflict},
		{
			name:         "conflicts exhaust",
			failures:     []error{ErrTxConflict, ErrTxConflict, ErrTxConflict},
			wantAttempts: 3,
			wantErr:      ErrTxConflict,
			wantExceeded: true,
		},
		{
			name:         "outage exhausts",
			failures:     []error{outage, outage, outage},
			wantAttempts: 3,
			wantErr:      errs.ErrStoreUnavailable,
			wantExceeded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := RunWithRetry(context.Background(), RetryPolicy{MaxAttempts: 3}, func(context.Context) error {
				attempts++
				if attempts <= len(tt.failures) {
					return tt.failures[attempts-1]
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, tt.wantExceeded, errs.Is(err, ErrMaxRetriesExceeded))
		})
	}
}

func TestRunWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RunWithRetry(ctx, RetryPolicy{MaxAttempts: 5, Base: time.Hour}, func(context.Context) error {
		attempts++
		cancel()
		return ErrTxConflict
	})

	assert.Equal(t, 1, attempts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoff(t *testing.T) {
	assert.Zero(t, calculateBackoff(2, 0))

	base := 10 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		wait := calculateBackoff(attempt, base)
		floor := time.Duration(1<<attempt) * base
		assert.GreaterOrEqual(t, wait, floor)
		assert.Less(t, wait, floor+floor/5+time.Nanosecond)
	}
}
