package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"

	"studio-booking/internal/pkg/errs"
)

var (
	// ErrTxConflict is raised by a store when a concurrently committed
	// transaction invalidated what this one read. It never leaves the usecase layer.
	ErrTxConflict         = errs.New("transaction conflict")
	ErrTransactionBegin   = errs.New("failed to begin transaction")
	ErrTransactionCommit  = errs.New("failed to commit transaction")
	ErrMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type RetryPolicy struct {
	MaxAttempts int
	// Base is the first backoff step. Zero retries immediately.
	Base time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3}
}

// IsRetryable reports whether a failed attempt may be run again.
func IsRetryable(err error) bool {
	return errs.IsAny(err, ErrTxConflict, errs.ErrStoreUnavailable)
}

// RunWithRetry calls attempt until it succeeds, fails with a non-retryable
// error or the policy runs out. Exhaustion is marked ErrMaxRetriesExceeded
// and keeps the last cause.
func RunWithRetry(ctx context.Context, policy RetryPolicy, attempt func(ctx context.Context) error) error {
	maxAttempts := max(policy.MaxAttempts, 1)

	var err error
	for n := 0; n < maxAttempts; n++ {
		err = attempt(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if n == maxAttempts-1 {
			break
		}

		waitTime := calculateBackoff(n, policy.Base)
		slog.Warn("retrying transaction due to retryable error",
			"attempt", n+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		if waitTime == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	slog.Error("transaction failed after max retries",
		"attempts", maxAttempts,
		"error", err.Error())
	return errs.Mark(err, ErrMaxRetriesExceeded)
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}
