package infra

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeUniqueViolation      = "23505"
	pgErrCodeForeignKeyViolation  = "23503"
	pgErrCodeAdminShutdown        = "57P01"
	pgErrCodeCannotConnectNow     = "57P03"

	ActiveSlotConstraint = "bookings_active_slot_uidx"
)

// ClassifyPgErr turns a driver error into a repository error the usecases
// understand. Serialization failures and deadlocks come back marked
// shared.ErrTxConflict so the unit of work retries them.
func ClassifyPgErr(slogger *slog.Logger, msg string, err error) error {
	if err == nil {
		return nil
	}
	if pgconv.IsNoRows(err) {
		return NewRepoErr(KindNotFound, msg, err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errs.Wrap(err, msg)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
			slogger.Debug("transaction conflict", slog.String("code", pgErr.Code), slog.String("op", msg))
			return errs.Mark(errs.Wrap(err, msg), shared.ErrTxConflict)
		case pgErrCodeUniqueViolation:
			if pgErr.ConstraintName == ActiveSlotConstraint {
				return NewRepoErr(KindSlotTaken, msg, err)
			}
			return WrapRepoErr(slogger, KindDuplicateKey, msg, err)
		case pgErrCodeForeignKeyViolation:
			return WrapRepoErr(slogger, KindForeignKeyViolated, msg, err)
		case pgErrCodeAdminShutdown, pgErrCodeCannotConnectNow:
			return WrapRepoErr(slogger, KindUnavailable, msg, err)
		}
		return WrapRepoErr(slogger, KindDBFailure, msg, err)
	}

	if isConnectionError(err) {
		return WrapRepoErr(slogger, KindUnavailable, msg, err)
	}
	return WrapRepoErr(slogger, KindDBFailure, msg, err)
}

func isConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return pgconn.Timeout(err) || pgconn.SafeToRetry(err)
}
