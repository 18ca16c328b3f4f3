package uow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/readstore"
	"studio-booking/internal/infra/repository"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("studio-booking/infra/uow")

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *db.Queries
	policy shared.RetryPolicy
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *db.Queries, policy shared.RetryPolicy, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		policy: policy,
		logger: logger,
	}
}

// Within runs fn in a SERIALIZABLE transaction. Serialization failures and
// lost status races are retried per the policy; fn must be safe to rerun.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	ctx, span := tracer.Start(ctx, "uow.Within")
	defer span.End()

	attempts := 0
	err := shared.RunWithRetry(ctx, u.policy, func(ctx context.Context) error {
		attempts++
		return u.runOnce(ctx, fn)
	})

	span.SetAttributes(attribute.Int("tx.attempts", attempts))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction failed")
		if errs.Is(err, shared.ErrMaxRetriesExceeded) {
			u.logger.Error("transaction failed after max retries",
				slog.Int("attempts", attempts),
				slog.String("error", err.Error()))
		}
	}
	return err
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runOnce(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return errs.Mark(infra.ClassifyPgErr(u.logger, "failed to begin transaction", err), shared.ErrTransactionBegin)
	}

	tx := &pgTx{dbtx: pgxTx, uow: u}

	err = fn(ctx, tx)
	if err == nil {
		if err = pgxTx.Commit(ctx); err == nil {
			return nil
		}
		err = errs.Mark(infra.ClassifyPgErr(u.logger, "failed to commit transaction", err), shared.ErrTransactionCommit)
	}

	if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
		if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			u.logger.Warn("rollback failed", slog.String("error", rollbackErr.Error()))
		}
	}
	return err
}

type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	bookingRepo shared.BookingRepository
	creditRepo  shared.CreditRepository
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.uow.q, t.dbtx, t.uow.logger)
	}
	return t.bookingRepo
}

func (t *pgTx) Credits() shared.CreditRepository {
	if t.creditRepo == nil {
		t.creditRepo = repository.NewCreditRepository(t.uow.q, t.dbtx, t.uow.logger)
	}
	return t.creditRepo
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx db.DBTX

	// Lazy-initialized stores
	bookingRepo *repository.BookingRepository
	creditStore *readstore.CreditReadStore
}

func (r *commandReads) ActiveBookingBySlot(ctx context.Context, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) (*booking.Booking, error) {
	if r.bookingRepo == nil {
		r.bookingRepo = repository.NewBookingRepository(r.uow.q, r.dbtx, r.uow.logger)
	}
	return r.bookingRepo.FindActiveBySlot(ctx, resourceID, date, start)
}

func (r *commandReads) SweepCandidates(ctx context.Context, now time.Time, afterID uuid.UUID, limit int) ([]*credit.Batch, error) {
	if r.creditStore == nil {
		r.creditStore = readstore.NewCreditReadStore(r.uow.q, r.dbtx, r.uow.logger)
	}
	return r.creditStore.FindSweepCandidates(ctx, now, afterID, limit)
}
