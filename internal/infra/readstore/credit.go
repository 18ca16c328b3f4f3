package readstore

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/repository/converter"
	"studio-booking/internal/pkg/config"

	"github.com/google/uuid"
)

//go:generate mockgen -source=credit.go -destination=../../../tests/mock/readstore/credit.go -package=readstoremock

type CreditReadQueries interface {
	SumAvailableCredits(ctx context.Context, dbtx db.DBTX, accountID, providerID uuid.UUID, now time.Time) (int64, error)
	ListCreditBatchesByLedger(ctx context.Context, dbtx db.DBTX, accountID, providerID uuid.UUID) ([]db.CreditBatchRow, error)
	ListSweepCandidates(ctx context.Context, dbtx db.DBTX, now time.Time, afterID uuid.UUID, limit int32) ([]db.CreditBatchRow, error)
}

type CreditReadStore struct {
	queries CreditReadQueries
	dbtx    db.DBTX
	logger  *slog.Logger
}

func NewCreditReadStore(queries CreditReadQueries, dbtx db.DBTX, logger *slog.Logger) *CreditReadStore {
	return &CreditReadStore{
		queries: queries,
		dbtx:    dbtx,
		logger:  logger,
	}
}

func (r *CreditReadStore) SumAvailable(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) (int64, error) {
	total, err := r.queries.SumAvailableCredits(ctx, r.dbtx, accountID, providerID, now)
	if err != nil {
		return 0, infra.ClassifyPgErr(r.logger, "failed to sum available credits", err)
	}
	return total, nil
}

func (r *CreditReadStore) FindByLedger(ctx context.Context, accountID, providerID uuid.UUID) ([]*credit.Batch, error) {
	rows, err := r.queries.ListCreditBatchesByLedger(ctx, r.dbtx, accountID, providerID)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list credit batches", err)
	}
	return converter.BatchesFromRows(rows), nil
}

// FindSweepCandidates pages unflagged batches with a remainder whose expiry
// has passed, ordered by id.
func (r *CreditReadStore) FindSweepCandidates(ctx context.Context, now time.Time, afterID uuid.UUID, limit int) ([]*credit.Batch, error) {
	if limit <= 0 || limit > config.MaxSweepPageSize {
		limit = config.MaxSweepPageSize
	}
	rows, err := r.queries.ListSweepCandidates(ctx, r.dbtx, now, afterID, int32(limit)) // #nosec G115 -- bounded above
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list sweep candidates", err)
	}
	return converter.BatchesFromRows(rows), nil
}
