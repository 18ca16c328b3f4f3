package repository

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type CreditWriteQueries interface {
	CreateCreditBatch(ctx context.Context, dbtx db.DBTX, arg db.CreditBatchRow) error
	GetCreditBatchForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (db.CreditBatchRow, error)
	LockSpendableCreditBatches(ctx context.Context, dbtx db.DBTX, accountID, providerID uuid.UUID, now time.Time) ([]db.CreditBatchRow, error)
	UpdateCreditBatch(ctx context.Context, dbtx db.DBTX, arg db.CreditBatchRow) (int64, error)
}

type CreditRepository struct {
	queries CreditWriteQueries
	dbtx    db.DBTX
	logger  *slog.Logger
}

func NewCreditRepository(queries CreditWriteQueries, dbtx db.DBTX, logger *slog.Logger) *CreditRepository {
	return &CreditRepository{
		queries: queries,
		dbtx:    dbtx,
		logger:  logger,
	}
}

// ListSpendable locks the returned rows until the transaction ends.
func (r *CreditRepository) ListSpendable(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) ([]*credit.Batch, error) {
	rows, err := r.queries.LockSpendableCreditBatches(ctx, r.dbtx, accountID, providerID, now)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list spendable credit batches", err)
	}
	batches := converter.BatchesFromRows(rows)
	credit.SortFIFO(batches)
	return batches, nil
}

func (r *CreditRepository) FindByID(ctx context.Context, id uuid.UUID) (*credit.Batch, error) {
	row, err := r.queries.GetCreditBatchForUpdate(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "credit batch not found", err)
	}
	return converter.BatchFromRow(row), nil
}

func (r *CreditRepository) Create(ctx context.Context, b *credit.Batch) error {
	if err := r.queries.CreateCreditBatch(ctx, r.dbtx, converter.BatchToRow(b)); err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to create credit batch", err)
	}
	return nil
}

func (r *CreditRepository) Save(ctx context.Context, b *credit.Batch) error {
	affected, err := r.queries.UpdateCreditBatch(ctx, r.dbtx, converter.BatchToRow(b))
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to save credit batch", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "credit batch not found", nil)
	}
	return nil
}
