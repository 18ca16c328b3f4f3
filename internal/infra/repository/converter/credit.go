package converter

import (
	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/pgconv"
)

func BatchToRow(b *credit.Batch) db.CreditBatchRow {
	return db.CreditBatchRow{
		ID:              b.ID(),
		AccountID:       b.AccountID(),
		ProviderID:      b.ProviderID(),
		AmountTotal:     b.AmountTotal(),
		AmountRemaining: b.AmountRemaining(),
		AmountForfeited: b.AmountForfeited(),
		GrantedAt:       pgconv.TimeToPgtype(b.GrantedAt()),
		ExpiresAt:       pgconv.TimeToPgtype(b.ExpiresAt()),
		Expired:         b.Expired(),
		SourceID:        pgconv.StringToNullablePgtype(b.SourceID()),
		UpdatedAt:       pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BatchFromRow(row db.CreditBatchRow) *credit.Batch {
	var sourceID string
	if s := pgconv.StringPtrFromPgtype(row.SourceID); s != nil {
		sourceID = *s
	}
	return credit.ReconstructBatch(
		row.ID, row.AccountID, row.ProviderID,
		row.AmountTotal, row.AmountRemaining, row.AmountForfeited,
		pgconv.TimeFromPgtype(row.GrantedAt),
		pgconv.TimeFromPgtype(row.ExpiresAt),
		row.Expired,
		sourceID,
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func BatchesFromRows(rows []db.CreditBatchRow) []*credit.Batch {
	out := make([]*credit.Batch, len(rows))
	for i, row := range rows {
		out[i] = BatchFromRow(row)
	}
	return out
}
