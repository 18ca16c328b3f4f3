package queries

import (
	"context"
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BatchView struct {
	ID              uuid.UUID    `json:"id"`
	AccountID       uuid.UUID    `json:"account_id"`
	ProviderID      uuid.UUID    `json:"provider_id"`
	AmountTotal     int64        `json:"amount_total"`
	AmountRemaining int64        `json:"amount_remaining"`
	AmountForfeited int64        `json:"amount_forfeited"`
	GrantedAt       time.Time    `json:"granted_at"`
	ExpiresAt       time.Time    `json:"expires_at"`
	Expired         bool         `json:"expired"`
	State           credit.State `json:"state"`
	SourceID        string       `json:"source_id,omitempty"`
}

type BalanceView struct {
	AccountID  uuid.UUID `json:"account_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Available  int64     `json:"available"`
	AsOf       time.Time `json:"as_of"`
}

func NewBatchView(b *credit.Batch, now time.Time) *BatchView {
	return &BatchView{
		ID:              b.ID(),
		AccountID:       b.AccountID(),
		ProviderID:      b.ProviderID(),
		AmountTotal:     b.AmountTotal(),
		AmountRemaining: b.AmountRemaining(),
		AmountForfeited: b.AmountForfeited(),
		GrantedAt:       b.GrantedAt(),
		ExpiresAt:       b.ExpiresAt(),
		Expired:         b.Expired(),
		State:           b.State(now),
		SourceID:        b.SourceID(),
	}
}

type CreditReadStore interface {
	// SumAvailable totals the remainder of unflagged batches expiring after now.
	SumAvailable(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) (int64, error)
	FindByLedger(ctx context.Context, accountID, providerID uuid.UUID) ([]*credit.Batch, error)
}

type CreditQueries interface {
	AvailableBalance(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) (*BalanceView, error)
	ListBatches(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) ([]*BatchView, error)
}

type creditQueriesImpl struct {
	store CreditReadStore
}

func NewCreditQueries(store CreditReadStore) CreditQueries {
	return &creditQueriesImpl{store: store}
}

func (q *creditQueriesImpl) AvailableBalance(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) (*BalanceView, error) {
	if accountID == uuid.Nil || providerID == uuid.Nil {
		return nil, credit.ErrMissingIdentifier
	}
	total, err := q.store.SumAvailable(ctx, accountID, providerID, now)
	if err != nil {
		return nil, errs.Wrap(err, "sum available credits")
	}
	return &BalanceView{
		AccountID:  accountID,
		ProviderID: providerID,
		Available:  total,
		AsOf:       now,
	}, nil
}

// ListBatches returns the whole ledger, spent and expired batches included,
// in the order consumption would draw from it.
func (q *creditQueriesImpl) ListBatches(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) ([]*BatchView, error) {
	if accountID == uuid.Nil || providerID == uuid.Nil {
		return nil, credit.ErrMissingIdentifier
	}
	batches, err := q.store.FindByLedger(ctx, accountID, providerID)
	if err != nil {
		return nil, errs.Wrap(err, "list credit batches")
	}
	credit.SortFIFO(batches)

	views := make([]*BatchView, len(batches))
	for i, b := range batches {
		views[i] = NewBatchView(b, now)
	}
	return views, nil
}
