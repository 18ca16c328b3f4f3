//go:build unit || e2e

package builder

import (
	"time"

	"studio-booking/internal/domain/credit"
	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreditBatchBuilder struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	ProviderID      uuid.UUID
	AmountTotal     int64
	AmountRemaining int64
	AmountForfeited int64
	GrantedAt       time.Time
	ExpiresAt       time.Time
	Expired         bool
	SourceID        string
}

func NewCreditBatchBuilder() *CreditBatchBuilder {
	granted := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &CreditBatchBuilder{
		ID:              uuid.New(),
		AccountID:       uuid.New(),
		ProviderID:      uuid.New(),
		AmountTotal:     10,
		AmountRemaining: 10,
		GrantedAt:       granted,
		ExpiresAt:       granted.Add(30 * 24 * time.Hour),
		SourceID:        "order-1001",
	}
}

func (b *CreditBatchBuilder) With(mutate func(*CreditBatchBuilder)) *CreditBatchBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *CreditBatchBuilder) BuildDomain() *credit.Batch {
	return credit.ReconstructBatch(
		b.ID, b.AccountID, b.ProviderID,
		b.AmountTotal, b.AmountRemaining, b.AmountForfeited,
		b.GrantedAt, b.ExpiresAt,
		b.Expired,
		b.SourceID,
		b.GrantedAt,
	)
}

func (b *CreditBatchBuilder) BuildView(now time.Time) *queries.BatchView {
	return queries.NewBatchView(b.BuildDomain(), now)
}

func (b *CreditBatchBuilder) BuildGrantRequestDTO() reqdto.GrantCreditsRequest {
	return reqdto.GrantCreditsRequest{
		AccountID: b.AccountID,
		Amount:    b.AmountTotal,
		ValidDays: int(b.ExpiresAt.Sub(b.GrantedAt) / (24 * time.Hour)),
		SourceID:  b.SourceID,
	}
}

func (b *CreditBatchBuilder) BuildConsumeRequestDTO(amount int64) reqdto.ConsumeCreditsRequest {
	return reqdto.ConsumeCreditsRequest{
		AccountID: b.AccountID,
		Amount:    amount,
	}
}

func (b *CreditBatchBuilder) BuildConsumption(amount int64) *credit.Consumption {
	return &credit.Consumption{
		AccountID:  b.AccountID,
		ProviderID: b.ProviderID,
		Amount:     amount,
		Allocations: []credit.Allocation{{
			BatchID:        b.ID,
			Amount:         amount,
			RemainingAfter: b.AmountRemaining - amount,
			ExpiresAt:      b.ExpiresAt,
		}},
	}
}

func (b *CreditBatchBuilder) BuildExpireResult() *commands.ExpireResult {
	return &commands.ExpireResult{
		TotalExpired:     b.AmountRemaining,
		AffectedAccounts: 1,
		BatchesExpired:   1,
	}
}

// Fluent builder methods
func (b *CreditBatchBuilder) WithLedger(accountID, providerID uuid.UUID) *CreditBatchBuilder {
	b.AccountID = accountID
	b.ProviderID = providerID
	return b
}

func (b *CreditBatchBuilder) WithAmount(total, remaining int64) *CreditBatchBuilder {
	b.AmountTotal = total
	b.AmountRemaining = remaining
	return b
}

func (b *CreditBatchBuilder) WithWindow(grantedAt, expiresAt time.Time) *CreditBatchBuilder {
	b.GrantedAt = grantedAt
	b.ExpiresAt = expiresAt
	return b
}

func (b *CreditBatchBuilder) AsExpired() *CreditBatchBuilder {
	b.AmountForfeited = b.AmountRemaining
	b.AmountRemaining = 0
	b.Expired = true
	return b
}
