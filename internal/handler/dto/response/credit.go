package response

import (
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BatchResponse struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"accountId"`
	ProviderID      uuid.UUID `json:"providerId"`
	AmountTotal     int64     `json:"amountTotal"`
	AmountRemaining int64     `json:"amountRemaining"`
	AmountForfeited int64     `json:"amountForfeited"`
	GrantedAt       time.Time `json:"grantedAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
	Expired         bool      `json:"expired"`
	State           string    `json:"state"`
	SourceID        string    `json:"sourceId,omitempty"`
}

type BalanceResponse struct {
	AccountID  uuid.UUID `json:"accountId"`
	ProviderID uuid.UUID `json:"providerId"`
	Available  int64     `json:"available"`
	AsOf       time.Time `json:"asOf"`
}

type AllocationResponse struct {
	BatchID        uuid.UUID `json:"batchId"`
	Amount         int64     `json:"amount"`
	RemainingAfter int64     `json:"remainingAfter"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

type ConsumptionResponse struct {
	AccountID   uuid.UUID            `json:"accountId"`
	ProviderID  uuid.UUID            `json:"providerId"`
	Amount      int64                `json:"amount"`
	Allocations []AllocationResponse `json:"allocations"`
}

func FromBatch(b *credit.Batch, now time.Time) *BatchResponse {
	return FromBatchView(queries.NewBatchView(b, now))
}

func FromBatchView(v *queries.BatchView) *BatchResponse {
	return &BatchResponse{
		ID:              v.ID,
		AccountID:       v.AccountID,
		ProviderID:      v.ProviderID,
		AmountTotal:     v.AmountTotal,
		AmountRemaining: v.AmountRemaining,
		AmountForfeited: v.AmountForfeited,
		GrantedAt:       v.GrantedAt,
		ExpiresAt:       v.ExpiresAt,
		Expired:         v.Expired,
		State:           string(v.State),
		SourceID:        v.SourceID,
	}
}

func FromBatchViews(views []*queries.BatchView) []*BatchResponse {
	res := make([]*BatchResponse, len(views))
	for i, v := range views {
		res[i] = FromBatchView(v)
	}
	return res
}

func FromBalanceView(v *queries.BalanceView) *BalanceResponse {
	return &BalanceResponse{
		AccountID:  v.AccountID,
		ProviderID: v.ProviderID,
		Available:  v.Available,
		AsOf:       v.AsOf,
	}
}

func FromConsumption(c *credit.Consumption) *ConsumptionResponse {
	allocs := make([]AllocationResponse, len(c.Allocations))
	for i, a := range c.Allocations {
		allocs[i] = AllocationResponse{
			BatchID:        a.BatchID,
			Amount:         a.Amount,
			RemainingAfter: a.RemainingAfter,
			ExpiresAt:      a.ExpiresAt,
		}
	}
	return &ConsumptionResponse{
		AccountID:   c.AccountID,
		ProviderID:  c.ProviderID,
		Amount:      c.Amount,
		Allocations: allocs,
	}
}
