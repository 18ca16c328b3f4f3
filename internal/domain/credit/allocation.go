package credit

import (
	"bytes"
	"sort"
	"time"

	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInsufficientCredits = errs.Mark(errs.New("available credits do not cover the requested amount"), errs.ErrInsufficientCredits)

// Allocation is the part of a consumption drawn from one batch.
type Allocation struct {
	BatchID        uuid.UUID
	Amount         int64
	RemainingAfter int64
	ExpiresAt      time.Time
}

type Consumption struct {
	AccountID   uuid.UUID
	ProviderID  uuid.UUID
	Amount      int64
	Allocations []Allocation
}

// SortFIFO orders batches by expiry, then grant time, then id.
func SortFIFO(batches []*Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return fifoLess(batches[i], batches[j])
	})
}

func fifoLess(a, b *Batch) bool {
	if !a.expiresAt.Equal(b.expiresAt) {
		return a.expiresAt.Before(b.expiresAt)
	}
	if !a.grantedAt.Equal(b.grantedAt) {
		return a.grantedAt.Before(b.grantedAt)
	}
	return bytes.Compare(a.id[:], b.id[:]) < 0
}

// Balance sums the remainder of batches that still count at now.
func Balance(batches []*Batch, now time.Time) int64 {
	var total int64
	for _, b := range batches {
		if b.Counts(now) {
			total += b.amountRemaining
		}
	}
	return total
}

// Consume draws amount from the batches earliest-expiring first and returns
// the per-batch breakdown plus the batches it touched. Nothing is mutated
// when the spendable total falls short.
func Consume(accountID, providerID uuid.UUID, batches []*Batch, amount int64, now time.Time) (*Consumption, []*Batch, error) {
	if amount <= 0 {
		return nil, nil, ErrNonPositiveAmount
	}

	eligible := make([]*Batch, 0, len(batches))
	var available int64
	for _, b := range batches {
		if b.accountID != accountID || b.providerID != providerID {
			continue
		}
		if b.Spendable(now) {
			eligible = append(eligible, b)
			available += b.amountRemaining
		}
	}
	if available < amount {
		return nil, nil, ErrInsufficientCredits
	}
	SortFIFO(eligible)

	result := &Consumption{AccountID: accountID, ProviderID: providerID, Amount: amount}
	touched := make([]*Batch, 0, len(eligible))
	left := amount
	for _, b := range eligible {
		if left == 0 {
			break
		}
		take := min(left, b.amountRemaining)
		if err := b.Draw(take, now); err != nil {
			return nil, nil, err
		}
		left -= take
		touched = append(touched, b)
		result.Allocations = append(result.Allocations, Allocation{
			BatchID:        b.id,
			Amount:         take,
			RemainingAfter: b.amountRemaining,
			ExpiresAt:      b.expiresAt,
		})
	}

	return result, touched, nil
}
