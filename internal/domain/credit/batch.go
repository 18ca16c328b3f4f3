package credit

import (
	"time"

	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveAmount   = errs.Mark(errs.New("credit amount must be positive"), errs.ErrValidation)
	ErrNonPositiveValidity = errs.Mark(errs.New("validity must be at least one day"), errs.ErrValidation)
	ErrMissingIdentifier   = errs.Mark(errs.New("account and provider ids are required"), errs.ErrValidation)
	ErrBatchInert          = errs.Mark(errs.New("credit batch cannot be drawn from"), errs.ErrInvalidState)
	ErrOverdraw            = errs.Mark(errs.New("draw exceeds batch remainder"), errs.ErrInvalidState)
)

type State string

const (
	StateActive   State = "active"
	StateDepleted State = "depleted"
	StateExpired  State = "expired"
)

// Batch is one grant of credits with its own expiry. AmountRemaining only
// ever moves down, through Draw or Expire.
type Batch struct {
	id              uuid.UUID
	accountID       uuid.UUID
	providerID      uuid.UUID
	amountTotal     int64
	amountRemaining int64
	amountForfeited int64
	grantedAt       time.Time
	expiresAt       time.Time
	expired         bool
	sourceID        string
	updatedAt       time.Time
}

type GrantParams struct {
	AccountID  uuid.UUID
	ProviderID uuid.UUID
	Amount     int64
	ValidDays  int
	SourceID   string
}

// NewGrant creates a full batch valid for ValidDays from now.
func NewGrant(p GrantParams, now time.Time) (*Batch, error) {
	if p.AccountID == uuid.Nil || p.ProviderID == uuid.Nil {
		return nil, ErrMissingIdentifier
	}
	if p.Amount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if p.ValidDays <= 0 {
		return nil, ErrNonPositiveValidity
	}

	return &Batch{
		id:              uuid.New(),
		accountID:       p.AccountID,
		providerID:      p.ProviderID,
		amountTotal:     p.Amount,
		amountRemaining: p.Amount,
		grantedAt:       now,
		expiresAt:       now.Add(time.Duration(p.ValidDays) * 24 * time.Hour),
		sourceID:        p.SourceID,
		updatedAt:       now,
	}, nil
}

func ReconstructBatch(
	id, accountID, providerID uuid.UUID,
	amountTotal, amountRemaining, amountForfeited int64,
	grantedAt, expiresAt time.Time,
	expired bool,
	sourceID string,
	updatedAt time.Time,
) *Batch {
	return &Batch{
		id:              id,
		accountID:       accountID,
		providerID:      providerID,
		amountTotal:     amountTotal,
		amountRemaining: amountRemaining,
		amountForfeited: amountForfeited,
		grantedAt:       grantedAt,
		expiresAt:       expiresAt,
		expired:         expired,
		sourceID:        sourceID,
		updatedAt:       updatedAt,
	}
}

// State is derived, never stored: expiry wins over depletion.
func (b *Batch) State(now time.Time) State {
	if b.expired || !now.Before(b.expiresAt) {
		return StateExpired
	}
	if b.amountRemaining == 0 {
		return StateDepleted
	}
	return StateActive
}

// Spendable reports whether consumption may draw from the batch at now.
func (b *Batch) Spendable(now time.Time) bool {
	return b.State(now) == StateActive
}

// Counts reports whether the remainder contributes to the balance at now.
func (b *Batch) Counts(now time.Time) bool {
	return !b.expired && now.Before(b.expiresAt)
}

// Draw takes amount from the remainder. It never takes the batch below zero.
func (b *Batch) Draw(amount int64, now time.Time) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	if !b.Spendable(now) {
		return ErrBatchInert
	}
	if amount > b.amountRemaining {
		return ErrOverdraw
	}
	b.amountRemaining -= amount
	b.updatedAt = now
	return nil
}

// NeedsSweep reports whether the expiry sweep still has to forfeit this batch.
func (b *Batch) NeedsSweep(now time.Time) bool {
	return !b.expired && b.amountRemaining > 0 && !now.Before(b.expiresAt)
}

// Expire forfeits the remainder of a batch past its expiry and returns the
// forfeited amount. It is a no-op on a batch already marked expired.
func (b *Batch) Expire(now time.Time) int64 {
	if !b.NeedsSweep(now) {
		return 0
	}
	forfeited := b.amountRemaining
	b.amountForfeited += forfeited
	b.amountRemaining = 0
	b.expired = true
	b.updatedAt = now
	return forfeited
}

func (b *Batch) ID() uuid.UUID { return b.id }
func (b *Batch) AccountID() uuid.UUID { return b.accountID }
func (b *Batch) ProviderID() uuid.UUID { return b.providerID }
func (b *Batch) AmountTotal() int64 { return b.amountTotal }
func (b *Batch) AmountRemaining() int64 { return b.amountRemaining }
func (b *Batch) AmountForfeited() int64 { return b.amountForfeited }
func (b *Batch) GrantedAt() time.Time { return b.grantedAt }
func (b *Batch) ExpiresAt() time.Time { return b.expiresAt }
func (b *Batch) Expired() bool { return b.expired }
func (b *Batch) SourceID() string { return b.sourceID }
func (b *Batch) UpdatedAt() time.Time { return b.updatedAt }

func (b *Batch) Clone() *Batch {
	c := *b
	return &c
}
