package shared

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/credit"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic.
	// fn may run more than once and must not have side effects outside tx.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Credits() CreditRepository
}

// CommandReads are plain reads with no transaction around them. They can
// be stale by the time a transaction starts and are only used to shed load.
type CommandReads interface {
	ActiveBookingBySlot(ctx context.Context, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) (*booking.Booking, error)
	// SweepCandidates pages through batches NeedsSweep would accept, ordered
	// by id and strictly after afterID.
	SweepCandidates(ctx context.Context, now time.Time, afterID uuid.UUID, limit int) ([]*credit.Batch, error)
}

type BookingRepository interface {
	// FindActiveBySlot returns nil, nil when the slot is free.
	FindActiveBySlot(ctx context.Context, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) (*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatus writes b's status only if the stored status still equals
	// from. A mismatch is reported as ErrTxConflict.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error
}

type CreditRepository interface {
	// ListSpendable returns batches of the ledger that can still be drawn
	// from at now, in FIFO order.
	ListSpendable(ctx context.Context, accountID, providerID uuid.UUID, now time.Time) ([]*credit.Batch, error)
	FindByID(ctx context.Context, id uuid.UUID) (*credit.Batch, error)
	Create(ctx context.Context, b *credit.Batch) error
	Save(ctx context.Context, b *credit.Batch) error
}
