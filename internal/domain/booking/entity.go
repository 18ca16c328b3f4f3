package booking

import (
	"time"

	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrUnknownStatus       = errs.Mark(errs.New("unknown booking status"), errs.ErrValidation)
	ErrBookingCancelled    = errs.Mark(errs.New("booking is cancelled"), errs.ErrInvalidState)
	ErrBookingConfirmed    = errs.Mark(errs.New("booking is already confirmed"), errs.ErrAlreadyConfirmed)
	ErrBookingAlreadyVoid  = errs.Mark(errs.New("booking is already cancelled"), errs.ErrAlreadyCancelled)
	ErrNotBookingOwner     = errs.Mark(errs.New("booking belongs to another owner"), errs.ErrAccessDenied)
	ErrNotBookingProvider  = errs.Mark(errs.New("booking belongs to another provider"), errs.ErrAccessDenied)
	ErrTransitionForbidden = errs.Mark(errs.New("booking status transition not allowed"), errs.ErrInvalidState)
)

// Booking is a claim on one slot of one resource. Only the reservation
// store owns it; everything else refers to it by id.
type Booking struct {
	id          uuid.UUID
	resourceID  uuid.UUID
	ownerID     uuid.UUID
	providerID  uuid.UUID
	slot        TimeSlot
	status      Status
	notes       Notes
	contactInfo *ContactInfo
	createdAt   time.Time
	updatedAt   time.Time
}

type NewBookingParams struct {
	ResourceID  uuid.UUID
	ProviderID  uuid.UUID
	OwnerID     uuid.UUID
	Slot        TimeSlot
	Notes       Notes
	ContactInfo *ContactInfo
}

// NewBooking creates a pending booking.
func NewBooking(p NewBookingParams, now time.Time) (*Booking, error) {
	if p.ResourceID == uuid.Nil || p.ProviderID == uuid.Nil || p.OwnerID == uuid.Nil {
		return nil, ErrMissingIdentifier
	}
	if p.Slot.Date().IsZero() {
		return nil, ErrInvalidDate
	}

	var contact *ContactInfo
	if p.ContactInfo != nil && !p.ContactInfo.IsEmpty() {
		c := *p.ContactInfo
		contact = &c
	}

	return &Booking{
		id:          uuid.New(),
		resourceID:  p.ResourceID,
		ownerID:     p.OwnerID,
		providerID:  p.ProviderID,
		slot:        p.Slot,
		status:      StatusPending,
		notes:       p.Notes,
		contactInfo: contact,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructBooking(
	id, resourceID, ownerID, providerID uuid.UUID,
	slot TimeSlot,
	status Status,
	notes Notes,
	contactInfo *ContactInfo,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		resourceID:  resourceID,
		ownerID:     ownerID,
		providerID:  providerID,
		slot:        slot,
		status:      status,
		notes:       notes,
		contactInfo: contactInfo,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Confirm moves a pending booking to confirmed on behalf of its provider.
func (b *Booking) Confirm(providerID uuid.UUID, now time.Time) error {
	if b.providerID != providerID {
		return ErrNotBookingProvider
	}
	switch b.status {
	case StatusCancelled:
		return ErrBookingCancelled
	case StatusConfirmed:
		return ErrBookingConfirmed
	}
	return b.transition(StatusConfirmed, now)
}

// Cancel is the owner-side cancellation. Confirmed bookings may be cancelled.
func (b *Booking) Cancel(ownerID uuid.UUID, now time.Time) error {
	if b.ownerID != ownerID {
		return ErrNotBookingOwner
	}
	return b.cancel(now)
}

func (b *Booking) CancelByProvider(providerID uuid.UUID, now time.Time) error {
	if b.providerID != providerID {
		return ErrNotBookingProvider
	}
	return b.cancel(now)
}

func (b *Booking) cancel(now time.Time) error {
	if b.status == StatusCancelled {
		return ErrBookingAlreadyVoid
	}
	return b.transition(StatusCancelled, now)
}

func (b *Booking) transition(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return ErrTransitionForbidden
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// VisibleTo reports whether the account may read this booking.
func (b *Booking) VisibleTo(accountID uuid.UUID, providerIDs []uuid.UUID) bool {
	if b.ownerID == accountID {
		return true
	}
	for _, p := range providerIDs {
		if p == b.providerID {
			return true
		}
	}
	return false
}

func (b *Booking) IsActive() bool { return b.status.IsActive() }

func (b *Booking) ID() uuid.UUID { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) OwnerID() uuid.UUID { return b.ownerID }
func (b *Booking) ProviderID() uuid.UUID { return b.providerID }
func (b *Booking) Slot() TimeSlot { return b.slot }
func (b *Booking) Status() Status { return b.status }
func (b *Booking) Notes() Notes { return b.notes }
func (b *Booking) ContactInfo() *ContactInfo { return b.contactInfo }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Clone returns an independent copy. Stores hand out clones so callers
// cannot mutate persisted state without going through a transaction.
func (b *Booking) Clone() *Booking {
	c := *b
	if b.contactInfo != nil {
		ci := *b.contactInfo
		c.contactInfo = &ci
	}
	return &c
}
