package queries

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock studio-booking/internal/usecase/queries BookingQueries,CreditQueries

import (
	"context"
	"slices"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.Mark(errs.New("booking view not found"), errs.ErrNotFound)
	ErrBookingAccess   = errs.Mark(errs.New("booking is not visible to this account"), errs.ErrAccessDenied)
)

type BookingView struct {
	ID          uuid.UUID            `json:"id"`
	ResourceID  uuid.UUID            `json:"resource_id"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	ProviderID  uuid.UUID            `json:"provider_id"`
	Date        booking.Date         `json:"-"`
	StartTime   booking.TimeOfDay    `json:"-"`
	EndTime     booking.TimeOfDay    `json:"-"`
	Status      booking.Status       `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	ContactInfo *booking.ContactInfo `json:"contact_info,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// Viewer is the caller a booking is being read for.
type Viewer struct {
	AccountID   uuid.UUID
	ProviderIDs []uuid.UUID
}

func (v Viewer) canSee(view *BookingView) bool {
	return view.OwnerID == v.AccountID || slices.Contains(v.ProviderIDs, view.ProviderID)
}

// NewBookingView flattens an entity for stores that keep domain objects.
func NewBookingView(b *booking.Booking) *BookingView {
	slot := b.Slot()
	view := &BookingView{
		ID:         b.ID(),
		ResourceID: b.ResourceID(),
		OwnerID:    b.OwnerID(),
		ProviderID: b.ProviderID(),
		Date:       slot.Date(),
		StartTime:  slot.Start(),
		EndTime:    slot.End(),
		Status:     b.Status(),
		Notes:      b.Notes().String(),
		CreatedAt:  b.CreatedAt(),
		UpdatedAt:  b.UpdatedAt(),
	}
	if ci := b.ContactInfo(); ci != nil {
		c := *ci
		view.ContactInfo = &c
	}
	return view
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// FindActiveByResource returns pending and confirmed bookings whose date
	// lies in [from, to], ordered by date then start time.
	FindActiveByResource(ctx context.Context, resourceID uuid.UUID, from, to booking.Date) ([]*BookingView, error)
	// FindByOwner returns every booking of the owner, newest slot first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*BookingView, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, from, to booking.Date) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !viewer.canSee(view) {
		return nil, ErrBookingAccess
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByResource(ctx context.Context, resourceID uuid.UUID, from, to booking.Date) ([]*BookingView, error) {
	if resourceID == uuid.Nil {
		return nil, errs.Validation("resource id is required")
	}
	if _, err := booking.NewDateRange(from, to); err != nil {
		return nil, err
	}
	return q.store.FindActiveByResource(ctx, resourceID, from, to)
}

func (q *bookingQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error) {
	return q.store.FindByOwner(ctx, ownerID)
}
