package commands

//go:generate mockgen -destination=../../../tests/mock/commands/commands.go -package=commandsmock studio-booking/internal/usecase/commands BookingCommands,CreditCommands

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBookingRequested EventType = "booking.requested"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
	EventCreditsExpired   EventType = "credits.expired"
)

// Event is what the notification dispatcher receives after a commit.
type Event struct {
	Type        EventType     `json:"type"`
	BookingID   uuid.UUID     `json:"booking_id,omitempty"`
	ResourceID  uuid.UUID     `json:"resource_id,omitempty"`
	OwnerID     uuid.UUID     `json:"owner_id,omitempty"`
	ProviderID  uuid.UUID     `json:"provider_id,omitempty"`
	Date        string        `json:"date,omitempty"`
	StartTime   string        `json:"start_time,omitempty"`
	EndTime     string        `json:"end_time,omitempty"`
	Status      string        `json:"status,omitempty"`
	CancelledBy string        `json:"cancelled_by,omitempty"`
	Expired     *ExpireResult `json:"expired,omitempty"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// Notifier delivers events to whoever dispatches email or push messages.
// A failed publish never undoes the committed change.
type Notifier interface {
	Publish(ctx context.Context, event Event) error
}

func bookingEvent(t EventType, b *booking.Booking, now time.Time) Event {
	slot := b.Slot()
	return Event{
		Type:       t,
		BookingID:  b.ID(),
		ResourceID: b.ResourceID(),
		OwnerID:    b.OwnerID(),
		ProviderID: b.ProviderID(),
		Date:       slot.Date().String(),
		StartTime:  slot.Start().String(),
		EndTime:    slot.End().String(),
		Status:     b.Status().String(),
		OccurredAt: now,
	}
}
