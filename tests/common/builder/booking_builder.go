//go:build unit || e2e

package builder

import (
	"time"

	"studio-booking/internal/domain/booking"
	reqdto "studio-booking/internal/handler/dto/request"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	ProviderID  uuid.UUID
	OwnerID     uuid.UUID
	Date        string
	StartTime   string
	EndTime     string
	Status      booking.Status
	Notes       string
	ContactInfo *booking.ContactInfo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:         uuid.New(),
		ResourceID: uuid.New(),
		ProviderID: uuid.New(),
		OwnerID:    uuid.New(),
		Date:       "2025-06-10",
		StartTime:  "10:00",
		EndTime:    "11:00",
		Status:     booking.StatusPending,
		Notes:      "Bring the violin",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	date, err := booking.ParseDate(b.Date)
	if err != nil {
		panic(err)
	}
	start, err := booking.ParseTimeOfDay(b.StartTime)
	if err != nil {
		panic(err)
	}
	end, err := booking.ParseTimeOfDay(b.EndTime)
	if err != nil {
		panic(err)
	}
	slot, err := booking.NewTimeSlot(date, start, end)
	if err != nil {
		panic(err)
	}
	notes, err := booking.NewNotes(b.Notes)
	if err != nil {
		panic(err)
	}
	return booking.ReconstructBooking(b.ID, b.ResourceID, b.OwnerID, b.ProviderID, slot, b.Status, notes, b.ContactInfo, b.CreatedAt, b.UpdatedAt)
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return queries.NewBookingView(b.BuildDomain())
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	end := b.EndTime
	req := reqdto.CreateBookingRequest{
		ResourceID: b.ResourceID,
		ProviderID: b.ProviderID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    &end,
		Notes:      b.Notes,
	}
	if b.ContactInfo != nil {
		req.ContactInfo = &reqdto.ContactInfoRequest{
			Name:  b.ContactInfo.Name,
			Email: b.ContactInfo.Email,
			Phone: b.ContactInfo.Phone,
		}
	}
	return req
}

// Fluent builder methods
func (b *BookingBuilder) WithOwnerID(ownerID uuid.UUID) *BookingBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *BookingBuilder) WithProviderID(providerID uuid.UUID) *BookingBuilder {
	b.ProviderID = providerID
	return b
}

func (b *BookingBuilder) WithResourceID(resourceID uuid.UUID) *BookingBuilder {
	b.ResourceID = resourceID
	return b
}

func (b *BookingBuilder) WithSlot(date, start, end string) *BookingBuilder {
	b.Date = date
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithContactInfo(name, email, phone string) *BookingBuilder {
	b.ContactInfo = &booking.ContactInfo{Name: name, Email: email, Phone: phone}
	return b
}

func (b *BookingBuilder) AsConfirmed() *BookingBuilder {
	b.Status = booking.StatusConfirmed
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = booking.StatusCancelled
	return b
}
