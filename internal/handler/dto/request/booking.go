package request

import (
	"strings"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID  uuid.UUID           `json:"resourceId" binding:"required"`
	ProviderID  uuid.UUID           `json:"providerId" binding:"required"`
	Date        string              `json:"date" binding:"required,civildate"`
	StartTime   string              `json:"startTime" binding:"required,clocktime"`
	EndTime     *string             `json:"endTime,omitempty" binding:"omitempty,clocktime"`
	Notes       string              `json:"notes" binding:"max=1000"`
	ContactInfo *ContactInfoRequest `json:"contactInfo,omitempty"`
}

type ContactInfoRequest struct {
	Name  string `json:"name" binding:"max=100"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone" binding:"max=32"`
}

// ToInput parses the wire formats. The binding tags have already checked them,
// so errors here only surface when the struct is built by hand.
// accountEmail is the verified address from the token; it fills in a missing
// contact email so the studio can always reach the student.
func (r CreateBookingRequest) ToInput(ownerID uuid.UUID, accountEmail string) (commands.RequestBookingInput, error) {
	date, err := booking.ParseDate(r.Date)
	if err != nil {
		return commands.RequestBookingInput{}, err
	}
	start, err := booking.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.RequestBookingInput{}, err
	}

	in := commands.RequestBookingInput{
		ResourceID: r.ResourceID,
		ProviderID: r.ProviderID,
		OwnerID:    ownerID,
		Date:       date,
		StartTime:  start,
		Notes:      strings.TrimSpace(r.Notes),
	}
	if r.EndTime != nil {
		end, err := booking.ParseTimeOfDay(*r.EndTime)
		if err != nil {
			return commands.RequestBookingInput{}, err
		}
		in.EndTime = &end
	}
	var ci booking.ContactInfo
	if r.ContactInfo != nil {
		ci = booking.ContactInfo{
			Name:  strings.TrimSpace(r.ContactInfo.Name),
			Email: strings.TrimSpace(r.ContactInfo.Email),
			Phone: strings.TrimSpace(r.ContactInfo.Phone),
		}
	}
	if ci.Email == "" {
		ci.Email = strings.TrimSpace(accountEmail)
	}
	if !ci.IsEmpty() {
		in.ContactInfo = &ci
	}
	return in, nil
}

type ListResourceBookingsQuery struct {
	From string `form:"from" binding:"required,civildate"`
	To   string `form:"to" binding:"required,civildate"`
}

func (q ListResourceBookingsQuery) Range() (booking.Date, booking.Date, error) {
	from, err := booking.ParseDate(q.From)
	if err != nil {
		return booking.Date{}, booking.Date{}, err
	}
	to, err := booking.ParseDate(q.To)
	if err != nil {
		return booking.Date{}, booking.Date{}, err
	}
	return from, to, nil
}
