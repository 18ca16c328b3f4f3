package response

import (
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID            `json:"id"`
	ResourceID  uuid.UUID            `json:"resourceId"`
	OwnerID     uuid.UUID            `json:"ownerId"`
	ProviderID  uuid.UUID            `json:"providerId"`
	Date        string               `json:"date"`
	StartTime   string               `json:"startTime"`
	EndTime     string               `json:"endTime"`
	Status      string               `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	ContactInfo *ContactInfoResponse `json:"contactInfo,omitempty"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

type ContactInfoResponse struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return FromBookingView(queries.NewBookingView(b))
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	res := &BookingResponse{
		ID:         v.ID,
		ResourceID: v.ResourceID,
		OwnerID:    v.OwnerID,
		ProviderID: v.ProviderID,
		Date:       v.Date.String(),
		StartTime:  v.StartTime.String(),
		EndTime:    v.EndTime.String(),
		Status:     v.Status.String(),
		Notes:      v.Notes,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
	if v.ContactInfo != nil {
		res.ContactInfo = &ContactInfoResponse{
			Name:  v.ContactInfo.Name,
			Email: v.ContactInfo.Email,
			Phone: v.ContactInfo.Phone,
		}
	}
	return res
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}
