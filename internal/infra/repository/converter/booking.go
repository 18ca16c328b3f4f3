package converter

import (
	"encoding/json"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/pgconv"
)

func BookingToRow(b *booking.Booking) (db.BookingRow, error) {
	slot := b.Slot()
	row := db.BookingRow{
		ID:         b.ID(),
		ResourceID: b.ResourceID(),
		OwnerID:    b.OwnerID(),
		ProviderID: b.ProviderID(),
		SlotDate:   pgconv.DateToPgtype(slot.Date().Time()),
		StartTime:  pgconv.MinutesToPgtype(slot.Start().Minutes()),
		EndTime:    pgconv.MinutesToPgtype(slot.End().Minutes()),
		Status:     b.Status().String(),
		Notes:      b.Notes().String(),
		CreatedAt:  pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:  pgconv.TimeToPgtype(b.UpdatedAt()),
	}

	if ci := b.ContactInfo(); ci != nil {
		raw, err := json.Marshal(ci)
		if err != nil {
			return db.BookingRow{}, errs.Wrap(err, "failed to encode contact info")
		}
		row.ContactInfo = raw
	}

	return row, nil
}

func BookingFromRow(row db.BookingRow) (*booking.Booking, error) {
	startMin, err := pgconv.MinutesFromPgtype(row.StartTime)
	if err != nil {
		return nil, errs.Wrap(err, "start_time")
	}
	endMin, err := pgconv.MinutesFromPgtype(row.EndTime)
	if err != nil {
		return nil, errs.Wrap(err, "end_time")
	}
	start, err := booking.TimeOfDayFromDuration(time.Duration(startMin) * time.Minute)
	if err != nil {
		return nil, err
	}
	end, err := booking.TimeOfDayFromDuration(time.Duration(endMin) * time.Minute)
	if err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(booking.DateFromTime(pgconv.DateFromPgtype(row.SlotDate)), start, end)
	if err != nil {
		return nil, errs.Wrapf(err, "stored slot of booking %s", row.ID)
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "stored status of booking %s", row.ID)
	}
	notes, err := booking.NewNotes(row.Notes)
	if err != nil {
		return nil, err
	}

	var contact *booking.ContactInfo
	if len(row.ContactInfo) > 0 {
		var ci booking.ContactInfo
		if err := json.Unmarshal(row.ContactInfo, &ci); err != nil {
			return nil, errs.Wrap(err, "failed to decode contact info")
		}
		if !ci.IsEmpty() {
			contact = &ci
		}
	}

	return booking.ReconstructBooking(
		row.ID, row.ResourceID, row.OwnerID, row.ProviderID,
		slot,
		status,
		notes,
		contact,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func BookingsFromRows(rows []db.BookingRow) ([]*booking.Booking, error) {
	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, err := BookingFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
