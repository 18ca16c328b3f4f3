package repository

import (
	"context"
	"log/slog"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/repository/converter"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, dbtx db.DBTX, arg db.BookingRow) error
	GetBookingByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (db.BookingRow, error)
	GetActiveBookingBySlot(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, date pgtype.Date, start pgtype.Time) (db.BookingRow, error)
	UpdateBookingStatus(ctx context.Context, dbtx db.DBTX, arg db.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	dbtx    db.DBTX
	logger  *slog.Logger
}

func NewBookingRepository(queries BookingWriteQueries, dbtx db.DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		dbtx:    dbtx,
		logger:  logger,
	}
}

func (r *BookingRepository) FindActiveBySlot(ctx context.Context, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) (*booking.Booking, error) {
	row, err := r.queries.GetActiveBookingBySlot(ctx, r.dbtx, resourceID,
		pgconv.DateToPgtype(date.Time()),
		pgconv.MinutesToPgtype(start.Minutes()),
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.ClassifyPgErr(r.logger, "failed to find active booking by slot", err)
	}
	return converter.BookingFromRow(row)
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "booking not found", err)
	}
	return converter.BookingFromRow(row)
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	row, err := converter.BookingToRow(b)
	if err != nil {
		return err
	}
	if err := r.queries.CreateBooking(ctx, r.dbtx, row); err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	affected, err := r.queries.UpdateBookingStatus(ctx, r.dbtx, db.UpdateBookingStatusParams{
		ID:         b.ID(),
		FromStatus: from.String(),
		ToStatus:   b.Status().String(),
		UpdatedAt:  pgconv.TimeToPgtype(b.UpdatedAt()),
	})
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to update booking status", err)
	}
	if affected == 0 {
		return shared.ErrTxConflict
	}
	return nil
}
