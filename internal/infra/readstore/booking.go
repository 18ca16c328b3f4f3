package readstore

import (
	"context"
	"log/slog"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/repository/converter"
	"studio-booking/internal/pkg/pgconv"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/readstore/booking.go -package=readstoremock

type BookingReadQueries interface {
	GetBookingByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (db.BookingRow, error)
	ListActiveBookingsByResource(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, from, to pgtype.Date) ([]db.BookingRow, error)
	ListBookingsByOwner(ctx context.Context, dbtx db.DBTX, ownerID uuid.UUID) ([]db.BookingRow, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	dbtx    db.DBTX
	logger  *slog.Logger
}

func NewBookingReadStore(queries BookingReadQueries, dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		dbtx:    dbtx,
		logger:  logger,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.dbtx, id)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "booking not found", err)
	}
	b, err := converter.BookingFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode booking", err)
	}
	return queries.NewBookingView(b), nil
}

func (r *BookingReadStore) FindActiveByResource(ctx context.Context, resourceID uuid.UUID, from, to booking.Date) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListActiveBookingsByResource(ctx, r.dbtx, resourceID,
		pgconv.DateToPgtype(from.Time()),
		pgconv.DateToPgtype(to.Time()),
	)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list bookings by resource", err)
	}
	return r.toViews(rows)
}

func (r *BookingReadStore) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByOwner(ctx, r.dbtx, ownerID)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to list bookings by owner", err)
	}
	return r.toViews(rows)
}

func (r *BookingReadStore) toViews(rows []db.BookingRow) ([]*queries.BookingView, error) {
	bookings, err := converter.BookingsFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode bookings", err)
	}
	views := make([]*queries.BookingView, len(bookings))
	for i, b := range bookings {
		views[i] = queries.NewBookingView(b)
	}
	return views, nil
}
