//go:build unit

package repository

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/repository/converter"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingWriteQueries struct {
	mock.Mock
}

func (m *MockBookingWriteQueries) CreateBooking(ctx context.Context, dbtx db.DBTX, arg db.BookingRow) error {
	args := m.Called(ctx, dbtx, arg)
	return args.Error(0)
}

func (m *MockBookingWriteQueries) GetBookingByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (db.BookingRow, error) {
	args := m.Called(ctx, dbtx, id)
	return args.Get(0).(db.BookingRow), args.Error(1)
}

func (m *MockBookingWriteQueries) GetActiveBookingBySlot(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, date pgtype.Date, start pgtype.Time) (db.BookingRow, error) {
	args := m.Called(ctx, dbtx, resourceID, date, start)
	return args.Get(0).(db.BookingRow), args.Error(1)
}

func (m *MockBookingWriteQueries) UpdateBookingStatus(ctx context.Context, dbtx db.DBTX, arg db.UpdateBookingStatusParams) (int64, error) {
	args := m.Called(ctx, dbtx, arg)
	return args.Get(0).(int64), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newBooking(t *testing.T) *booking.Booking {
	t.Helper()
	start, err := booking.NewTimeOfDay(10, 0)
	require.NoError(t, err)
	slot, err := booking.NewFixedTimeSlot(booking.NewDate(2025, 6, 1), start, time.Hour)
	require.NoError(t, err)
	notes, err := booking.NewNotes("bring a mat")
	require.NoError(t, err)
	b, err := booking.NewBooking(booking.NewBookingParams{
		ResourceID:  uuid.New(),
		ProviderID:  uuid.New(),
		OwnerID:     uuid.New(),
		Slot:        slot,
		Notes:       notes,
		ContactInfo: &booking.ContactInfo{Email: "student@example.com"},
	}, time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return b
}

func TestBookingRepository_Create(t *testing.T) {
	tests := []struct {
		name     string
		mockErr  error
		wantMark error
		wantKind infra.RepositoryErrorKind
	}{
		{name: "success"},
		{
			name:     "active slot already taken",
			mockErr:  &pgconn.PgError{Code: "23505", ConstraintName: infra.ActiveSlotConstraint},
			wantMark: errs.ErrSlotConflict,
			wantKind: infra.KindSlotTaken,
		},
		{
			name:     "other unique violation",
			mockErr:  &pgconn.PgError{Code: "23505", ConstraintName: "bookings_pkey"},
			wantKind: infra.KindDuplicateKey,
		},
		{
			name:     "serialization failure",
			mockErr:  &pgconn.PgError{Code: "40001"},
			wantMark: shared.ErrTxConflict,
		},
		{
			name:     "database error",
			mockErr:  assert.AnError,
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(t)
			mockQueries := new(MockBookingWriteQueries)
			mockQueries.On("CreateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(row db.BookingRow) bool {
				return row.ID == b.ID() && row.Status == "pending"
			})).Return(tt.mockErr)

			repo := NewBookingRepository(mockQueries, nil, discardLogger())
			err := repo.Create(context.Background(), b)

			if tt.mockErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				if tt.wantMark != nil {
					assert.True(t, errs.Is(err, tt.wantMark), "got %v", err)
				}
				if tt.wantKind != "" {
					assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
				}
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestBookingRepository_FindActiveBySlot(t *testing.T) {
	b := newBooking(t)
	row, err := converter.BookingToRow(b)
	require.NoError(t, err)

	t.Run("free slot", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("GetActiveBookingBySlot", mock.Anything, mock.Anything, b.ResourceID(), row.SlotDate, row.StartTime).
			Return(db.BookingRow{}, pgx.ErrNoRows)

		repo := NewBookingRepository(mockQueries, nil, discardLogger())
		got, err := repo.FindActiveBySlot(context.Background(), b.ResourceID(), b.Slot().Date(), b.Slot().Start())

		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("taken slot", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("GetActiveBookingBySlot", mock.Anything, mock.Anything, b.ResourceID(), row.SlotDate, row.StartTime).
			Return(row, nil)

		repo := NewBookingRepository(mockQueries, nil, discardLogger())
		got, err := repo.FindActiveBySlot(context.Background(), b.ResourceID(), b.Slot().Date(), b.Slot().Start())

		require.NoError(t, err)
		assert.Equal(t, b.ID(), got.ID())
		assert.Equal(t, b.Slot(), got.Slot())
		assert.Equal(t, "bring a mat", got.Notes().String())
		assert.Equal(t, "student@example.com", got.ContactInfo().Email)
	})

	t.Run("connection lost", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("GetActiveBookingBySlot", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(db.BookingRow{}, &pgconn.PgError{Code: "57P01"})

		repo := NewBookingRepository(mockQueries, nil, discardLogger())
		_, err := repo.FindActiveBySlot(context.Background(), b.ResourceID(), b.Slot().Date(), b.Slot().Start())

		assert.True(t, errs.Is(err, errs.ErrStoreUnavailable))
	})
}

func TestBookingRepository_FindByID_NotFound(t *testing.T) {
	id := uuid.New()
	mockQueries := new(MockBookingWriteQueries)
	mockQueries.On("GetBookingByID", mock.Anything, mock.Anything, id).Return(db.BookingRow{}, pgx.ErrNoRows)

	repo := NewBookingRepository(mockQueries, nil, discardLogger())
	_, err := repo.FindByID(context.Background(), id)

	assert.True(t, infra.IsKind(err, infra.KindNotFound))
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		mockErr  error
		wantErr  error
	}{
		{name: "status still matches", affected: 1},
		{name: "status moved underneath", affected: 0, wantErr: shared.ErrTxConflict},
		{name: "deadlock", mockErr: &pgconn.PgError{Code: "40P01"}, wantErr: shared.ErrTxConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(t)
			require.NoError(t, b.Confirm(b.ProviderID(), b.CreatedAt().Add(time.Minute)))

			mockQueries := new(MockBookingWriteQueries)
			mockQueries.On("UpdateBookingStatus", mock.Anything, mock.Anything, db.UpdateBookingStatusParams{
				ID:         b.ID(),
				FromStatus: "pending",
				ToStatus:   "confirmed",
				UpdatedAt:  pgtype.Timestamptz{Time: b.UpdatedAt(), Valid: true},
			}).Return(tt.affected, tt.mockErr)

			repo := NewBookingRepository(mockQueries, nil, discardLogger())
			err := repo.UpdateStatus(context.Background(), b, booking.StatusPending)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errs.Is(err, tt.wantErr), "got %v", err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}
