//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/infra"
	"studio-booking/internal/infra/db"
	"studio-booking/internal/infra/readstore"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/pgconv"
	readstoremock "studio-booking/tests/mock/readstore"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	errDBConnectionLost = errors.New("database connection lost")
	discard             = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func bookingRow(id uuid.UUID, status string) db.BookingRow {
	created := time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
	return db.BookingRow{
		ID:          id,
		ResourceID:  uuid.New(),
		OwnerID:     uuid.New(),
		ProviderID:  uuid.New(),
		SlotDate:    pgconv.DateToPgtype(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		StartTime:   pgconv.MinutesToPgtype(10 * 60),
		EndTime:     pgconv.MinutesToPgtype(11 * 60),
		Status:      status,
		Notes:       "first lesson",
		ContactInfo: []byte(`{"phone":"090-0000-0000"}`),
		CreatedAt:   pgconv.TimeToPgtype(created),
		UpdatedAt:   pgconv.TimeToPgtype(created),
	}
}

// =============================================================================
// FindByID Tests
// =============================================================================

func TestBookingReadStore_FindByID(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	testCases := []struct {
		name       string
		setupMock  func(*readstoremock.MockBookingReadQueries)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: booking found",
			setupMock: func(m *readstoremock.MockBookingReadQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(bookingRow(bookingID, "confirmed"), nil)
			},
		},
		{
			name: "error: booking not found",
			setupMock: func(m *readstoremock.MockBookingReadQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(db.BookingRow{}, pgx.ErrNoRows)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name: "error: database failure",
			setupMock: func(m *readstoremock.MockBookingReadQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(db.BookingRow{}, errDBConnectionLost)
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name: "error: corrupt status",
			setupMock: func(m *readstoremock.MockBookingReadQueries) {
				m.EXPECT().GetBookingByID(ctx, gomock.Any(), bookingID).Return(bookingRow(bookingID, "archived"), nil)
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockQueries := readstoremock.NewMockBookingReadQueries(ctrl)
			tc.setupMock(mockQueries)

			store := readstore.NewBookingReadStore(mockQueries, nil, discard)
			view, err := store.FindByID(ctx, bookingID)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "got %v", err)
				assert.Nil(t, view)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, bookingID, view.ID)
			assert.Equal(t, booking.StatusConfirmed, view.Status)
			assert.Equal(t, "2025-06-01", view.Date.String())
			assert.Equal(t, "10:00", view.StartTime.String())
			assert.Equal(t, "11:00", view.EndTime.String())
			assert.Equal(t, "first lesson", view.Notes)
			require.NotNil(t, view.ContactInfo)
			assert.Equal(t, "090-0000-0000", view.ContactInfo.Phone)
		})
	}
}

// =============================================================================
// List Tests
// =============================================================================

func TestBookingReadStore_FindActiveByResource(t *testing.T) {
	ctx := context.Background()
	resourceID := uuid.New()
	from := booking.NewDate(2025, 6, 1)
	to := booking.NewDate(2025, 6, 7)

	t.Run("success: rows mapped in order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockBookingReadQueries(ctrl)
		first, second := uuid.New(), uuid.New()
		mockQueries.EXPECT().
			ListActiveBookingsByResource(ctx, gomock.Any(), resourceID, pgconv.DateToPgtype(from.Time()), pgconv.DateToPgtype(to.Time())).
			Return([]db.BookingRow{bookingRow(first, "pending"), bookingRow(second, "confirmed")}, nil)

		store := readstore.NewBookingReadStore(mockQueries, nil, discard)
		views, err := store.FindActiveByResource(ctx, resourceID, from, to)

		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, first, views[0].ID)
		assert.Equal(t, second, views[1].ID)
	})

	t.Run("error: store unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := readstoremock.NewMockBookingReadQueries(ctrl)
		mockQueries.EXPECT().
			ListActiveBookingsByResource(ctx, gomock.Any(), resourceID, gomock.Any(), gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "57P03"})

		store := readstore.NewBookingReadStore(mockQueries, nil, discard)
		_, err := store.FindActiveByResource(ctx, resourceID, from, to)

		assert.True(t, errs.Is(err, errs.ErrStoreUnavailable))
	})
}

func TestBookingReadStore_FindByOwner_Empty(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	ctrl := gomock.NewController(t)
	mockQueries := readstoremock.NewMockBookingReadQueries(ctrl)
	mockQueries.EXPECT().ListBookingsByOwner(ctx, gomock.Any(), ownerID).Return(nil, nil)

	store := readstore.NewBookingReadStore(mockQueries, nil, discard)
	views, err := store.FindByOwner(ctx, ownerID)

	require.NoError(t, err)
	assert.Empty(t, views)
}
