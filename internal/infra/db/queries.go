package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Queries holds the SQL for both aggregates. Every method takes the DBTX to
// run on so repositories decide whether a call joins a transaction.
type Queries struct{}

func New() *Queries {
	return &Queries{}
}

type BookingRow struct {
	ID          uuid.UUID
	ResourceID  uuid.UUID
	OwnerID     uuid.UUID
	ProviderID  uuid.UUID
	SlotDate    pgtype.Date
	StartTime   pgtype.Time
	EndTime     pgtype.Time
	Status      string
	Notes       string
	ContactInfo []byte
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

const bookingColumns = `id, resource_id, owner_id, provider_id, slot_date, start_time, end_time, status, notes, contact_info, created_at, updated_at`

func scanBooking(row pgx.Row) (BookingRow, error) {
	var b BookingRow
	err := row.Scan(
		&b.ID,
		&b.ResourceID,
		&b.OwnerID,
		&b.ProviderID,
		&b.SlotDate,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.Notes,
		&b.ContactInfo,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

func collectBookings(rows pgx.Rows) ([]BookingRow, error) {
	defer rows.Close()
	var items []BookingRow
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const createBooking = `
INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg BookingRow) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID,
		arg.ResourceID,
		arg.OwnerID,
		arg.ProviderID,
		arg.SlotDate,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.Notes,
		arg.ContactInfo,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBookingByID = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (BookingRow, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByID, id))
}

const getActiveBookingBySlot = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE resource_id = $1 AND slot_date = $2 AND start_time = $3
  AND status IN ('pending', 'confirmed')`

func (q *Queries) GetActiveBookingBySlot(ctx context.Context, db DBTX, resourceID uuid.UUID, date pgtype.Date, start pgtype.Time) (BookingRow, error) {
	return scanBooking(db.QueryRow(ctx, getActiveBookingBySlot, resourceID, date, start))
}

type UpdateBookingStatusParams struct {
	ID         uuid.UUID
	FromStatus string
	ToStatus   string
	UpdatedAt  pgtype.Timestamptz
}

const updateBookingStatus = `
UPDATE bookings SET status = $3, updated_at = $4
WHERE id = $1 AND status = $2`

// UpdateBookingStatus reports how many rows matched the expected status.
func (q *Queries) UpdateBookingStatus(ctx context.Context, db DBTX, arg UpdateBookingStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateBookingStatus, arg.ID, arg.FromStatus, arg.ToStatus, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listActiveBookingsByResource = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE resource_id = $1 AND slot_date BETWEEN $2 AND $3
  AND status IN ('pending', 'confirmed')
ORDER BY slot_date, start_time`

func (q *Queries) ListActiveBookingsByResource(ctx context.Context, db DBTX, resourceID uuid.UUID, from, to pgtype.Date) ([]BookingRow, error) {
	rows, err := db.Query(ctx, listActiveBookingsByResource, resourceID, from, to)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

const listBookingsByOwner = `
SELECT ` + bookingColumns + `
FROM bookings
WHERE owner_id = $1
ORDER BY slot_date DESC, start_time DESC, created_at DESC`

func (q *Queries) ListBookingsByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) ([]BookingRow, error) {
	rows, err := db.Query(ctx, listBookingsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

type CreditBatchRow struct {
	ID              uuid.UUID
	AccountID       uuid.UUID
	ProviderID      uuid.UUID
	AmountTotal     int64
	AmountRemaining int64
	AmountForfeited int64
	GrantedAt       pgtype.Timestamptz
	ExpiresAt       pgtype.Timestamptz
	Expired         bool
	SourceID        pgtype.Text
	UpdatedAt       pgtype.Timestamptz
}

const creditBatchColumns = `id, account_id, provider_id, amount_total, amount_remaining, amount_forfeited, granted_at, expires_at, expired, source_id, updated_at`

func scanCreditBatch(row pgx.Row) (CreditBatchRow, error) {
	var b CreditBatchRow
	err := row.Scan(
		&b.ID,
		&b.AccountID,
		&b.ProviderID,
		&b.AmountTotal,
		&b.AmountRemaining,
		&b.AmountForfeited,
		&b.GrantedAt,
		&b.ExpiresAt,
		&b.Expired,
		&b.SourceID,
		&b.UpdatedAt,
	)
	return b, err
}

func collectCreditBatches(rows pgx.Rows) ([]CreditBatchRow, error) {
	defer rows.Close()
	var items []CreditBatchRow
	for rows.Next() {
		b, err := scanCreditBatch(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const createCreditBatch = `
INSERT INTO credit_batches (` + creditBatchColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

func (q *Queries) CreateCreditBatch(ctx context.Context, db DBTX, arg CreditBatchRow) error {
	_, err := db.Exec(ctx, createCreditBatch,
		arg.ID,
		arg.AccountID,
		arg.ProviderID,
		arg.AmountTotal,
		arg.AmountRemaining,
		arg.AmountForfeited,
		arg.GrantedAt,
		arg.ExpiresAt,
		arg.Expired,
		arg.SourceID,
		arg.UpdatedAt,
	)
	return err
}

const getCreditBatchForUpdate = `SELECT ` + creditBatchColumns + ` FROM credit_batches WHERE id = $1 FOR UPDATE`

func (q *Queries) GetCreditBatchForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (CreditBatchRow, error) {
	return scanCreditBatch(db.QueryRow(ctx, getCreditBatchForUpdate, id))
}

const lockSpendableCreditBatches = `
SELECT ` + creditBatchColumns + `
FROM credit_batches
WHERE account_id = $1 AND provider_id = $2
  AND expired = false AND amount_remaining > 0 AND expires_at > $3
ORDER BY expires_at, granted_at, id
FOR UPDATE`

func (q *Queries) LockSpendableCreditBatches(ctx context.Context, db DBTX, accountID, providerID uuid.UUID, now time.Time) ([]CreditBatchRow, error) {
	rows, err := db.Query(ctx, lockSpendableCreditBatches, accountID, providerID, now)
	if err != nil {
		return nil, err
	}
	return collectCreditBatches(rows)
}

const updateCreditBatch = `
UPDATE credit_batches
SET amount_remaining = $2, amount_forfeited = $3, expired = $4, updated_at = $5
WHERE id = $1`

func (q *Queries) UpdateCreditBatch(ctx context.Context, db DBTX, arg CreditBatchRow) (int64, error) {
	tag, err := db.Exec(ctx, updateCreditBatch, arg.ID, arg.AmountRemaining, arg.AmountForfeited, arg.Expired, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const sumAvailableCredits = `
SELECT COALESCE(SUM(amount_remaining), 0)::BIGINT
FROM credit_batches
WHERE account_id = $1 AND provider_id = $2 AND expired = false AND expires_at > $3`

func (q *Queries) SumAvailableCredits(ctx context.Context, db DBTX, accountID, providerID uuid.UUID, now time.Time) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, sumAvailableCredits, accountID, providerID, now).Scan(&total)
	return total, err
}

const listCreditBatchesByLedger = `
SELECT ` + creditBatchColumns + `
FROM credit_batches
WHERE account_id = $1 AND provider_id = $2
ORDER BY expires_at, granted_at, id`

func (q *Queries) ListCreditBatchesByLedger(ctx context.Context, db DBTX, accountID, providerID uuid.UUID) ([]CreditBatchRow, error) {
	rows, err := db.Query(ctx, listCreditBatchesByLedger, accountID, providerID)
	if err != nil {
		return nil, err
	}
	return collectCreditBatches(rows)
}

const listSweepCandidates = `
SELECT ` + creditBatchColumns + `
FROM credit_batches
WHERE expired = false AND amount_remaining > 0 AND expires_at <= $1 AND id > $2
ORDER BY id
LIMIT $3`

func (q *Queries) ListSweepCandidates(ctx context.Context, db DBTX, now time.Time, afterID uuid.UUID, limit int32) ([]CreditBatchRow, error) {
	rows, err := db.Query(ctx, listSweepCandidates, now, afterID, limit)
	if err != nil {
		return nil, err
	}
	return collectCreditBatches(rows)
}
