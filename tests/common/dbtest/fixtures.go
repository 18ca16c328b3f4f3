//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InsertCreditBatch writes a batch directly, bypassing the grant rules, so
// tests can place batches in the past.
func InsertCreditBatch(t *testing.T, db DBLike, accountID, providerID uuid.UUID, amount int64, grantedAt, expiresAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO credit_batches (id, account_id, provider_id, amount_total, amount_remaining, amount_forfeited, granted_at, expires_at, expired, updated_at)
		VALUES ($1, $2, $3, $4, $4, 0, $5, $6, false, $5)`,
		id, accountID, providerID, amount, grantedAt, expiresAt)
	require.NoError(t, err)
	return id
}

func CountActiveBookings(t *testing.T, db DBLike, resourceID uuid.UUID, date string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM bookings WHERE resource_id = $1 AND slot_date = $2::date AND status IN ('pending', 'confirmed')",
		resourceID, date).Scan(&n)
	require.NoError(t, err)
	return n
}

func CreditBatchState(t *testing.T, db DBLike, id uuid.UUID) (remaining, forfeited int64, expired bool) {
	t.Helper()

	err := db.QueryRow(context.Background(),
		"SELECT amount_remaining, amount_forfeited, expired FROM credit_batches WHERE id = $1", id).
		Scan(&remaining, &forfeited, &expired)
	require.NoError(t, err)
	return remaining, forfeited, expired
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
