//go:build unit

package credit

import (
	"testing"
	"time"

	"studio-booking/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)

func grant(t *testing.T, accountID, providerID uuid.UUID, amount int64, days int, at time.Time) *Batch {
	t.Helper()
	b, err := NewGrant(GrantParams{AccountID: accountID, ProviderID: providerID, Amount: amount, ValidDays: days}, at)
	require.NoError(t, err)
	return b
}

func TestNewGrant(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	tests := []struct {
		name    string
		params  GrantParams
		wantErr error
	}{
		{name: "valid", params: GrantParams{AccountID: acct, ProviderID: prov, Amount: 10, ValidDays: 30}},
		{name: "zero amount", params: GrantParams{AccountID: acct, ProviderID: prov, Amount: 0, ValidDays: 30}, wantErr: ErrNonPositiveAmount},
		{name: "zero days", params: GrantParams{AccountID: acct, ProviderID: prov, Amount: 10, ValidDays: 0}, wantErr: ErrNonPositiveValidity},
		{name: "no provider", params: GrantParams{AccountID: acct, Amount: 10, ValidDays: 1}, wantErr: ErrMissingIdentifier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewGrant(tt.params, now)
			if tt.wantErr != nil {
				assert.True(t, errs.Is(err, tt.wantErr))
				assert.True(t, errs.Is(err, errs.ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.params.Amount, b.AmountRemaining())
			assert.Equal(t, now.Add(30*24*time.Hour), b.ExpiresAt())
			assert.Equal(t, StateActive, b.State(now))
		})
	}
}

func TestBatchState(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	b := grant(t, acct, prov, 5, 1, now)

	assert.Equal(t, StateActive, b.State(now))
	assert.Equal(t, StateExpired, b.State(b.ExpiresAt()), "expiry instant is already expired")

	require.NoError(t, b.Draw(5, now))
	assert.Equal(t, StateDepleted, b.State(now))
	assert.Equal(t, StateExpired, b.State(b.ExpiresAt()), "expiry wins over depletion")
	assert.False(t, b.NeedsSweep(b.ExpiresAt()))
}

func TestBatchDraw(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	b := grant(t, acct, prov, 5, 1, now)

	assert.True(t, errs.Is(b.Draw(6, now), ErrOverdraw))
	assert.True(t, errs.Is(b.Draw(0, now), ErrNonPositiveAmount))
	assert.True(t, errs.Is(b.Draw(1, b.ExpiresAt()), ErrBatchInert))
	assert.Equal(t, int64(5), b.AmountRemaining())
}

func TestBatchExpire(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	b := grant(t, acct, prov, 4, 1, now)

	assert.Equal(t, int64(0), b.Expire(now), "not yet due")

	later := now.Add(48 * time.Hour)
	assert.Equal(t, int64(4), b.Expire(later))
	assert.True(t, b.Expired())
	assert.Equal(t, int64(0), b.AmountRemaining())
	assert.Equal(t, int64(4), b.AmountForfeited())

	assert.Equal(t, int64(0), b.Expire(later), "second expire is a no-op")
	assert.Equal(t, int64(4), b.AmountForfeited())
}

func TestConsume_FIFO(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	day5 := grant(t, acct, prov, 10, 5, now)
	day1 := grant(t, acct, prov, 5, 1, now)

	got, touched, err := Consume(acct, prov, []*Batch{day5, day1}, 7, now)

	require.NoError(t, err)
	want := &Consumption{
		AccountID:  acct,
		ProviderID: prov,
		Amount:     7,
		Allocations: []Allocation{
			{BatchID: day1.ID(), Amount: 5, RemainingAfter: 0, ExpiresAt: day1.ExpiresAt()},
			{BatchID: day5.ID(), Amount: 2, RemainingAfter: 8, ExpiresAt: day5.ExpiresAt()},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Consume() mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, touched, 2)
	assert.Equal(t, int64(0), day1.AmountRemaining())
	assert.Equal(t, int64(8), day5.AmountRemaining())
}

func TestConsume_OnlyFirstBatchWhenItCovers(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	early := grant(t, acct, prov, 5, 1, now)
	late := grant(t, acct, prov, 5, 2, now)

	_, touched, err := Consume(acct, prov, []*Batch{late, early}, 5, now)

	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.Equal(t, early.ID(), touched[0].ID())
	assert.Equal(t, int64(5), late.AmountRemaining())
}

func TestConsume_TieBreaksOnGrantTimeThenID(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	older := grant(t, acct, prov, 3, 2, now)
	newer := grant(t, acct, prov, 3, 1, now.Add(24*time.Hour))
	require.True(t, older.ExpiresAt().Equal(newer.ExpiresAt()))

	_, touched, err := Consume(acct, prov, []*Batch{newer, older}, 2, now.Add(24*time.Hour))

	require.NoError(t, err)
	require.Len(t, touched, 1)
	assert.Equal(t, older.ID(), touched[0].ID())
}

func TestConsume_InsufficientLeavesBatchesUntouched(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	a := grant(t, acct, prov, 3, 1, now)
	b := grant(t, acct, prov, 3, 2, now)
	foreign := grant(t, uuid.New(), prov, 10, 2, now)

	_, _, err := Consume(acct, prov, []*Batch{a, b, foreign}, 7, now)

	assert.True(t, errs.Is(err, errs.ErrInsufficientCredits))
	assert.Equal(t, int64(3), a.AmountRemaining())
	assert.Equal(t, int64(3), b.AmountRemaining())
	assert.Equal(t, int64(10), foreign.AmountRemaining())
}

func TestBalance(t *testing.T) {
	acct, prov := uuid.New(), uuid.New()
	a := grant(t, acct, prov, 3, 1, now)
	b := grant(t, acct, prov, 4, 3, now)
	flagged := grant(t, acct, prov, 6, 1, now)
	flagged.Expire(now.Add(24 * time.Hour))

	batches := []*Batch{a, b, flagged}
	assert.Equal(t, int64(7), Balance(batches, now))
	assert.Equal(t, int64(4), Balance(batches, now.Add(24*time.Hour)))
	assert.Equal(t, int64(0), Balance(batches, now.Add(72*time.Hour)))
}
