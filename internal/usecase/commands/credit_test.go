//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra/memstore"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const day = 24 * time.Hour

type CreditCommandsTestSuite struct {
	suite.Suite
	store    *memstore.Store
	clock    *clock.MockClock
	notifier *recordingNotifier
	cmds     commands.CreditCommands
	queries  queries.CreditQueries

	accountID  uuid.UUID
	providerID uuid.UUID
}

func (s *CreditCommandsTestSuite) SetupTest() {
	s.store = memstore.New(shared.RetryPolicy{MaxAttempts: 3})
	s.clock = clock.NewMockClock(baseTime)
	s.notifier = &recordingNotifier{}
	s.cmds = commands.NewCreditCommands(s.store, s.clock, nil, s.notifier, config.SweepConfig{PageSize: 2}, discardLogger())
	s.queries = queries.NewCreditQueries(memstore.NewCreditReadStore(s.store))

	s.accountID = uuid.New()
	s.providerID = uuid.New()
}

func TestCreditCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(CreditCommandsTestSuite))
}

func (s *CreditCommandsTestSuite) grant(amount int64, validDays int) *credit.Batch {
	b, err := s.cmds.GrantCredits(context.Background(), commands.GrantInput{
		AccountID:  s.accountID,
		ProviderID: s.providerID,
		Amount:     amount,
		ValidDays:  validDays,
		SourceID:   "purchase-" + uuid.NewString(),
	})
	s.Require().NoError(err)
	return b
}

func (s *CreditCommandsTestSuite) balance() int64 {
	view, err := s.queries.AvailableBalance(context.Background(), s.accountID, s.providerID, s.clock.Now())
	s.Require().NoError(err)
	return view.Available
}

func (s *CreditCommandsTestSuite) batches() map[uuid.UUID]*queries.BatchView {
	views, err := s.queries.ListBatches(context.Background(), s.accountID, s.providerID, s.clock.Now())
	s.Require().NoError(err)
	out := make(map[uuid.UUID]*queries.BatchView, len(views))
	for _, v := range views {
		out[v.ID] = v
	}
	return out
}

func (s *CreditCommandsTestSuite) consume(amount int64) (*credit.Consumption, error) {
	return s.cmds.ConsumeCredits(context.Background(), commands.ConsumeInput{
		AccountID:  s.accountID,
		ProviderID: s.providerID,
		Amount:     amount,
	})
}

func (s *CreditCommandsTestSuite) TestGrantCredits_BalanceIsAvailableImmediately() {
	b := s.grant(10, 30)

	s.Equal(int64(10), b.AmountTotal())
	s.Equal(int64(10), b.AmountRemaining())
	s.Equal(baseTime.Add(30*day), b.ExpiresAt())
	s.Equal(int64(10), s.balance())
}

func (s *CreditCommandsTestSuite) TestGrantCredits_Validation() {
	tests := []struct {
		name string
		in   commands.GrantInput
	}{
		{name: "zero amount", in: commands.GrantInput{AccountID: s.accountID, ProviderID: s.providerID, Amount: 0, ValidDays: 30}},
		{name: "negative amount", in: commands.GrantInput{AccountID: s.accountID, ProviderID: s.providerID, Amount: -5, ValidDays: 30}},
		{name: "zero validity", in: commands.GrantInput{AccountID: s.accountID, ProviderID: s.providerID, Amount: 5, ValidDays: 0}},
		{name: "missing account", in: commands.GrantInput{ProviderID: s.providerID, Amount: 5, ValidDays: 30}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.cmds.GrantCredits(context.Background(), tt.in)
			s.True(errs.Is(err, errs.ErrValidation), "got %v", err)
		})
	}
	s.Equal(int64(0), s.balance())
}

func (s *CreditCommandsTestSuite) TestGrantCredits_EveryCallCreatesABatch() {
	s.grant(5, 10)
	s.grant(5, 10)

	s.Len(s.batches(), 2)
	s.Equal(int64(10), s.balance())
}

func (s *CreditCommandsTestSuite) TestConsumeCredits_SpansBatchesInExpiryOrder() {
	first := s.grant(5, 1)
	second := s.grant(10, 5)

	consumption, err := s.consume(7)

	s.Require().NoError(err)
	s.Require().Len(consumption.Allocations, 2)
	s.Equal(first.ID(), consumption.Allocations[0].BatchID)
	s.Equal(int64(5), consumption.Allocations[0].Amount)
	s.Equal(second.ID(), consumption.Allocations[1].BatchID)
	s.Equal(int64(2), consumption.Allocations[1].Amount)

	got := s.batches()
	s.Equal(int64(0), got[first.ID()].AmountRemaining)
	s.Equal(credit.StateDepleted, got[first.ID()].State)
	s.Equal(int64(8), got[second.ID()].AmountRemaining)
	s.Equal(int64(8), s.balance())
}

func (s *CreditCommandsTestSuite) TestConsumeCredits_DrawsOnlyFromEarliestExpiry() {
	// Granted in reverse so insertion order cannot explain the result.
	later := s.grant(10, 5)
	earlier := s.grant(5, 1)

	_, err := s.consume(4)

	s.Require().NoError(err)
	got := s.batches()
	s.Equal(int64(1), got[earlier.ID()].AmountRemaining)
	s.Equal(int64(10), got[later.ID()].AmountRemaining)
}

func (s *CreditCommandsTestSuite) TestConsumeCredits_Insufficient() {
	b := s.grant(5, 10)

	_, err := s.consume(6)

	s.True(errs.Is(err, errs.ErrInsufficientCredits))
	s.Equal(int64(5), s.batches()[b.ID()].AmountRemaining)
}

func (s *CreditCommandsTestSuite) TestConsumeCredits_IgnoresExpiredBatches() {
	s.grant(5, 1)
	s.grant(3, 10)
	s.clock.Add(2 * day)

	_, err := s.consume(4)
	s.True(errs.Is(err, errs.ErrInsufficientCredits))

	_, err = s.consume(3)
	s.Require().NoError(err)
	s.Equal(int64(0), s.balance())
}

func (s *CreditCommandsTestSuite) TestConsumeCredits_RejectsNonPositiveAmount() {
	s.grant(5, 10)

	_, err := s.consume(0)

	s.True(errs.Is(err, errs.ErrValidation))
}

func (s *CreditCommandsTestSuite) TestLedgerStaysWithinBounds() {
	steps := []struct {
		grant   int64
		consume int64
	}{
		{grant: 5}, {consume: 3}, {grant: 2}, {consume: 4}, {consume: 1}, {grant: 7}, {consume: 6}, {consume: 9},
	}

	expected := int64(0)
	for i, st := range steps {
		if st.grant > 0 {
			s.grant(st.grant, 10+i)
			expected += st.grant
		}
		if st.consume > 0 {
			_, err := s.consume(st.consume)
			if st.consume > expected {
				s.True(errs.Is(err, errs.ErrInsufficientCredits))
			} else {
				s.Require().NoError(err)
				expected -= st.consume
			}
		}

		var sum int64
		for _, b := range s.batches() {
			s.GreaterOrEqual(b.AmountRemaining, int64(0))
			s.LessOrEqual(b.AmountRemaining, b.AmountTotal)
			if b.State != credit.StateExpired {
				sum += b.AmountRemaining
			}
		}
		s.Equal(expected, s.balance())
		s.Equal(sum, s.balance())
	}
}

func (s *CreditCommandsTestSuite) TestConsumeCredits_ConcurrentConsumersNeverOverdraw() {
	s.grant(10, 5)
	s.grant(10, 6)

	const n = 12
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.consume(3)
		}(i)
	}
	wg.Wait()

	consumed := int64(0)
	for _, err := range results {
		switch {
		case err == nil:
			consumed += 3
		case errs.IsAny(err, errs.ErrInsufficientCredits, errs.ErrStoreUnavailable):
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.LessOrEqual(consumed, int64(20))
	s.Equal(20-consumed, s.balance())
	for _, b := range s.batches() {
		s.GreaterOrEqual(b.AmountRemaining, int64(0))
	}
}

func (s *CreditCommandsTestSuite) TestExpireCredits_ForfeitsPastDueBatches() {
	expiring := s.grant(4, 1)
	kept := s.grant(6, 30)
	s.clock.Add(2 * day)

	result, err := s.cmds.ExpireCredits(context.Background(), s.clock.Now())

	s.Require().NoError(err)
	s.Equal(int64(4), result.TotalExpired)
	s.Equal(1, result.BatchesExpired)
	s.Equal(1, result.AffectedAccounts)
	s.Equal(0, result.Failures)

	got := s.batches()
	s.True(got[expiring.ID()].Expired)
	s.Equal(int64(0), got[expiring.ID()].AmountRemaining)
	s.Equal(int64(4), got[expiring.ID()].AmountForfeited)
	s.Equal(int64(6), got[kept.ID()].AmountRemaining)
	s.Equal(int64(6), s.balance())
	s.Contains(s.notifier.types(), commands.EventCreditsExpired)
}

// cappedStore hands out at most max sweep candidates per read, however many
// were asked for, the way the Postgres read store does.
type cappedStore struct {
	shared.UnitOfWork
	max int
}

func (u cappedStore) CommandReads() shared.CommandReads {
	return cappedReads{CommandReads: u.UnitOfWork.CommandReads(), max: u.max}
}

type cappedReads struct {
	shared.CommandReads
	max int
}

func (r cappedReads) SweepCandidates(ctx context.Context, now time.Time, afterID uuid.UUID, limit int) ([]*credit.Batch, error) {
	return r.CommandReads.SweepCandidates(ctx, now, afterID, min(limit, r.max))
}

func (s *CreditCommandsTestSuite) TestExpireCredits_StoreCapsPageBelowPageSize() {
	for i := 0; i < 7; i++ {
		s.grant(1, 1)
	}
	cmds := commands.NewCreditCommands(cappedStore{UnitOfWork: s.store, max: 3}, s.clock, nil, nil,
		config.SweepConfig{PageSize: 5}, discardLogger())

	result, err := cmds.ExpireCredits(context.Background(), baseTime.Add(3*day))

	s.Require().NoError(err)
	s.Equal(7, result.BatchesExpired)
	s.Equal(int64(7), result.TotalExpired)
	for _, v := range s.batches() {
		s.True(v.Expired, "batch %s left unswept", v.ID)
	}
}

func (s *CreditCommandsTestSuite) TestExpireCredits_SecondRunExpiresNothing() {
	for i := 0; i < 5; i++ {
		s.grant(int64(i+1), 1)
	}
	now := baseTime.Add(3 * day)

	first, err := s.cmds.ExpireCredits(context.Background(), now)
	s.Require().NoError(err)
	s.Equal(int64(15), first.TotalExpired)
	s.Equal(5, first.BatchesExpired)

	second, err := s.cmds.ExpireCredits(context.Background(), now)
	s.Require().NoError(err)
	s.Equal(int64(0), second.TotalExpired)
	s.Equal(0, second.BatchesExpired)
}

func (s *CreditCommandsTestSuite) TestExpireCredits_CountsDistinctLedgers() {
	s.grant(2, 1)
	s.grant(3, 1)
	other := uuid.New()
	_, err := s.cmds.GrantCredits(context.Background(), commands.GrantInput{
		AccountID: other, ProviderID: s.providerID, Amount: 1, ValidDays: 1,
	})
	s.Require().NoError(err)

	result, err := s.cmds.ExpireCredits(context.Background(), baseTime.Add(2*day))

	s.Require().NoError(err)
	s.Equal(int64(6), result.TotalExpired)
	s.Equal(3, result.BatchesExpired)
	s.Equal(2, result.AffectedAccounts)
}

func (s *CreditCommandsTestSuite) TestExpireCredits_DepletedBatchesAreNotTouched() {
	b := s.grant(3, 1)
	_, err := s.consume(3)
	s.Require().NoError(err)

	result, err := s.cmds.ExpireCredits(context.Background(), baseTime.Add(2*day))

	s.Require().NoError(err)
	s.Equal(0, result.BatchesExpired)
	s.Equal(0, result.Skipped)
	s.False(s.batches()[b.ID()].Expired)
}

// failingBatchUoW fails every transaction that touches one batch.
type failingBatchUoW struct {
	*memstore.Store
	failing uuid.UUID
}

func (u *failingBatchUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, &failingTx{Tx: tx, failing: u.failing})
	})
}

type failingTx struct {
	shared.Tx
	failing uuid.UUID
}

func (t *failingTx) Credits() shared.CreditRepository {
	return &failingCredits{CreditRepository: t.Tx.Credits(), failing: t.failing}
}

type failingCredits struct {
	shared.CreditRepository
	failing uuid.UUID
}

func (r *failingCredits) Save(ctx context.Context, b *credit.Batch) error {
	if b.ID() == r.failing {
		return errs.New("disk on fire")
	}
	return r.CreditRepository.Save(ctx, b)
}

func (s *CreditCommandsTestSuite) TestExpireCredits_OneFailureDoesNotAbortSweep() {
	bad := s.grant(4, 1)
	s.grant(5, 1)
	s.grant(6, 1)

	uow := &failingBatchUoW{Store: s.store, failing: bad.ID()}
	cmds := commands.NewCreditCommands(uow, s.clock, nil, nil, config.SweepConfig{PageSize: 1}, discardLogger())

	result, err := cmds.ExpireCredits(context.Background(), baseTime.Add(2*day))

	s.Require().NoError(err)
	s.Equal(1, result.Failures)
	s.Equal(2, result.BatchesExpired)
	s.Equal(int64(11), result.TotalExpired)
	s.False(s.batches()[bad.ID()].Expired)
}

type stubLease struct {
	ok       bool
	err      error
	released bool
}

func (l *stubLease) Acquire(context.Context, time.Duration) (func(context.Context), bool, error) {
	return func(context.Context) { l.released = true }, l.ok, l.err
}

func (s *CreditCommandsTestSuite) TestExpireCredits_Lease() {
	s.grant(4, 1)
	now := baseTime.Add(2 * day)

	s.Run("held elsewhere", func() {
		lease := &stubLease{ok: false}
		cmds := commands.NewCreditCommands(s.store, s.clock, lease, nil, config.SweepConfig{}, discardLogger())
		_, err := cmds.ExpireCredits(context.Background(), now)
		s.True(errs.Is(err, commands.ErrSweepRunning))
	})

	s.Run("lease backend down", func() {
		lease := &stubLease{err: errLeaseDown}
		cmds := commands.NewCreditCommands(s.store, s.clock, lease, nil, config.SweepConfig{}, discardLogger())
		result, err := cmds.ExpireCredits(context.Background(), now)
		s.Require().NoError(err)
		s.Equal(int64(4), result.TotalExpired)
	})

	s.Run("acquired and released", func() {
		lease := &stubLease{ok: true}
		cmds := commands.NewCreditCommands(s.store, s.clock, lease, nil, config.SweepConfig{}, discardLogger())
		result, err := cmds.ExpireCredits(context.Background(), now)
		s.Require().NoError(err)
		s.Equal(int64(0), result.TotalExpired)
		s.True(lease.released)
	})
}

var errLeaseDown = errs.New("redis: connection refused")
