package commands

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/domain/credit"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrBatchNotFound = errs.Mark(errs.New("credit batch not found"), errs.ErrNotFound)
	ErrSweepRunning  = errs.Mark(errs.New("another expiry sweep holds the lease"), errs.ErrStoreUnavailable)
)

type GrantInput struct {
	AccountID  uuid.UUID
	ProviderID uuid.UUID
	Amount     int64
	ValidDays  int
	SourceID   string
}

type ConsumeInput struct {
	AccountID  uuid.UUID
	ProviderID uuid.UUID
	Amount     int64
}

// ExpireResult summarises one sweep. AffectedAccounts counts distinct
// (account, provider) ledgers that lost credit.
type ExpireResult struct {
	TotalExpired     int64 `json:"total_expired"`
	AffectedAccounts int   `json:"affected_accounts"`
	BatchesExpired   int   `json:"batches_expired"`
	Failures         int   `json:"failures"`
	Skipped          int   `json:"skipped"`
}

// SweepLease keeps two sweeps from walking the same pages at once. It is an
// optimisation only: the per-batch re-read keeps overlapping sweeps correct.
type SweepLease interface {
	Acquire(ctx context.Context, ttl time.Duration) (release func(context.Context), ok bool, err error)
}

type CreditCommands interface {
	GrantCredits(ctx context.Context, in GrantInput) (*credit.Batch, error)
	ConsumeCredits(ctx context.Context, in ConsumeInput) (*credit.Consumption, error)
	ExpireCredits(ctx context.Context, now time.Time) (*ExpireResult, error)
}

type creditCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	lease    SweepLease
	notifier Notifier
	cfg      config.SweepConfig
	logger   *slog.Logger
}

// NewCreditCommands accepts a nil lease, in which case sweeps never coordinate.
func NewCreditCommands(uow shared.UnitOfWork, clk clock.Clock, lease SweepLease, notifier Notifier, cfg config.SweepConfig, logger *slog.Logger) CreditCommands {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	cfg.PageSize = min(cfg.PageSize, config.MaxSweepPageSize)
	return &creditCommandsImpl{
		uow:      uow,
		clock:    clk,
		lease:    lease,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

func (uc *creditCommandsImpl) GrantCredits(ctx context.Context, in GrantInput) (_ *credit.Batch, err error) {
	ctx, span := tracer.Start(ctx, "CreditCommands.GrantCredits", trace.WithAttributes(
		attribute.String("account_id", in.AccountID.String()),
		attribute.String("provider_id", in.ProviderID.String()),
		attribute.Int64("amount", in.Amount),
	))
	defer func() { endSpan(span, err) }()

	now := uc.clock.Now()
	batch, err := credit.NewGrant(credit.GrantParams{
		AccountID:  in.AccountID,
		ProviderID: in.ProviderID,
		Amount:     in.Amount,
		ValidDays:  in.ValidDays,
		SourceID:   in.SourceID,
	}, now)
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Credits().Create(ctx, batch)
	})
	if err != nil {
		return nil, translateTxError(uc.logger, err, errs.ErrStoreUnavailable)
	}

	uc.logger.Info("credits granted",
		slog.String("batch_id", batch.ID().String()),
		slog.String("account_id", batch.AccountID().String()),
		slog.String("provider_id", batch.ProviderID().String()),
		slog.Int64("amount", batch.AmountTotal()),
		slog.Time("expires_at", batch.ExpiresAt()))
	return batch, nil
}

func (uc *creditCommandsImpl) ConsumeCredits(ctx context.Context, in ConsumeInput) (_ *credit.Consumption, err error) {
	ctx, span := tracer.Start(ctx, "CreditCommands.ConsumeCredits", trace.WithAttributes(
		attribute.String("account_id", in.AccountID.String()),
		attribute.String("provider_id", in.ProviderID.String()),
		attribute.Int64("amount", in.Amount),
	))
	defer func() { endSpan(span, err) }()

	if in.AccountID == uuid.Nil || in.ProviderID == uuid.Nil {
		return nil, credit.ErrMissingIdentifier
	}
	if in.Amount <= 0 {
		return nil, credit.ErrNonPositiveAmount
	}

	var result *credit.Consumption
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		batches, txErr := tx.Credits().ListSpendable(ctx, in.AccountID, in.ProviderID, now)
		if txErr != nil {
			return txErr
		}

		consumption, touched, txErr := credit.Consume(in.AccountID, in.ProviderID, batches, in.Amount, now)
		if txErr != nil {
			return txErr
		}
		for _, b := range touched {
			if txErr = tx.Credits().Save(ctx, b); txErr != nil {
				return txErr
			}
		}
		result = consumption
		return nil
	})
	if err != nil {
		return nil, translateTxError(uc.logger, err, errs.ErrStoreUnavailable)
	}

	uc.logger.Info("credits consumed",
		slog.String("account_id", in.AccountID.String()),
		slog.String("provider_id", in.ProviderID.String()),
		slog.Int64("amount", in.Amount),
		slog.Int("batches", len(result.Allocations)))
	return result, nil
}

// ExpireCredits forfeits the remainder of every batch past its expiry at now.
// Each batch is finalised in its own transaction so one bad record only
// shows up in Failures.
func (uc *creditCommandsImpl) ExpireCredits(ctx context.Context, now time.Time) (_ *ExpireResult, err error) {
	ctx, span := tracer.Start(ctx, "CreditCommands.ExpireCredits",
		trace.WithAttributes(attribute.String("now", now.UTC().Format(time.RFC3339))))
	defer func() { endSpan(span, err) }()

	if uc.lease != nil {
		release, ok, leaseErr := uc.lease.Acquire(ctx, uc.cfg.LeaseTTL)
		switch {
		case leaseErr != nil:
			uc.logger.Warn("sweep lease unavailable, continuing without it", slog.String("error", leaseErr.Error()))
		case !ok:
			return nil, ErrSweepRunning
		default:
			defer release(context.WithoutCancel(ctx))
		}
	}

	result := &ExpireResult{}
	accounts := make(map[[2]uuid.UUID]struct{})
	afterID := uuid.Nil

	for {
		page, pageErr := uc.uow.CommandReads().SweepCandidates(ctx, now, afterID, uc.cfg.PageSize)
		if pageErr != nil {
			uc.logger.Error("failed to load expiry candidates", slog.String("error", pageErr.Error()))
			return nil, translateTxError(uc.logger, errs.Wrap(pageErr, "load expiry candidates"), errs.ErrStoreUnavailable)
		}
		if len(page) == 0 {
			break
		}

		for _, candidate := range page {
			forfeited, expErr := uc.expireBatch(ctx, candidate.ID(), now)
			if expErr != nil {
				result.Failures++
				uc.logger.Error("failed to expire credit batch",
					slog.String("batch_id", candidate.ID().String()),
					slog.String("error", expErr.Error()))
				continue
			}
			if forfeited == 0 {
				result.Skipped++
				continue
			}
			result.TotalExpired += forfeited
			result.BatchesExpired++
			accounts[[2]uuid.UUID{candidate.AccountID(), candidate.ProviderID()}] = struct{}{}
		}

		// A short page is not the end: the store may cap the limit.
		afterID = page[len(page)-1].ID()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
	}
	result.AffectedAccounts = len(accounts)

	uc.logger.Info("credit expiry sweep finished",
		slog.Int64("total_expired", result.TotalExpired),
		slog.Int("affected_accounts", result.AffectedAccounts),
		slog.Int("batches_expired", result.BatchesExpired),
		slog.Int("failures", result.Failures),
		slog.Int("skipped", result.Skipped))

	if uc.notifier != nil && result.BatchesExpired > 0 {
		if pubErr := uc.notifier.Publish(ctx, Event{Type: EventCreditsExpired, Expired: result, OccurredAt: now}); pubErr != nil {
			uc.logger.Warn("failed to publish notification",
				slog.String("type", string(EventCreditsExpired)),
				slog.String("error", pubErr.Error()))
		}
	}
	return result, nil
}

// expireBatch re-reads the batch so a sweep racing another one, or a batch
// already finalised, forfeits nothing.
func (uc *creditCommandsImpl) expireBatch(ctx context.Context, batchID uuid.UUID, now time.Time) (int64, error) {
	var forfeited int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		forfeited = 0
		b, txErr := tx.Credits().FindByID(ctx, batchID)
		if txErr != nil {
			if errs.Is(txErr, errs.ErrNotFound) {
				return ErrBatchNotFound
			}
			return txErr
		}
		amount := b.Expire(now)
		if amount == 0 {
			return nil
		}
		if txErr = tx.Credits().Save(ctx, b); txErr != nil {
			return txErr
		}
		forfeited = amount
		return nil
	})
	if err != nil {
		return 0, translateTxError(uc.logger, err, errs.ErrStoreUnavailable)
	}
	return forfeited, nil
}
