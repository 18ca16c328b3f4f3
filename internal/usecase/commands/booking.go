package commands

import (
	"context"
	"log/slog"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("studio-booking/usecase/commands")

var (
	ErrSlotTaken       = errs.Mark(errs.New("slot already has an active booking"), errs.ErrSlotConflict)
	ErrBookingNotFound = errs.Mark(errs.New("booking not found"), errs.ErrNotFound)
)

type RequestBookingInput struct {
	ResourceID  uuid.UUID
	ProviderID  uuid.UUID
	OwnerID     uuid.UUID
	Date        booking.Date
	StartTime   booking.TimeOfDay
	// EndTime defaults to StartTime plus the configured slot duration.
	EndTime     *booking.TimeOfDay
	Notes       string
	ContactInfo *booking.ContactInfo
}

type BookingCommands interface {
	RequestBooking(ctx context.Context, in RequestBookingInput) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID, providerID uuid.UUID) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, ownerID uuid.UUID) (*booking.Booking, error)
	CancelBookingByProvider(ctx context.Context, bookingID, providerID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	notifier Notifier
	cfg      config.BookingConfig
	loc      *time.Location
	logger   *slog.Logger
}

func NewBookingCommands(uow shared.UnitOfWork, clk clock.Clock, notifier Notifier, cfg config.BookingConfig, logger *slog.Logger) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		clock:    clk,
		notifier: notifier,
		cfg:      cfg,
		loc:      cfg.Location(),
		logger:   logger,
	}
}

func (uc *bookingCommandsImpl) RequestBooking(ctx context.Context, in RequestBookingInput) (_ *booking.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.RequestBooking", trace.WithAttributes(
		attribute.String("resource_id", in.ResourceID.String()),
		attribute.String("slot.date", in.Date.String()),
		attribute.String("slot.start", in.StartTime.String()),
	))
	defer func() { endSpan(span, err) }()

	slot, err := uc.buildSlot(in)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if err = slot.ValidateNotPast(now, uc.loc); err != nil {
		return nil, err
	}
	notes, err := booking.NewNotes(in.Notes)
	if err != nil {
		return nil, err
	}
	params := booking.NewBookingParams{
		ResourceID:  in.ResourceID,
		ProviderID:  in.ProviderID,
		OwnerID:     in.OwnerID,
		Slot:        slot,
		Notes:       notes,
		ContactInfo: in.ContactInfo,
	}
	// Fail fast before constructing anything transactional.
	if _, err = booking.NewBooking(params, now); err != nil {
		return nil, err
	}

	existing, err := uc.uow.CommandReads().ActiveBookingBySlot(ctx, in.ResourceID, slot.Date(), slot.Start())
	if err != nil {
		return nil, uc.translate(err, errs.ErrSlotConflict)
	}
	if existing != nil {
		return nil, ErrSlotTaken
	}

	var created *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		taken, txErr := tx.Bookings().FindActiveBySlot(ctx, in.ResourceID, slot.Date(), slot.Start())
		if txErr != nil {
			return txErr
		}
		if taken != nil {
			return ErrSlotTaken
		}

		b, txErr := booking.NewBooking(params, now)
		if txErr != nil {
			return txErr
		}
		if txErr = tx.Bookings().Create(ctx, b); txErr != nil {
			return txErr
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, uc.translate(err, errs.ErrSlotConflict)
	}

	uc.logger.Info("booking requested",
		slog.String("booking_id", created.ID().String()),
		slog.String("resource_id", created.ResourceID().String()),
		slog.String("slot", slot.String()))
	uc.publish(ctx, bookingEvent(EventBookingRequested, created, now))
	return created, nil
}

func (uc *bookingCommandsImpl) ConfirmBooking(ctx context.Context, bookingID, providerID uuid.UUID) (_ *booking.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.ConfirmBooking",
		trace.WithAttributes(attribute.String("booking_id", bookingID.String())))
	defer func() { endSpan(span, err) }()

	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Confirm(providerID, now)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, bookingEvent(EventBookingConfirmed, b, b.UpdatedAt()))
	return b, nil
}

func (uc *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, ownerID uuid.UUID) (_ *booking.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.CancelBooking",
		trace.WithAttributes(attribute.String("booking_id", bookingID.String())))
	defer func() { endSpan(span, err) }()

	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.Cancel(ownerID, now)
	})
	if err != nil {
		return nil, err
	}
	ev := bookingEvent(EventBookingCancelled, b, b.UpdatedAt())
	ev.CancelledBy = "owner"
	uc.publish(ctx, ev)
	return b, nil
}

func (uc *bookingCommandsImpl) CancelBookingByProvider(ctx context.Context, bookingID, providerID uuid.UUID) (_ *booking.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.CancelBookingByProvider",
		trace.WithAttributes(attribute.String("booking_id", bookingID.String())))
	defer func() { endSpan(span, err) }()

	b, err := uc.transition(ctx, bookingID, func(b *booking.Booking, now time.Time) error {
		return b.CancelByProvider(providerID, now)
	})
	if err != nil {
		return nil, err
	}
	ev := bookingEvent(EventBookingCancelled, b, b.UpdatedAt())
	ev.CancelledBy = "provider"
	uc.publish(ctx, ev)
	return b, nil
}

// transition loads the booking inside a transaction, applies apply and
// writes the new status only if nobody changed it in between.
func (uc *bookingCommandsImpl) transition(ctx context.Context, bookingID uuid.UUID, apply func(b *booking.Booking, now time.Time) error) (*booking.Booking, error) {
	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, txErr := tx.Bookings().FindByID(ctx, bookingID)
		if txErr != nil {
			if errs.Is(txErr, errs.ErrNotFound) {
				return ErrBookingNotFound
			}
			return txErr
		}

		from := b.Status()
		if txErr = apply(b, uc.clock.Now()); txErr != nil {
			return txErr
		}
		if txErr = tx.Bookings().UpdateStatus(ctx, b, from); txErr != nil {
			return txErr
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, uc.translate(err, errs.ErrStoreUnavailable)
	}

	uc.logger.Info("booking status changed",
		slog.String("booking_id", updated.ID().String()),
		slog.String("status", updated.Status().String()))
	return updated, nil
}

func (uc *bookingCommandsImpl) buildSlot(in RequestBookingInput) (booking.TimeSlot, error) {
	if in.EndTime != nil {
		return booking.NewTimeSlot(in.Date, in.StartTime, *in.EndTime)
	}
	return booking.NewFixedTimeSlot(in.Date, in.StartTime, uc.cfg.SlotDuration)
}

// translate turns an exhausted retry into a taxonomy error. Conflicts become
// onConflict, transient store failures become StoreUnavailable.
func (uc *bookingCommandsImpl) translate(err error, onConflict error) error {
	return translateTxError(uc.logger, err, onConflict)
}

func (uc *bookingCommandsImpl) publish(ctx context.Context, ev Event) {
	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Publish(ctx, ev); err != nil {
		uc.logger.Warn("failed to publish notification",
			slog.String("type", string(ev.Type)),
			slog.String("booking_id", ev.BookingID.String()),
			slog.String("error", err.Error()))
	}
}

func translateTxError(logger *slog.Logger, err error, onConflict error) error {
	if err == nil {
		return nil
	}
	if !errs.IsAny(err, shared.ErrTxConflict, shared.ErrMaxRetriesExceeded, errs.ErrStoreUnavailable) {
		return err
	}
	if errs.Is(err, errs.ErrStoreUnavailable) {
		logger.Error("store unavailable", slog.String("error", err.Error()))
		return errs.Mark(err, errs.ErrStoreUnavailable)
	}
	if errs.Is(err, shared.ErrTxConflict) {
		return errs.Mark(errs.Wrap(err, "retries exhausted on conflict"), onConflict)
	}
	return errs.Mark(err, errs.ErrStoreUnavailable)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
