package memstore

import (
	"bytes"
	"context"
	"slices"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type commandReads struct {
	s *Store
}

func (r *commandReads) ActiveBookingBySlot(_ context.Context, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) (*booking.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.slots[slotKey(resourceID, date, start)]
	if !ok {
		return nil, nil
	}
	return r.s.bookings[id].Clone(), nil
}

func (r *commandReads) SweepCandidates(_ context.Context, now time.Time, afterID uuid.UUID, limit int) ([]*credit.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*credit.Batch, 0)
	for id, b := range r.s.batches {
		if bytes.Compare(id[:], afterID[:]) <= 0 || !b.NeedsSweep(now) {
			continue
		}
		out = append(out, b.Clone())
	}
	slices.SortFunc(out, func(a, b *credit.Batch) int {
		ida, idb := a.ID(), b.ID()
		return bytes.Compare(ida[:], idb[:])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// BookingReadStore serves the query side straight from committed state.
type BookingReadStore struct {
	s *Store
}

func NewBookingReadStore(s *Store) *BookingReadStore {
	return &BookingReadStore{s: s}
}

func (r *BookingReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found", nil)
	}
	return queries.NewBookingView(b), nil
}

func (r *BookingReadStore) FindActiveByResource(_ context.Context, resourceID uuid.UUID, from, to booking.Date) ([]*queries.BookingView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*queries.BookingView, 0)
	for _, id := range r.s.slots {
		b := r.s.bookings[id]
		d := b.Slot().Date()
		if b.ResourceID() != resourceID || d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, queries.NewBookingView(b))
	}
	slices.SortFunc(out, func(a, b *queries.BookingView) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.StartTime.Compare(b.StartTime)
	})
	return out, nil
}

func (r *BookingReadStore) FindByOwner(_ context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*queries.BookingView, 0)
	for _, b := range r.s.bookings {
		if b.OwnerID() == ownerID {
			out = append(out, queries.NewBookingView(b))
		}
	}
	slices.SortFunc(out, func(a, b *queries.BookingView) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		if c := b.StartTime.Compare(a.StartTime); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

type CreditReadStore struct {
	s *Store
}

func NewCreditReadStore(s *Store) *CreditReadStore {
	return &CreditReadStore{s: s}
}

func (r *CreditReadStore) SumAvailable(_ context.Context, accountID, providerID uuid.UUID, now time.Time) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	batches := make([]*credit.Batch, 0)
	for _, id := range r.s.ledgers[ledgerKey(accountID, providerID)] {
		batches = append(batches, r.s.batches[id])
	}
	return credit.Balance(batches, now), nil
}

func (r *CreditReadStore) FindByLedger(_ context.Context, accountID, providerID uuid.UUID) ([]*credit.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := r.s.ledgers[ledgerKey(accountID, providerID)]
	out := make([]*credit.Batch, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.s.batches[id].Clone())
	}
	return out, nil
}
