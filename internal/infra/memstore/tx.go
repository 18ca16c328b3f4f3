package memstore

import (
	"context"
	"time"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/credit"
	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type memTx struct {
	s *Store

	reads map[string]uint64

	bookings        map[uuid.UUID]*booking.Booking
	createdBookings []uuid.UUID

	batches        map[uuid.UUID]*credit.Batch
	createdBatches []uuid.UUID
}

func newTx(s *Store) *memTx {
	return &memTx{
		s:        s,
		reads:    make(map[string]uint64),
		bookings: make(map[uuid.UUID]*booking.Booking),
		batches:  make(map[uuid.UUID]*credit.Batch),
	}
}

// track records the version of key the first time the transaction sees it.
// Callers hold s.mu.
func (t *memTx) track(key string) {
	if _, ok := t.reads[key]; !ok {
		t.reads[key] = t.s.version(key)
	}
}

func (t *memTx) Bookings() shared.BookingRepository {
	return &bookingRepo{tx: t}
}

func (t *memTx) Credits() shared.CreditRepository {
	return &creditRepo{tx: t}
}

type bookingRepo struct {
	tx *memTx
}

func (r *bookingRepo) FindActiveBySlot(_ context.Context, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) (*booking.Booking, error) {
	t := r.tx
	for _, b := range t.bookings {
		if b.IsActive() && sameSlot(b, resourceID, date, start) {
			return b.Clone(), nil
		}
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	key := slotKey(resourceID, date, start)
	t.track(key)
	id, ok := t.s.slots[key]
	if !ok {
		return nil, nil
	}
	if own, written := t.bookings[id]; written && !own.IsActive() {
		return nil, nil
	}
	t.track(bookingKey(id))
	return t.s.bookings[id].Clone(), nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	t := r.tx
	if b, ok := t.bookings[id]; ok {
		return b.Clone(), nil
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	t.track(bookingKey(id))
	b, ok := t.s.bookings[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "booking not found", nil)
	}
	return b.Clone(), nil
}

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	t := r.tx
	t.s.mu.RLock()
	key := slotKey(b.ResourceID(), b.Slot().Date(), b.Slot().Start())
	t.track(key)
	t.track(bookingKey(b.ID()))
	_, exists := t.s.bookings[b.ID()]
	t.s.mu.RUnlock()

	if _, buffered := t.bookings[b.ID()]; exists || buffered {
		return infra.NewRepoErr(infra.KindDuplicateKey, "booking id already exists", nil)
	}
	t.bookings[b.ID()] = b.Clone()
	t.createdBookings = append(t.createdBookings, b.ID())
	return nil
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) error {
	current, err := r.FindByID(ctx, b.ID())
	if err != nil {
		return err
	}
	if current.Status() != from {
		return shared.ErrTxConflict
	}
	r.tx.bookings[b.ID()] = b.Clone()
	return nil
}

func sameSlot(b *booking.Booking, resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) bool {
	slot := b.Slot()
	return b.ResourceID() == resourceID && slot.Date().Equal(date) && slot.Start() == start
}

type creditRepo struct {
	tx *memTx
}

func (r *creditRepo) ListSpendable(_ context.Context, accountID, providerID uuid.UUID, now time.Time) ([]*credit.Batch, error) {
	t := r.tx
	t.s.mu.RLock()
	lk := ledgerKey(accountID, providerID)
	t.track(lk)
	ids := append([]uuid.UUID(nil), t.s.ledgers[lk]...)
	committed := make(map[uuid.UUID]*credit.Batch, len(ids))
	for _, id := range ids {
		t.track(batchKey(id))
		committed[id] = t.s.batches[id]
	}
	t.s.mu.RUnlock()

	for _, id := range t.createdBatches {
		b := t.batches[id]
		if b.AccountID() == accountID && b.ProviderID() == providerID {
			ids = append(ids, id)
		}
	}

	out := make([]*credit.Batch, 0, len(ids))
	for _, id := range ids {
		b, ok := t.batches[id]
		if !ok {
			b = committed[id]
		}
		if b.Spendable(now) {
			out = append(out, b.Clone())
		}
	}
	credit.SortFIFO(out)
	return out, nil
}

func (r *creditRepo) FindByID(_ context.Context, id uuid.UUID) (*credit.Batch, error) {
	t := r.tx
	if b, ok := t.batches[id]; ok {
		return b.Clone(), nil
	}

	t.s.mu.RLock()
	defer t.s.mu.RUnlock()

	t.track(batchKey(id))
	b, ok := t.s.batches[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "credit batch not found", nil)
	}
	return b.Clone(), nil
}

func (r *creditRepo) Create(_ context.Context, b *credit.Batch) error {
	t := r.tx
	t.s.mu.RLock()
	t.track(ledgerKey(b.AccountID(), b.ProviderID()))
	_, exists := t.s.batches[b.ID()]
	t.s.mu.RUnlock()

	if _, buffered := t.batches[b.ID()]; exists || buffered {
		return infra.NewRepoErr(infra.KindDuplicateKey, "credit batch id already exists", nil)
	}
	t.batches[b.ID()] = b.Clone()
	t.createdBatches = append(t.createdBatches, b.ID())
	return nil
}

func (r *creditRepo) Save(_ context.Context, b *credit.Batch) error {
	t := r.tx
	if _, ok := t.batches[b.ID()]; !ok {
		t.s.mu.RLock()
		t.track(batchKey(b.ID()))
		_, exists := t.s.batches[b.ID()]
		t.s.mu.RUnlock()
		if !exists {
			return infra.NewRepoErr(infra.KindNotFound, "credit batch not found", nil)
		}
	}
	t.batches[b.ID()] = b.Clone()
	return nil
}
