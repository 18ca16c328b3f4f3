// Package memstore is a process-local transactional store. Transactions
// buffer their writes and record the version of every key they read; commit
// fails with shared.ErrTxConflict when any of those keys moved in between.
package memstore

import (
	"context"
	"fmt"
	"sync"

	"studio-booking/internal/domain/booking"
	"studio-booking/internal/domain/credit"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	versions map[string]uint64

	bookings map[uuid.UUID]*booking.Booking
	// slots points at the single active booking of a slot.
	slots map[string]uuid.UUID

	batches map[uuid.UUID]*credit.Batch
	ledgers map[string][]uuid.UUID

	policy shared.RetryPolicy
}

func New(policy shared.RetryPolicy) *Store {
	return &Store{
		versions: make(map[string]uint64),
		bookings: make(map[uuid.UUID]*booking.Booking),
		slots:    make(map[string]uuid.UUID),
		batches:  make(map[uuid.UUID]*credit.Batch),
		ledgers:  make(map[string][]uuid.UUID),
		policy:   policy,
	}
}

func slotKey(resourceID uuid.UUID, date booking.Date, start booking.TimeOfDay) string {
	return fmt.Sprintf("slot:%s:%s:%s", resourceID, date, start)
}

func bookingKey(id uuid.UUID) string {
	return "booking:" + id.String()
}

func ledgerKey(accountID, providerID uuid.UUID) string {
	return fmt.Sprintf("ledger:%s:%s", accountID, providerID)
}

func batchKey(id uuid.UUID) string {
	return "batch:" + id.String()
}

// Within runs fn against a fresh transaction and retries it on conflict.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return shared.RunWithRetry(ctx, s.policy, func(ctx context.Context) error {
		tx := newTx(s)
		if err := fn(ctx, tx); err != nil {
			return err
		}
		return s.commit(tx)
	})
}

func (s *Store) CommandReads() shared.CommandReads {
	return &commandReads{s: s}
}

func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, seen := range tx.reads {
		if s.versions[key] != seen {
			return shared.ErrTxConflict
		}
	}

	// The read set covers the slot of every created booking, so a slot that
	// is occupied here was already occupied when the transaction read it.
	for _, id := range tx.createdBookings {
		b := tx.bookings[id]
		key := slotKey(b.ResourceID(), b.Slot().Date(), b.Slot().Start())
		if _, taken := s.slots[key]; taken && b.IsActive() {
			return shared.ErrTxConflict
		}
	}

	for id, b := range tx.bookings {
		s.bookings[id] = b.Clone()
		key := slotKey(b.ResourceID(), b.Slot().Date(), b.Slot().Start())
		if b.IsActive() {
			s.slots[key] = id
		} else if s.slots[key] == id {
			delete(s.slots, key)
		}
		s.versions[bookingKey(id)]++
		s.versions[key]++
	}

	for _, id := range tx.createdBatches {
		b := tx.batches[id]
		lk := ledgerKey(b.AccountID(), b.ProviderID())
		s.ledgers[lk] = append(s.ledgers[lk], id)
	}
	for id, b := range tx.batches {
		s.batches[id] = b.Clone()
		s.versions[batchKey(id)]++
		s.versions[ledgerKey(b.AccountID(), b.ProviderID())]++
	}
	return nil
}

func (s *Store) version(key string) uint64 {
	return s.versions[key]
}
