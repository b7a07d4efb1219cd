// Package ledger implements the transaction ledger: durable CRUD over the
// single persisted transaction collection, the source of truth every other
// component reads from.
//
// The collection lives under one key-value blob with a read-modify-write
// access pattern and no cross-process isolation. Within a process, mutating
// operations are serialized by an internal mutex so concurrent Add/Remove
// calls cannot lose updates; concurrent writers from separate processes
// remain unguarded, matching the single-user foreground usage model.
package ledger

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"kopilka/internal/core"
	"kopilka/internal/kv"
)

// transactionsKey is the single storage key holding the whole collection.
const transactionsKey = "budget_transactions"

var idSeq atomic.Int64

// Store owns the persisted transaction collection. It assigns ids and dates
// on creation; validation of caller-supplied fields happens upstream at the
// input boundary.
type Store struct {
	kv kv.Store

	mu  sync.Mutex // serializes read-modify-write cycles
	now func() time.Time
}

func New(store kv.Store) *Store {
	return &Store{kv: store, now: time.Now}
}

// NewAtTime is New with an injected clock, for tests.
func NewAtTime(store kv.Store, now func() time.Time) *Store {
	return &Store{kv: store, now: now}
}

// List returns the collection newest-first. It never fails: a missing blob,
// a storage read error or a corrupt payload all degrade to an empty result,
// since an empty ledger is a safe default and the view is refresh-driven.
func (s *Store) List(ctx context.Context) []core.Transaction {
	payload, ok, err := s.kv.Get(ctx, transactionsKey)
	if err != nil {
		slog.WarnContext(ctx, "Ledger read failed, returning empty collection", "error", err)
		return []core.Transaction{}
	}
	if !ok {
		return []core.Transaction{}
	}
	txs, err := decodeCollection(ctx, payload)
	if err != nil {
		slog.WarnContext(ctx, "Ledger blob corrupt, returning empty collection", "error", err)
		return []core.Transaction{}
	}
	return txs
}

// Add creates a transaction with a fresh id and today's date, prepends it to
// the collection and writes the whole blob back. The created record is
// returned. Storage failures surface as *StorageError.
func (s *Store) Add(ctx context.Context, typ core.Type, amount core.Money, title string, category core.Category) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.load(ctx, "add")
	if err != nil {
		return core.Transaction{}, err
	}

	now := s.now()
	tx := core.Transaction{
		ID:       newID(now),
		Type:     typ,
		Amount:   amount,
		Title:    title,
		Category: category,
		Date:     core.DateOf(now),
	}

	if err := s.write(ctx, "add", append([]core.Transaction{tx}, txs...)); err != nil {
		return core.Transaction{}, err
	}

	slog.InfoContext(ctx, "Transaction saved",
		"transaction_id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)
	return tx, nil
}

// Remove deletes every record with the given id and writes the filtered
// collection back. An absent id is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs, err := s.load(ctx, "remove")
	if err != nil {
		return err
	}

	kept := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	if len(kept) == len(txs) {
		return nil
	}

	if err := s.write(ctx, "remove", kept); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Transaction removed", "transaction_id", id)
	return nil
}

// Clear deletes the entire persisted collection.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, transactionsKey); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	slog.InfoContext(ctx, "Ledger cleared")
	return nil
}

// load reads the collection for a mutation. Unlike List, a storage read
// error aborts the operation so a failed read can never clobber the
// last-known-good blob; a corrupt payload still degrades to empty, since
// rewriting it is the only recovery available.
func (s *Store) load(ctx context.Context, op string) ([]core.Transaction, error) {
	payload, ok, err := s.kv.Get(ctx, transactionsKey)
	if err != nil {
		return nil, &StorageError{Op: op, Err: err}
	}
	if !ok {
		return []core.Transaction{}, nil
	}
	txs, err := decodeCollection(ctx, payload)
	if err != nil {
		slog.WarnContext(ctx, "Ledger blob corrupt, starting a fresh collection", "error", err)
		return []core.Transaction{}, nil
	}
	return txs, nil
}

func (s *Store) write(ctx context.Context, op string, txs []core.Transaction) error {
	payload, err := encodeCollection(txs)
	if err != nil {
		return &StorageError{Op: op, Err: err}
	}
	if err := s.kv.Set(ctx, transactionsKey, payload); err != nil {
		return &StorageError{Op: op, Err: err}
	}
	return nil
}

// newID builds an id from the creation instant plus a process-wide counter,
// unique even for same-nanosecond creations.
func newID(now time.Time) string {
	return strconv.FormatInt(now.UnixNano(), 10) + "-" + strconv.FormatInt(idSeq.Add(1), 10)
}
