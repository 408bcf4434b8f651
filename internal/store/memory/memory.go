// Package memory implements the mock transaction backend: an in-memory
// collection seeded from a JSON file, with simulated network latency on
// every call. It stands in for the real backend during development and in
// tests.
package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
)

type Store struct {
	mu      sync.Mutex
	items   []core.Transaction
	latency time.Duration
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLatency sets the simulated network delay applied to every call.
func WithLatency(d time.Duration) Option {
	return func(s *Store) { s.latency = d }
}

// WithClock overrides the time source used to default creation dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(seed []core.Transaction, opts ...Option) *Store {
	s := &Store{
		items: append([]core.Transaction(nil), seed...),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewFromFile seeds the store from a JSON array of transactions. A
// missing or unreadable file falls back to a small built-in seed so the
// app always has something to show.
func NewFromFile(path string, opts ...Option) *Store {
	seed := readSeed(path)
	if len(seed) == 0 {
		seed = defaultSeed()
	}
	return New(seed, opts...)
}

func readSeed(path string) []core.Transaction {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Mock data file not readable, using built-in seed", "path", path, "error", err)
		return nil
	}
	var seed []core.Transaction
	if err := json.Unmarshal(raw, &seed); err != nil {
		slog.Warn("Mock data file not parseable, using built-in seed", "path", path, "error", err)
		return nil
	}
	return seed
}

func defaultSeed() []core.Transaction {
	today := core.DateOf(time.Now())
	return []core.Transaction{
		{ID: "seed-1", Title: "Monthly salary", Amount: core.Money{Cents: 500000}, Category: "Salary", Type: core.Income, Date: today, Emoji: "💼"},
		{ID: "seed-2", Title: "Groceries", Amount: core.Money{Cents: 120000}, Category: "Food", Type: core.Expense, Date: today, Notes: "weekly shop"},
		{ID: "seed-3", Title: "Dinner out", Amount: core.Money{Cents: 80000}, Category: "Food", Type: core.Expense, Date: today},
	}
}

// simulateLatency mimics network delay while honoring cancellation.
func (s *Store) simulateLatency(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// List filters a fresh snapshot through the core filter engine.
func (s *Store) List(ctx context.Context, filter core.Filter) ([]core.Transaction, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	snapshot := append([]core.Transaction(nil), s.items...)
	s.mu.Unlock()
	return filter.Apply(snapshot), nil
}

// Create validates, assigns an id, defaults the date to today and
// appends the record so a reload sees it immediately.
func (s *Store) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return core.Transaction{}, err
	}
	if tx.Date.IsZero() {
		tx.Date = core.DateOf(s.now())
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.ID = newID()

	s.mu.Lock()
	s.items = append(s.items, tx)
	s.mu.Unlock()

	slog.InfoContext(ctx, "Created transaction", "id", tx.ID, "type", tx.Type, "amount_cents", tx.Amount.Cents)
	return tx, nil
}

// Update merges fields into the stored record. Unknown ids are tolerated:
// the merged input is echoed back without being inserted, matching the
// mock backend contract.
func (s *Store) Update(ctx context.Context, id string, fields core.Transaction) (core.Transaction, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			merged := merge(existing, fields)
			if err := merged.Validate(); err != nil {
				return core.Transaction{}, err
			}
			s.items[i] = merged
			slog.InfoContext(ctx, "Updated transaction", "id", id)
			return merged, nil
		}
	}

	echoed := fields
	echoed.ID = id
	slog.WarnContext(ctx, "Update for unknown id, echoing input", "id", id)
	return echoed, nil
}

// Delete removes the record when present. Deleting an unknown id is a
// success with no state change.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.items {
		if existing.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			slog.InfoContext(ctx, "Deleted transaction", "id", id)
			return nil
		}
	}
	return nil
}

// merge overlays non-zero fields onto the existing record; the id and
// type are retained.
func merge(existing, fields core.Transaction) core.Transaction {
	out := existing
	if fields.Title != "" {
		out.Title = fields.Title
	}
	if fields.Amount.Cents != 0 {
		out.Amount = fields.Amount
	}
	if fields.Category != "" {
		out.Category = fields.Category
	}
	if !fields.Date.IsZero() {
		out.Date = fields.Date
	}
	if fields.Emoji != "" {
		out.Emoji = fields.Emoji
	}
	if fields.Notes != "" {
		out.Notes = fields.Notes
	}
	return out
}

// newID returns a time-ordered id so freshly created records sort after
// older ones under the default date ordering.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
