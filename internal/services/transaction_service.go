// Package services orchestrates transaction operations across the
// configured store and the optional event pipeline.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VishardMehta/Smart-Expense-Management/internal/amqp"
	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
	"github.com/VishardMehta/Smart-Expense-Management/internal/store"
)

// EventPublisher is the slice of the AMQP client the service needs.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, event *amqp.TransactionEvent) error
}

// TransactionService wires the store, the event publisher and a clock.
// The clock is injectable so dashboard aggregation is testable with a
// fixed "now".
type TransactionService struct {
	store     store.Store
	publisher EventPublisher
	now       func() time.Time
}

type ServiceOption func(*TransactionService)

// WithClock overrides the service time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *TransactionService) { s.now = now }
}

// WithPublisher attaches an event publisher. Without one, mutations are
// still fully functional; they just emit no events.
func WithPublisher(p EventPublisher) ServiceOption {
	return func(s *TransactionService) { s.publisher = p }
}

func NewTransactionService(st store.Store, opts ...ServiceOption) *TransactionService {
	s := &TransactionService{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List loads matching transactions and applies the stable sort engine.
func (s *TransactionService) List(ctx context.Context, filter core.Filter, sort core.SortSpec) ([]core.Transaction, error) {
	txs, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return sort.Apply(txs), nil
}

// Create validates and stores a new transaction, then publishes a
// created event. Publish failures are logged but never fail the request:
// the record is already stored.
func (s *TransactionService) Create(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	created, err := s.store.Create(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	s.publish(ctx, amqp.EventCreated, created)
	return created, nil
}

// Update merges fields into an existing transaction.
func (s *TransactionService) Update(ctx context.Context, id string, fields core.Transaction) (core.Transaction, error) {
	updated, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	s.publish(ctx, amqp.EventUpdated, updated)
	return updated, nil
}

// Delete removes a transaction; unknown ids succeed per store policy.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, amqp.EventDeleted, core.Transaction{ID: id})
	return nil
}

// Dashboard loads the full collection and derives the KPI summary for
// the service's current instant.
func (s *TransactionService) Dashboard(ctx context.Context) (core.Summary, error) {
	txs, err := s.store.List(ctx, core.Filter{})
	if err != nil {
		return core.Summary{}, fmt.Errorf("load transactions for dashboard: %w", err)
	}
	return core.Summarize(txs, s.now()), nil
}

func (s *TransactionService) publish(ctx context.Context, event string, tx core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, amqp.NewTransactionEvent(event, tx)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction event",
			"event", event, "transaction_id", tx.ID, "error", err)
	}
}
