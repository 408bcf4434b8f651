// Package worker consumes transaction events and writes them to the
// audit log.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VishardMehta/Smart-Expense-Management/internal/amqp"
	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
)

// AuditRecorder is the slice of the storage layer the worker needs.
type AuditRecorder interface {
	RecordAuditEvent(ctx context.Context, event, transactionID string, txType core.TransactionType, amount core.Money, occurredAt time.Time) error
	CountAuditEvents(ctx context.Context) (int64, error)
}

// AuditWorker persists every transaction event it receives.
type AuditWorker struct {
	recorder AuditRecorder
}

func NewAuditWorker(recorder AuditRecorder) *AuditWorker {
	return &AuditWorker{recorder: recorder}
}

// HandleEvent records one event. Errors propagate so the broker can
// requeue the delivery.
func (w *AuditWorker) HandleEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	if event.Event == "" || event.TransactionID == "" {
		return fmt.Errorf("malformed event: %+v", event)
	}

	err := w.recorder.RecordAuditEvent(ctx, event.Event, event.TransactionID,
		event.Type, core.Money{Cents: event.AmountCents}, event.Timestamp)
	if err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	slog.InfoContext(ctx, "Recorded audit event",
		"event", event.Event,
		"transaction_id", event.TransactionID)
	return nil
}

// ReportStats logs the audit log size on every tick until the context
// is cancelled.
func (w *AuditWorker) ReportStats(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := w.recorder.CountAuditEvents(ctx)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to count audit events", "error", err)
				continue
			}
			slog.InfoContext(ctx, "Audit log stats", "total_events", n)
		}
	}
}
