package amqp

import (
	"encoding/json"
	"time"

	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
)

const (
	EventCreated = "transaction.created"
	EventUpdated = "transaction.updated"
	EventDeleted = "transaction.deleted"
)

// TransactionEvent is published whenever a transaction is created,
// updated or deleted, and consumed by the audit worker.
type TransactionEvent struct {
	Event         string               `json:"event"`
	TransactionID string               `json:"transaction_id"`
	Type          core.TransactionType `json:"type,omitempty"`
	AmountCents   int64                `json:"amount_cents,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`
}

func NewTransactionEvent(event string, tx core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Event:         event,
		TransactionID: tx.ID,
		Type:          tx.Type,
		AmountCents:   tx.Amount.Cents,
		Timestamp:     time.Now(),
	}
}

func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
