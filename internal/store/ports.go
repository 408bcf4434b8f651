// Package store defines the ports a transaction backend must implement.
package store

import (
	"context"
	"errors"

	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
)

// ErrNotFound is returned by real backends when an id is unknown. The
// mock backend never returns it: it echoes updates and treats deletes of
// unknown ids as a no-op success.
var ErrNotFound = errors.New("transaction not found")

// Ports for outbound adapters.
type (
	Lister interface {
		// List returns the transactions matching the filter. An empty
		// filter returns the whole collection.
		List(ctx context.Context, filter core.Filter) ([]core.Transaction, error)
	}

	Creator interface {
		// Create assigns an id, defaults the date to today when zero, and
		// returns the stored record.
		Create(ctx context.Context, tx core.Transaction) (core.Transaction, error)
	}

	Updater interface {
		// Update merges the provided fields into the record identified by
		// id. The id itself is retained.
		Update(ctx context.Context, id string, tx core.Transaction) (core.Transaction, error)
	}

	Deleter interface {
		// Delete removes the record. Deleting an unknown id is not an
		// error.
		Delete(ctx context.Context, id string) error
	}

	// Store is the full read/write surface the service layer needs.
	Store interface {
		Lister
		Creator
		Updater
		Deleter
	}
)
