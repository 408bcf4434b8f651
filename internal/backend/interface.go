package backend

import (
	"context"

	"github.com/VishardMehta/Smart-Expense-Management/internal/store"
)

// CleanupFunc releases whatever resources a backend holds.
type CleanupFunc func() error

// Result contains the ready store and an optional cleanup function.
type Result struct {
	Store   store.Store
	Cleanup CleanupFunc
}

// Factory creates transaction stores based on configuration, so call
// sites never branch on the backend kind themselves.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// Memory backend
	MockDataPath string
	MockLatency  int // milliseconds

	// SQLite backend
	SQLiteDBPath string
}

// Type selects the store implementation.
type Type string

const (
	MemoryBackend Type = "memory"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
