package memory

import (
	"context"
	"testing"
	"time"

	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
)

func seedTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "t1", Title: "Salary", Amount: core.Money{Cents: 500000}, Category: "Salary", Type: core.Income, Date: core.NewDate(2024, 3, 10)},
		{ID: "t2", Title: "Groceries", Amount: core.Money{Cents: 120000}, Category: "Food", Type: core.Expense, Date: core.NewDate(2024, 3, 15)},
	}
}

func TestStore_List(t *testing.T) {
	s := New(seedTransactions())

	all, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List() returned %d records, want 2", len(all))
	}

	expenses, err := s.List(context.Background(), core.Filter{Type: core.Expense})
	if err != nil {
		t.Fatalf("List(expense) error: %v", err)
	}
	if len(expenses) != 1 || expenses[0].ID != "t2" {
		t.Errorf("List(expense) = %v, want [t2]", expenses)
	}
}

func TestStore_CreateAssignsIDAndDefaultsDate(t *testing.T) {
	fixed := time.Date(2024, 3, 25, 10, 0, 0, 0, time.UTC)
	s := New(nil, WithClock(func() time.Time { return fixed }))

	created, err := s.Create(context.Background(), core.Transaction{
		Title:    "Coffee",
		Amount:   core.Money{Cents: 450},
		Category: "Food",
		Type:     core.Expense,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID == "" {
		t.Error("Create() did not assign an id")
	}
	if !created.Date.Equal(core.NewDate(2024, 3, 25).Time) {
		t.Errorf("Create() date = %v, want 2024-03-25", created.Date)
	}

	// The new record is visible on reload.
	all, _ := s.List(context.Background(), core.Filter{})
	if len(all) != 1 || all[0].ID != created.ID {
		t.Errorf("reload = %v, want the created record", all)
	}
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	s := New(nil)
	_, err := s.Create(context.Background(), core.Transaction{Title: "", Amount: core.Money{Cents: -1}})
	if err == nil {
		t.Fatal("Create() accepted an invalid transaction")
	}
	if _, ok := err.(core.FieldErrors); !ok {
		t.Errorf("Create() error = %T, want core.FieldErrors", err)
	}
}

func TestStore_UpdateMergesFields(t *testing.T) {
	s := New(seedTransactions())

	updated, err := s.Update(context.Background(), "t2", core.Transaction{Title: "Weekly groceries"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Title != "Weekly groceries" {
		t.Errorf("title = %q, want merged value", updated.Title)
	}
	if updated.Amount.Cents != 120000 || updated.Category != "Food" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.ID != "t2" {
		t.Errorf("id changed to %q", updated.ID)
	}
}

func TestStore_UpdateUnknownIDEchoesInput(t *testing.T) {
	s := New(seedTransactions())

	echoed, err := s.Update(context.Background(), "ghost", core.Transaction{Title: "Phantom"})
	if err != nil {
		t.Fatalf("Update(unknown) error: %v", err)
	}
	if echoed.ID != "ghost" || echoed.Title != "Phantom" {
		t.Errorf("echo = %+v, want input with the requested id", echoed)
	}

	// No phantom row appears on reload.
	all, _ := s.List(context.Background(), core.Filter{})
	if len(all) != 2 {
		t.Errorf("reload has %d records, want 2", len(all))
	}
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := New(seedTransactions())

	if err := s.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := s.Delete(context.Background(), "t1"); err != nil {
		t.Errorf("second Delete() error: %v", err)
	}
	if err := s.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("Delete(unknown) error: %v", err)
	}

	all, _ := s.List(context.Background(), core.Filter{})
	if len(all) != 1 || all[0].ID != "t2" {
		t.Errorf("reload = %v, want [t2]", all)
	}
}

func TestStore_LatencyHonorsCancellation(t *testing.T) {
	s := New(seedTransactions(), WithLatency(5*time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := s.List(ctx, core.Filter{})
	if err == nil {
		t.Fatal("List() ignored a cancelled context")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("List() blocked %v on a cancelled context", elapsed)
	}
}

func TestNewFromFile_MissingFileFallsBack(t *testing.T) {
	s := NewFromFile("testdata/does-not-exist.json")
	all, err := s.List(context.Background(), core.Filter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) == 0 {
		t.Error("missing seed file produced an empty store, want built-in seed")
	}
}
