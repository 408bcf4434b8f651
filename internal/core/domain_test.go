package core

import (
	"encoding/json"
	"testing"
)

func validTransaction() Transaction {
	return Transaction{
		Title:    "Groceries",
		Amount:   Money{Cents: 4250},
		Category: "Food",
		Type:     Expense,
		Date:     NewDate(2024, 3, 15),
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Transaction)
		wantField string
	}{
		{"valid", func(tx *Transaction) {}, ""},
		{"empty title", func(tx *Transaction) { tx.Title = "  " }, "title"},
		{"zero amount", func(tx *Transaction) { tx.Amount.Cents = 0 }, "amount"},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -100 }, "amount"},
		{"empty category", func(tx *Transaction) { tx.Category = "" }, "category"},
		{"category from wrong type set", func(tx *Transaction) { tx.Category = "Salary" }, "category"},
		{"invalid type", func(tx *Transaction) { tx.Type = "transfer" }, "type"},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			fe, ok := err.(FieldErrors)
			if !ok {
				t.Fatalf("Validate() = %T, want FieldErrors", err)
			}
			if _, present := fe[tt.wantField]; !present {
				t.Errorf("FieldErrors missing %q: %v", tt.wantField, fe)
			}
		})
	}
}

func TestTransactionType_Categories(t *testing.T) {
	if got := len(Expense.Categories()); got != 11 {
		t.Errorf("expense category set has %d entries, want 11", got)
	}
	if got := len(Income.Categories()); got != 6 {
		t.Errorf("income category set has %d entries, want 6", got)
	}
}

func TestTransaction_DisplayEmoji(t *testing.T) {
	tx := validTransaction()
	if got := tx.DisplayEmoji(); got != "💸" {
		t.Errorf("expense placeholder = %q, want 💸", got)
	}
	tx.Type = Income
	if got := tx.DisplayEmoji(); got != "💰" {
		t.Errorf("income placeholder = %q, want 💰", got)
	}
	tx.Emoji = "🍕"
	if got := tx.DisplayEmoji(); got != "🍕" {
		t.Errorf("explicit emoji = %q, want 🍕", got)
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
	}{
		{"date only", `"2024-03-15"`, NewDate(2024, 3, 15)},
		{"rfc3339", `"2024-03-15T18:30:00Z"`, NewDate(2024, 3, 15)},
		{"empty is zero", `""`, Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.input), &d); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if !d.Equal(tt.want.Time) {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, d, tt.want)
			}
		})
	}

	out, err := json.Marshal(NewDate(2024, 3, 15))
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(out) != `"2024-03-15"` {
		t.Errorf("Marshal = %s, want \"2024-03-15\"", out)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"not a date"`), &d); err == nil {
		t.Error("Unmarshal accepted garbage date")
	}
}

func TestDate_Comparisons(t *testing.T) {
	a := NewDate(2024, 3, 10)
	b := NewDate(2024, 3, 11)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before() disagrees with calendar order")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After() disagrees with calendar order")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date must not compare before or after itself")
	}
}
