package core

import (
	"testing"
)

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Title: "Monthly salary", Amount: Money{Cents: 500000}, Category: "Salary", Type: Income, Date: NewDate(2024, 3, 10)},
		{ID: "2", Title: "Groceries", Amount: Money{Cents: 120000}, Category: "Food", Type: Expense, Date: NewDate(2024, 3, 15), Notes: "weekly shop"},
		{ID: "3", Title: "Dinner out", Amount: Money{Cents: 80000}, Category: "Food", Type: Expense, Date: NewDate(2024, 3, 20)},
		{ID: "4", Title: "Bus pass", Amount: Money{Cents: 4500}, Category: "Transportation", Type: Expense, Date: NewDate(2024, 2, 28)},
		{ID: "5", Title: "Freelance gig", Amount: Money{Cents: 90000}, Category: "Freelance", Type: Income, Date: NewDate(2024, 1, 5), Notes: "logo design"},
	}
}

func ids(txs []Transaction) []string {
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func sameIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter_Apply(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "zero filter keeps everything",
			filter: Filter{},
			want:   []string{"1", "2", "3", "4", "5"},
		},
		{
			name:   "type expense",
			filter: Filter{Type: Expense},
			want:   []string{"2", "3", "4"},
		},
		{
			name:   "category exact match",
			filter: Filter{Category: "Food"},
			want:   []string{"2", "3"},
		},
		{
			name:   "search matches category even when title and notes do not",
			filter: Filter{Search: "food"},
			want:   []string{"2", "3"},
		},
		{
			name:   "search matches notes",
			filter: Filter{Search: "LOGO"},
			want:   []string{"5"},
		},
		{
			name:   "date range inclusive bounds",
			filter: Filter{From: NewDate(2024, 3, 10), To: NewDate(2024, 3, 15)},
			want:   []string{"1", "2"},
		},
		{
			name:   "from only",
			filter: Filter{From: NewDate(2024, 3, 1)},
			want:   []string{"1", "2", "3"},
		},
		{
			name:   "all predicates AND together",
			filter: Filter{Type: Expense, Search: "o", Category: "Food", From: NewDate(2024, 3, 16)},
			want:   []string{"3"},
		},
		{
			name:   "no match yields empty",
			filter: Filter{Category: "Housing"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(txs)
			if !sameIDs(ids(got), tt.want) {
				t.Errorf("Apply() = %v, want %v", ids(got), tt.want)
			}
			// Subset property: every element must come from the input and
			// satisfy every present predicate.
			for _, tx := range got {
				if !tt.filter.Matches(tx) {
					t.Errorf("Apply() returned %q which does not match the filter", tx.ID)
				}
			}
		})
	}
}

func TestFilter_Composability(t *testing.T) {
	txs := sampleTransactions()

	f1 := Filter{Type: Expense}
	f2 := Filter{Category: "Food"}
	combined := Filter{Type: Expense, Category: "Food"}

	chained := f2.Apply(f1.Apply(txs))
	direct := combined.Apply(txs)

	if !sameIDs(ids(chained), ids(direct)) {
		t.Errorf("chained filters = %v, combined filter = %v", ids(chained), ids(direct))
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	txs := sampleTransactions()
	before := ids(txs)

	Filter{Type: Income}.Apply(txs)

	if !sameIDs(ids(txs), before) {
		t.Error("Apply() mutated its input")
	}
}
