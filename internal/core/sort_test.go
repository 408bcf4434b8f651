package core

import (
	"testing"
)

func TestParseSortSpec(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  SortSpec
	}{
		{"date descending", "date:desc", SortSpec{Field: SortByDate, Desc: true}},
		{"amount ascending", "amount:asc", SortSpec{Field: SortByAmount}},
		{"title default direction", "title", SortSpec{Field: SortByTitle}},
		{"unknown direction is ascending", "amount:sideways", SortSpec{Field: SortByAmount}},
		{"unknown field falls back to default", "garbage:desc", DefaultSort},
		{"empty falls back to default", "", DefaultSort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSortSpec(tt.input); got != tt.want {
				t.Errorf("ParseSortSpec(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortSpec_Apply(t *testing.T) {
	txs := sampleTransactions()

	tests := []struct {
		name string
		spec SortSpec
		want []string
	}{
		{"date ascending", SortSpec{Field: SortByDate}, []string{"5", "4", "1", "2", "3"}},
		{"date descending", SortSpec{Field: SortByDate, Desc: true}, []string{"3", "2", "1", "4", "5"}},
		{"amount ascending", SortSpec{Field: SortByAmount}, []string{"4", "3", "5", "2", "1"}},
		{"amount descending", SortSpec{Field: SortByAmount, Desc: true}, []string{"1", "2", "5", "3", "4"}},
		{"title ascending", SortSpec{Field: SortByTitle}, []string{"4", "3", "5", "2", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.spec.Apply(txs)
			if !sameIDs(ids(got), tt.want) {
				t.Errorf("Apply() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestSortSpec_Stability(t *testing.T) {
	// Three records share the same date; their relative input order must
	// survive sorting in both directions.
	txs := []Transaction{
		{ID: "a", Amount: Money{Cents: 100}, Date: NewDate(2024, 5, 1)},
		{ID: "b", Amount: Money{Cents: 200}, Date: NewDate(2024, 5, 1)},
		{ID: "c", Amount: Money{Cents: 300}, Date: NewDate(2024, 5, 1)},
		{ID: "d", Amount: Money{Cents: 400}, Date: NewDate(2024, 4, 1)},
	}

	asc := SortSpec{Field: SortByDate}.Apply(txs)
	if !sameIDs(ids(asc), []string{"d", "a", "b", "c"}) {
		t.Errorf("ascending sort reordered equal keys: %v", ids(asc))
	}

	desc := SortSpec{Field: SortByDate, Desc: true}.Apply(txs)
	if !sameIDs(ids(desc), []string{"a", "b", "c", "d"}) {
		t.Errorf("descending sort reordered equal keys: %v", ids(desc))
	}
}

func TestSortSpec_Idempotence(t *testing.T) {
	spec := SortSpec{Field: SortByAmount, Desc: true}
	once := spec.Apply(sampleTransactions())
	twice := spec.Apply(once)
	if !sameIDs(ids(once), ids(twice)) {
		t.Errorf("sort(sort(C)) = %v, sort(C) = %v", ids(twice), ids(once))
	}
}

func TestSortSpec_DoesNotMutateInput(t *testing.T) {
	txs := sampleTransactions()
	before := ids(txs)
	SortSpec{Field: SortByAmount}.Apply(txs)
	if !sameIDs(ids(txs), before) {
		t.Error("Apply() mutated its input")
	}
}
