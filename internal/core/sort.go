package core

import (
	"sort"
	"strings"
)

const (
	SortByDate     SortField = "date"
	SortByAmount   SortField = "amount"
	SortByTitle    SortField = "title"
	SortByCategory SortField = "category"
)

type (
	SortField string

	// SortSpec describes a total ordering over a transaction collection.
	SortSpec struct {
		Field SortField
		Desc  bool
	}
)

// DefaultSort is the ordering the SPA uses everywhere: newest first.
var DefaultSort = SortSpec{Field: SortByDate, Desc: true}

// ParseSortSpec parses a "field:direction" string. Unknown fields fall
// back to the default ordering and unknown directions to ascending; sort
// specs follow the same permissive policy as filters.
func ParseSortSpec(s string) SortSpec {
	field, direction, _ := strings.Cut(strings.TrimSpace(s), ":")
	spec := SortSpec{Field: SortField(field)}
	switch spec.Field {
	case SortByDate, SortByAmount, SortByTitle, SortByCategory:
	default:
		return DefaultSort
	}
	spec.Desc = direction == "desc"
	return spec
}

func (s SortSpec) String() string {
	dir := "asc"
	if s.Desc {
		dir = "desc"
	}
	return string(s.Field) + ":" + dir
}

// less compares two transactions on the spec's field, ascending. Dates
// compare as calendar instants, amounts numerically, the rest lexically.
func (s SortSpec) less(a, b Transaction) bool {
	switch s.Field {
	case SortByAmount:
		return a.Amount.Cents < b.Amount.Cents
	case SortByTitle:
		return a.Title < b.Title
	case SortByCategory:
		return a.Category < b.Category
	default:
		return a.Date.Before(b.Date)
	}
}

// Apply returns a sorted copy of the collection. The sort is stable in
// both directions: equal-key records keep their input order, which keeps
// pagination and snapshots reproducible. Descending order reverses the
// comparator, not the result, so stability is preserved.
func (s SortSpec) Apply(txs []Transaction) []Transaction {
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if s.Desc {
			return s.less(out[j], out[i])
		}
		return s.less(out[i], out[j])
	})
	return out
}
