package core

import "strings"

// Filter narrows a transaction collection. Zero-valued fields impose no
// constraint; present fields combine with logical AND. Malformed values
// never reach a Filter: the parse boundary normalizes them to absent.
type Filter struct {
	Type     TransactionType
	Search   string
	Category string
	From     Date
	To       Date
}

// IsZero reports whether the filter imposes no constraint at all.
func (f Filter) IsZero() bool {
	return f.Type == "" && f.Search == "" && f.Category == "" &&
		f.From.IsZero() && f.To.IsZero()
}

// Matches reports whether a single transaction satisfies every predicate
// present in the filter.
func (f Filter) Matches(tx Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	if f.Search != "" && !matchesSearch(tx, f.Search) {
		return false
	}
	return true
}

// Apply returns the sub-collection satisfying the filter. The input is
// never mutated; Apply is a pure function and safe to re-invoke on every
// input change.
func (f Filter) Apply(txs []Transaction) []Transaction {
	if f.IsZero() {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// matchesSearch performs a case-insensitive substring match against
// title, category and notes. A transaction matches if any field contains
// the query; absent notes behave as the empty string.
func matchesSearch(tx Transaction, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(tx.Title), q) ||
		strings.Contains(strings.ToLower(tx.Category), q) ||
		strings.Contains(strings.ToLower(tx.Notes), q)
}
