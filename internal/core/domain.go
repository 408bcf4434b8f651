package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

type (
	TransactionType string

	// Date carries a calendar date; the time-of-day component is ignored
	// for filtering and aggregation.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID       string          `json:"id"`
		Title    string          `json:"title"`
		Amount   Money           `json:"amount"`
		Category string          `json:"category"`
		Type     TransactionType `json:"type"`
		Date     Date            `json:"date"`
		Emoji    string          `json:"emoji,omitempty"`
		Notes    string          `json:"notes,omitempty"`
	}
)

var (
	ErrEmptyTitle      = errors.New("empty title")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidDate     = errors.New("invalid date")
)

// Category sets are fixed per transaction type.
var (
	ExpenseCategories = []string{
		"Food", "Housing", "Transportation", "Utilities", "Entertainment",
		"Health", "Shopping", "Education", "Travel", "Insurance", "Other",
	}
	IncomeCategories = []string{
		"Salary", "Freelance", "Investment", "Business", "Gift", "Other",
	}
)

// FieldErrors maps form field names to validation failures so the
// presentation layer can surface them inline.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (t TransactionType) IsValid() bool {
	return t == Expense || t == Income
}

// Categories returns the allowed category set for the type.
func (t TransactionType) Categories() []string {
	switch t {
	case Income:
		return IncomeCategories
	default:
		return ExpenseCategories
	}
}

// DefaultEmoji is the display placeholder used when a transaction
// carries no emoji of its own.
func (t TransactionType) DefaultEmoji() string {
	if t == Income {
		return "💰"
	}
	return "💸"
}

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to date precision.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// MarshalJSON encodes the date as YYYY-MM-DD.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD or RFC 3339 timestamps; the original
// mock data mixes both.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a calendar date from YYYY-MM-DD or RFC 3339 input.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t.UTC()), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	dy, dm, dd := d.Date()
	oy, om, od := other.Date()
	if dy != oy {
		return dy < oy
	}
	if dm != om {
		return dm < om
	}
	return dd < od
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return other.Before(d)
}

// SameMonth reports whether d falls in the same calendar month as t.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Time.Month() == t.Month()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func categoryAllowed(category string, t TransactionType) bool {
	for _, c := range t.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks the invariants required before a transaction may reach
// a store: non-empty title, positive amount, a category belonging to the
// type's set, a valid type and a valid date.
func (tx Transaction) Validate() error {
	fe := FieldErrors{}

	if strings.TrimSpace(tx.Title) == "" {
		fe["title"] = "Title is required"
	}
	if tx.Amount.Cents <= 0 {
		fe["amount"] = "Amount must be greater than 0"
	}
	if !tx.Type.IsValid() {
		fe["type"] = "Type must be expense or income"
	}
	if strings.TrimSpace(tx.Category) == "" {
		fe["category"] = "Category is required"
	} else if tx.Type.IsValid() && !categoryAllowed(tx.Category, tx.Type) {
		fe["category"] = fmt.Sprintf("Unknown %s category %q", tx.Type, tx.Category)
	}
	if tx.Date.IsZero() {
		fe["date"] = "Date is required"
	}

	if len(fe) > 0 {
		return fe
	}
	return nil
}

// DisplayEmoji returns the transaction's emoji or the type placeholder.
func (tx Transaction) DisplayEmoji() string {
	if tx.Emoji != "" {
		return tx.Emoji
	}
	return tx.Type.DefaultEmoji()
}
