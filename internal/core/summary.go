package core

import (
	"math"
	"sort"
	"time"
)

// monthsOfHistory is the span of the dashboard series, current month
// included.
const monthsOfHistory = 6

// topCategoryLimit caps the category breakdown shown on the dashboard.
const topCategoryLimit = 5

type (
	// CategoryAmount is an amount aggregated by category name.
	CategoryAmount struct {
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
	}

	// MonthlyPoint is one entry of the income-vs-expense series.
	MonthlyPoint struct {
		Label   string `json:"month"`
		Income  Money  `json:"income"`
		Expense Money  `json:"expense"`
	}

	// Summary carries every derived dashboard metric for one evaluation
	// instant.
	Summary struct {
		Income        Money            `json:"income"`
		Expense       Money            `json:"expense"`
		Balance       Money            `json:"balance"`
		SavingsRate   int              `json:"savingsRate"`
		Monthly       []MonthlyPoint   `json:"monthly"`
		TopCategories []CategoryAmount `json:"topCategories"`
	}
)

// SavingsRate computes round(((income − expense) / income) × 100). Zero
// income yields 0 by policy rather than a division error.
func SavingsRate(income, expense Money) int {
	if income.Cents == 0 {
		return 0
	}
	return int(math.Round(float64(income.Cents-expense.Cents) / float64(income.Cents) * 100))
}

// Summarize derives all dashboard metrics from a transaction collection.
// The evaluation instant is a parameter so callers can fix the clock in
// tests. An empty collection produces zero-valued metrics, never an
// error.
//
// The monthly series always holds exactly six entries, oldest first,
// zero-filled for months without transactions. The category breakdown
// covers current-month expenses only, descending by summed amount, at
// most five entries; ties keep first-seen category order.
func Summarize(txs []Transaction, now time.Time) Summary {
	s := Summary{}

	var (
		catTotals = map[string]int64{}
		catOrder  []string
	)
	for _, tx := range txs {
		if !tx.Date.SameMonth(now) {
			continue
		}
		switch tx.Type {
		case Income:
			s.Income.Cents += tx.Amount.Cents
		case Expense:
			s.Expense.Cents += tx.Amount.Cents
			if _, seen := catTotals[tx.Category]; !seen {
				catOrder = append(catOrder, tx.Category)
			}
			catTotals[tx.Category] += tx.Amount.Cents
		}
	}
	s.Balance = Money{Cents: s.Income.Cents - s.Expense.Cents}
	s.SavingsRate = SavingsRate(s.Income, s.Expense)
	s.Monthly = monthlySeries(txs, now)
	s.TopCategories = topCategories(catTotals, catOrder)
	return s
}

func monthlySeries(txs []Transaction, now time.Time) []MonthlyPoint {
	series := make([]MonthlyPoint, monthsOfHistory)
	// Anchor on the first of the month so AddDate never skips short
	// months (Jan 31 − 1 month must be December, not March 3rd).
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < monthsOfHistory; i++ {
		month := anchor.AddDate(0, i-(monthsOfHistory-1), 0)
		point := MonthlyPoint{Label: month.Format("Jan 2006")}
		for _, tx := range txs {
			if !tx.Date.SameMonth(month) {
				continue
			}
			switch tx.Type {
			case Income:
				point.Income.Cents += tx.Amount.Cents
			case Expense:
				point.Expense.Cents += tx.Amount.Cents
			}
		}
		series[i] = point
	}
	return series
}

func topCategories(totals map[string]int64, order []string) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: totals[name]}})
	}
	// Stable sort keeps first-seen order for equal sums.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	if len(out) > topCategoryLimit {
		out = out[:topCategoryLimit]
	}
	return out
}
