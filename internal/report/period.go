package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// Range keys accepted by ParseRange.
const (
	RangeWeek    = "7"
	RangeMonth   = "30"
	RangeQuarter = "90"
	RangeYear    = "365"
	RangeAll     = "all"
	RangeCustom  = "custom"
)

// ParseRange resolves a range key to inclusive YYYY-MM-DD bounds. An empty
// bound means the window is open on that side. The day-count keys only set
// a lower bound. An empty key is RangeMonth.
func ParseRange(key, start, end string, now time.Time) (from, to string, err error) {
	switch key {
	case "", RangeMonth:
		return now.AddDate(0, 0, -30).Format(models.DateLayout), "", nil
	case RangeWeek:
		return now.AddDate(0, 0, -7).Format(models.DateLayout), "", nil
	case RangeQuarter:
		return now.AddDate(0, 0, -90).Format(models.DateLayout), "", nil
	case RangeYear:
		return now.AddDate(-1, 0, 0).Format(models.DateLayout), "", nil
	case RangeAll:
		return "", "", nil
	case RangeCustom:
		s, err := time.Parse(models.DateLayout, start)
		if err != nil {
			return "", "", fmt.Errorf("%w: from must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		e, err := time.Parse(models.DateLayout, end)
		if err != nil {
			return "", "", fmt.Errorf("%w: to must be YYYY-MM-DD", models.ErrInvalidInput)
		}
		if e.Before(s) {
			return "", "", fmt.Errorf("%w: from must not be after to", models.ErrInvalidInput)
		}
		return start, end, nil
	default:
		return "", "", fmt.Errorf("%w: unknown range %q", models.ErrInvalidInput, key)
	}
}

// Between returns the transactions dated within [from, to]. Dates are
// YYYY-MM-DD so they compare as strings.
func Between(txns []*models.Transaction, from, to string) []*models.Transaction {
	var out []*models.Transaction
	for _, t := range txns {
		if from != "" && t.Date < from {
			continue
		}
		if to != "" && t.Date > to {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Count returns how many of txns are income and how many are expenses.
func Count(txns []*models.Transaction) (income, expenses int) {
	for _, t := range txns {
		switch t.Type {
		case models.TransactionIncome:
			income++
		case models.TransactionExpense:
			expenses++
		}
	}
	return income, expenses
}

// TrendPoint is one month of income and expenses.
type TrendPoint struct {
	Month    Month
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Trend sums income and expenses per calendar month, oldest first. Months
// without transactions are omitted.
func Trend(txns []*models.Transaction) []TrendPoint {
	type sums struct{ income, expenses int64 }
	byMonth := make(map[Month]*sums)
	for _, t := range txns {
		d, err := time.Parse(models.DateLayout, t.Date)
		if err != nil {
			continue
		}
		m := Month{Year: d.Year(), Month: d.Month()}
		s, ok := byMonth[m]
		if !ok {
			s = &sums{}
			byMonth[m] = s
		}
		switch t.Type {
		case models.TransactionIncome:
			s.income += int64(t.Amount)
		case models.TransactionExpense:
			s.expenses += int64(t.Amount)
		}
	}

	out := make([]TrendPoint, 0, len(byMonth))
	for m, s := range byMonth {
		out = append(out, TrendPoint{
			Month:    m,
			Income:   decimal.New(s.income, -2),
			Expenses: decimal.New(s.expenses, -2),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month.Year != out[j].Month.Year {
			return out[i].Month.Year < out[j].Month.Year
		}
		return out[i].Month.Month < out[j].Month.Month
	})
	return out
}

// Top returns at most n of cats, which must already be sorted largest
// first.
func Top(cats []CategoryTotal, n int) []CategoryTotal {
	if len(cats) <= n {
		return cats
	}
	return cats[:n]
}
