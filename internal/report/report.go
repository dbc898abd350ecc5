// Package report computes read-only aggregates over already-loaded ledger
// rows. Nothing here touches storage.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses "YYYY-MM". An empty string yields the month of now.
func ParseMonth(s string, now time.Time) (Month, error) {
	if s == "" {
		return Month{Year: now.Year(), Month: now.Month()}, nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month must be YYYY-MM", models.ErrInvalidInput)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether the YYYY-MM-DD date falls in m.
func (m Month) Contains(date string) bool {
	t, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return false
	}
	return t.Year() == m.Year && t.Month() == m.Month
}

// InMonth returns the transactions dated within m.
func InMonth(txns []*models.Transaction, m Month) []*models.Transaction {
	var out []*models.Transaction
	for _, t := range txns {
		if m.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// Totals is the income/expense summary of a set of transactions.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// SavingsRate returns balance as a percentage of income, or zero when
// there is no income.
func (t Totals) SavingsRate() decimal.Decimal {
	if !t.Income.IsPositive() {
		return decimal.Zero
	}
	return t.Balance.Div(t.Income).Mul(hundred).Round(1)
}

// Sum totals txns by type.
func Sum(txns []*models.Transaction) Totals {
	var income, expenses int64
	for _, t := range txns {
		switch t.Type {
		case models.TransactionIncome:
			income += int64(t.Amount)
		case models.TransactionExpense:
			expenses += int64(t.Amount)
		}
	}
	in := decimal.New(income, -2)
	out := decimal.New(expenses, -2)
	return Totals{Income: in, Expenses: out, Balance: in.Sub(out)}
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// ByCategory sums expenses per category, largest first.
func ByCategory(txns []*models.Transaction) []CategoryTotal {
	sums := make(map[string]int64)
	for _, t := range txns {
		if t.Type == models.TransactionExpense {
			sums[t.Category] += int64(t.Amount)
		}
	}

	out := make([]CategoryTotal, 0, len(sums))
	for category, minor := range sums {
		out = append(out, CategoryTotal{Category: category, Amount: decimal.New(minor, -2)})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// BudgetUsage pairs a budget with the percentage of its limit spent.
type BudgetUsage struct {
	Budget  *models.Budget
	Percent decimal.Decimal
}

// Utilization computes usage for each budget, preserving order.
func Utilization(budgets []*models.Budget) []BudgetUsage {
	out := make([]BudgetUsage, 0, len(budgets))
	for _, b := range budgets {
		pct := decimal.Zero
		if b.Limit > 0 {
			pct = b.Spent.Decimal().Div(b.Limit.Decimal()).Mul(hundred).Round(1)
		}
		out = append(out, BudgetUsage{Budget: b, Percent: pct})
	}
	return out
}
