package models

import (
	"strings"

	"github.com/mmynk/fintrack/internal/money"
)

// BudgetPeriod is descriptive metadata; spend is never reset at period
// boundaries.
type BudgetPeriod string

const (
	BudgetWeekly  BudgetPeriod = "weekly"
	BudgetMonthly BudgetPeriod = "monthly"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetWeekly || p == BudgetMonthly
}

// Budget is a spending limit on one category for one owner.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string

	// OwnerID is the user who created the budget.
	OwnerID string

	// Category matches Transaction.Category exactly.
	Category string

	// Limit is the spending cap; always positive.
	Limit money.Amount

	Period    BudgetPeriod
	StartDate string

	// Spent is the accumulated expense total in Category. It is maintained
	// incrementally by the ledger coordinator and never set by clients.
	Spent money.Amount

	// CreatedAt is the Unix timestamp when the budget was created.
	CreatedAt int64
}

// Normalize trims surrounding whitespace from the text fields.
func (b *Budget) Normalize() {
	b.Category = strings.TrimSpace(b.Category)
}

// Validate checks the client-supplied fields.
func (b *Budget) Validate() error {
	if b.Category == "" {
		return invalid("category", "is required")
	}
	if b.Limit <= 0 {
		return invalid("limit", "must be greater than zero")
	}
	if b.Limit > money.MaxAmount {
		return invalid("limit", "is too large")
	}
	if !b.Period.Valid() {
		return invalid("period", "must be weekly or monthly")
	}
	return ValidateDate("startDate", b.StartDate)
}
