package models

import (
	"strings"

	"github.com/mmynk/fintrack/internal/money"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense entry owned by one user.
// Category is free-form and does not have to match an existing budget.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// OwnerID is the user who created the transaction.
	OwnerID string

	Title    string
	Amount   money.Amount
	Category string
	Type     TransactionType

	// Date is a calendar date (YYYY-MM-DD); no time-of-day semantics.
	Date string

	// Notes is optional free text.
	Notes string

	// CreatedAt is the Unix timestamp when the row was first stored.
	CreatedAt int64
}

// Normalize trims surrounding whitespace from the text fields.
func (t *Transaction) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Category = strings.TrimSpace(t.Category)
	t.Notes = strings.TrimSpace(t.Notes)
}

// Validate checks the client-supplied fields.
func (t *Transaction) Validate() error {
	if t.Title == "" {
		return invalid("title", "is required")
	}
	if t.Category == "" {
		return invalid("category", "is required")
	}
	if !t.Type.Valid() {
		return invalid("type", "must be income or expense")
	}
	if t.Amount < 0 {
		return invalid("amount", "must not be negative")
	}
	if t.Amount > money.MaxAmount {
		return invalid("amount", "is too large")
	}
	return ValidateDate("date", t.Date)
}

// BudgetCharge returns the amount this transaction contributes to the
// spend of budgets in its category. Income contributes nothing.
func (t *Transaction) BudgetCharge() money.Amount {
	if t.Type != TransactionExpense {
		return 0
	}
	return t.Amount
}
