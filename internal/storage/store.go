// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/fintrack/internal/models"
)

var (
	// ErrNotFound is returned when a row is absent or owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when a user row would duplicate an email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSpendOutOfRange is returned when a budget adjustment would push
	// spent past the storable range.
	ErrSpendOutOfRange = fmt.Errorf("%w: budget spend out of range", models.ErrInvalidInput)
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUserProfile writes Name, Email, Avatar and UpdatedAt.
	UpdateUserProfile(ctx context.Context, user *models.User) error
}

// BudgetStore persists budgets. Every method is scoped by ownerID.
type BudgetStore interface {
	ListBudgets(ctx context.Context, ownerID string) ([]*models.Budget, error)
	GetBudget(ctx context.Context, ownerID, id string) (*models.Budget, error)
	CreateBudget(ctx context.Context, budget *models.Budget) error

	// UpdateBudget writes Category, Limit, Period and StartDate.
	// Spent is left untouched.
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, ownerID, id string) error
}

// LedgerTx is the unit of work the ledger coordinator runs against.
// Everything done through one LedgerTx commits or rolls back together.
type LedgerTx interface {
	InsertTransaction(ctx context.Context, txn *models.Transaction) error
	GetTransaction(ctx context.Context, ownerID, id string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *models.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, id string) error

	// AdjustSpent adds delta (which may be negative) to the spend of every
	// budget matching (ownerID, category) in a single statement, flooring
	// at zero. It returns the number of budgets touched.
	AdjustSpent(ctx context.Context, ownerID, category string, delta int64) (int64, error)
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	UserStore
	BudgetStore

	ListTransactions(ctx context.Context, ownerID string) ([]*models.Transaction, error)

	// WithinTx runs fn in a single database transaction.
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error

	// Ping checks that the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
