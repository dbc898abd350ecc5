// Package ledger keeps budget spend consistent with the expense
// transactions posted against each category.
//
// Every mutation runs in one storage transaction: the ledger row write
// and the budget adjustments it implies commit together or not at all.
// Adjustments are single UPDATE statements (spent = spent + delta), so
// concurrent writers on the same budget never lose an increment.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// Policy selects how transaction mutations are reflected in budget spend.
type Policy string

const (
	// PolicyReconcile adjusts spend on create, update and delete so it
	// always equals the sum of current expense transactions.
	PolicyReconcile Policy = "reconcile"

	// PolicyCreateOnly adjusts spend on create only. Updates and deletes
	// leave spend untouched, so it drifts upward.
	PolicyCreateOnly Policy = "create-only"
)

// ParsePolicy maps a configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicyReconcile, PolicyCreateOnly:
		return p, nil
	case "":
		return PolicyReconcile, nil
	default:
		return "", fmt.Errorf("unknown budget spend policy %q", s)
	}
}

// Observer receives the number of budget rows each mutation adjusted.
type Observer interface {
	BudgetsAdjusted(op string, n int64)
}

type nopObserver struct{}

func (nopObserver) BudgetsAdjusted(string, int64) {}

// Outcome reports the side effects of a mutation on budgets.
type Outcome struct {
	BudgetsAdjusted int64
}

// Coordinator applies transaction mutations together with their budget
// side effects.
type Coordinator struct {
	store    storage.Store
	policy   Policy
	observer Observer
	logger   *slog.Logger
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithObserver reports adjustment counts to o.
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// NewCoordinator creates a coordinator over store using policy.
func NewCoordinator(store storage.Store, policy Policy, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		policy:   policy,
		observer: nopObserver{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the active spend policy.
func (c *Coordinator) Policy() Policy {
	return c.policy
}

// List returns the owner's transactions.
func (c *Coordinator) List(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	return c.store.ListTransactions(ctx, ownerID)
}

// Create validates and stores txn for ownerID. An expense increments the
// spend of every budget on (ownerID, txn.Category); no matching budget is
// not an error.
func (c *Coordinator) Create(ctx context.Context, ownerID string, txn *models.Transaction) (Outcome, error) {
	txn.OwnerID = ownerID
	txn.Normalize()
	if err := txn.Validate(); err != nil {
		return Outcome{}, err
	}

	var out Outcome
	err := c.store.WithinTx(ctx, func(tx storage.LedgerTx) error {
		out = Outcome{}
		if err := tx.InsertTransaction(ctx, txn); err != nil {
			return err
		}
		return c.apply(ctx, tx, &out, ownerID, txn.Category, int64(txn.BudgetCharge()))
	})
	if err != nil {
		return Outcome{}, err
	}

	c.observer.BudgetsAdjusted("create", out.BudgetsAdjusted)
	c.logger.Debug("Transaction created",
		"transaction_id", txn.ID,
		"type", txn.Type,
		"budgets_adjusted", out.BudgetsAdjusted,
	)
	return out, nil
}

// Update replaces the editable fields of the owner's transaction.
// Under PolicyReconcile the old expense contribution is withdrawn from its
// category and the new one added to the (possibly different) new category.
func (c *Coordinator) Update(ctx context.Context, ownerID string, txn *models.Transaction) (Outcome, error) {
	txn.OwnerID = ownerID
	txn.Normalize()
	if err := txn.Validate(); err != nil {
		return Outcome{}, err
	}

	var out Outcome
	err := c.store.WithinTx(ctx, func(tx storage.LedgerTx) error {
		out = Outcome{}
		prev, err := tx.GetTransaction(ctx, ownerID, txn.ID)
		if err != nil {
			return err
		}
		if err := tx.UpdateTransaction(ctx, txn); err != nil {
			return err
		}
		txn.CreatedAt = prev.CreatedAt

		if c.policy != PolicyReconcile {
			return nil
		}
		if prev.Category == txn.Category {
			delta := int64(txn.BudgetCharge()) - int64(prev.BudgetCharge())
			return c.apply(ctx, tx, &out, ownerID, txn.Category, delta)
		}
		if err := c.apply(ctx, tx, &out, ownerID, prev.Category, -int64(prev.BudgetCharge())); err != nil {
			return err
		}
		return c.apply(ctx, tx, &out, ownerID, txn.Category, int64(txn.BudgetCharge()))
	})
	if err != nil {
		return Outcome{}, err
	}

	c.observer.BudgetsAdjusted("update", out.BudgetsAdjusted)
	return out, nil
}

// Delete removes the owner's transaction. Under PolicyReconcile its
// expense contribution is withdrawn from matching budgets.
func (c *Coordinator) Delete(ctx context.Context, ownerID, id string) (Outcome, error) {
	var out Outcome
	err := c.store.WithinTx(ctx, func(tx storage.LedgerTx) error {
		out = Outcome{}
		prev, err := tx.GetTransaction(ctx, ownerID, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteTransaction(ctx, ownerID, id); err != nil {
			return err
		}
		if c.policy != PolicyReconcile {
			return nil
		}
		return c.apply(ctx, tx, &out, ownerID, prev.Category, -int64(prev.BudgetCharge()))
	})
	if err != nil {
		return Outcome{}, err
	}

	c.observer.BudgetsAdjusted("delete", out.BudgetsAdjusted)
	return out, nil
}

func (c *Coordinator) apply(ctx context.Context, tx storage.LedgerTx, out *Outcome, ownerID, category string, delta int64) error {
	if delta == 0 {
		return nil
	}
	n, err := tx.AdjustSpent(ctx, ownerID, category, delta)
	if err != nil {
		return err
	}
	out.BudgetsAdjusted += n
	return nil
}
