package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/money"
	"github.com/mmynk/fintrack/internal/storage"
)

const budgetColumns = `id, owner_id, category, limit_amount, period, start_date, spent, created_at`

// ListBudgets returns all budgets owned by ownerID.
func (s *SQLiteStore) ListBudgets(ctx context.Context, ownerID string) ([]*models.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE owner_id = ? ORDER BY created_at, rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

// GetBudget retrieves a budget by ID, scoped to its owner.
func (s *SQLiteStore) GetBudget(ctx context.Context, ownerID, id string) (*models.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	budget, err := scanBudget(row)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// CreateBudget persists a new budget with zero spend.
func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt == 0 {
		budget.CreatedAt = time.Now().Unix()
	}
	budget.Spent = 0

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		budget.ID, budget.OwnerID, budget.Category, int64(budget.Limit),
		string(budget.Period), budget.StartDate, budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

// UpdateBudget overwrites category, limit, period and start date.
// The accumulated spend is not modified.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, limit_amount = ?, period = ?, start_date = ?
		 WHERE id = ? AND owner_id = ?`,
		budget.Category, int64(budget.Limit), string(budget.Period), budget.StartDate,
		budget.ID, budget.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}
	return requireAffected(res)
}

// DeleteBudget removes a budget, scoped to its owner.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, ownerID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return requireAffected(res)
}

func scanBudget(row scanner) (*models.Budget, error) {
	budget := &models.Budget{}
	var limit, spent int64
	var period string
	err := row.Scan(&budget.ID, &budget.OwnerID, &budget.Category, &limit,
		&period, &budget.StartDate, &spent, &budget.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	budget.Limit = money.Amount(limit)
	budget.Spent = money.Amount(spent)
	budget.Period = models.BudgetPeriod(period)
	return budget, nil
}
