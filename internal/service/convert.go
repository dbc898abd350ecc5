package service

import (
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/money"
	"github.com/mmynk/fintrack/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func toAPITransaction(t *models.Transaction) *api.Transaction {
	return &api.Transaction{
		ID:        t.ID,
		Title:     t.Title,
		Amount:    t.Amount.Decimal(),
		Category:  t.Category,
		Type:      string(t.Type),
		Date:      t.Date,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}

func fromTransactionInput(in api.TransactionInput) (*models.Transaction, error) {
	if !in.Amount.Valid {
		return nil, &models.ValidationError{Field: "amount", Reason: "is required"}
	}
	amount, err := money.FromDecimal(in.Amount.Decimal)
	if err != nil {
		return nil, &models.ValidationError{Field: "amount", Reason: err.Error()}
	}
	return &models.Transaction{
		Title:    in.Title,
		Amount:   amount,
		Category: in.Category,
		Type:     models.TransactionType(in.Type),
		Date:     in.Date,
		Notes:    in.Notes,
	}, nil
}

func toAPIBudget(b *models.Budget) *api.Budget {
	return &api.Budget{
		ID:        b.ID,
		Category:  b.Category,
		Limit:     b.Limit.Decimal(),
		Period:    string(b.Period),
		StartDate: b.StartDate,
		Spent:     b.Spent.Decimal(),
		CreatedAt: b.CreatedAt,
	}
}

func fromBudgetInput(in api.BudgetInput) (*models.Budget, error) {
	if !in.Limit.Valid {
		return nil, &models.ValidationError{Field: "limit", Reason: "is required"}
	}
	limit, err := money.FromDecimal(in.Limit.Decimal)
	if err != nil {
		return nil, &models.ValidationError{Field: "limit", Reason: err.Error()}
	}
	return &models.Budget{
		Category:  in.Category,
		Limit:     limit,
		Period:    models.BudgetPeriod(in.Period),
		StartDate: in.StartDate,
	}, nil
}
