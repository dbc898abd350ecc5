package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/pkg/api"
)

var _ api.BudgetServiceHandler = (*BudgetService)(nil)

// BudgetService implements the Connect BudgetService.
type BudgetService struct {
	store  storage.BudgetStore
	logger *slog.Logger
}

// NewBudgetService creates a BudgetService with the given storage backend.
func NewBudgetService(store storage.BudgetStore, logger *slog.Logger) *BudgetService {
	return &BudgetService{store: store, logger: logger}
}

// ListBudgets returns the caller's budgets.
func (s *BudgetService) ListBudgets(ctx context.Context, req *connect.Request[api.ListBudgetsRequest]) (*connect.Response[api.ListBudgetsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		s.logger.Error("ListBudgets failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Budget, len(budgets))
	for i, b := range budgets {
		out[i] = toAPIBudget(b)
	}
	return connect.NewResponse(&api.ListBudgetsResponse{Budgets: out}), nil
}

// CreateBudget creates a budget with zero spend.
func (s *BudgetService) CreateBudget(ctx context.Context, req *connect.Request[api.CreateBudgetRequest]) (*connect.Response[api.BudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	budget, err := fromBudgetInput(req.Msg.BudgetInput)
	if err != nil {
		return nil, toConnectError(err)
	}
	budget.OwnerID = userID
	budget.Normalize()
	if err := budget.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateBudget(ctx, budget); err != nil {
		s.logger.Error("CreateBudget failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Budget created", "user_id", userID, "budget_id", budget.ID, "category", budget.Category)
	return connect.NewResponse(&api.BudgetResponse{Budget: toAPIBudget(budget)}), nil
}

// UpdateBudget changes category, limit, period and start date. The
// accumulated spend is kept as is.
func (s *BudgetService) UpdateBudget(ctx context.Context, req *connect.Request[api.UpdateBudgetRequest]) (*connect.Response[api.BudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id", "is required")
	}

	budget, err := fromBudgetInput(req.Msg.BudgetInput)
	if err != nil {
		return nil, toConnectError(err)
	}
	budget.ID = req.Msg.ID
	budget.OwnerID = userID
	budget.Normalize()
	if err := budget.Validate(); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateBudget(ctx, budget); err != nil {
		s.logger.Warn("UpdateBudget failed", "user_id", userID, "budget_id", budget.ID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetBudget(ctx, userID, budget.ID)
	if err != nil {
		s.logger.Error("Failed to fetch updated budget", "budget_id", budget.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Budget updated", "user_id", userID, "budget_id", budget.ID)
	return connect.NewResponse(&api.BudgetResponse{Budget: toAPIBudget(updated)}), nil
}

// DeleteBudget removes one of the caller's budgets.
func (s *BudgetService) DeleteBudget(ctx context.Context, req *connect.Request[api.DeleteBudgetRequest]) (*connect.Response[api.DeleteBudgetResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id", "is required")
	}

	if err := s.store.DeleteBudget(ctx, userID, req.Msg.ID); err != nil {
		s.logger.Warn("DeleteBudget failed", "user_id", userID, "budget_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Budget deleted", "user_id", userID, "budget_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteBudgetResponse{}), nil
}
