package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/pkg/api"
)

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService. Every call is scoped
// to the authenticated caller.
type LedgerService struct {
	ledger *ledger.Coordinator
	logger *slog.Logger
}

// NewLedgerService creates a LedgerService on top of the coordinator.
func NewLedgerService(coordinator *ledger.Coordinator, logger *slog.Logger) *LedgerService {
	return &LedgerService{ledger: coordinator, logger: logger}
}

// ListTransactions returns the caller's transactions.
func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := s.ledger.List(ctx, userID)
	if err != nil {
		s.logger.Error("ListTransactions failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t)
	}
	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: out}), nil
}

// CreateTransaction records a transaction and, for expenses, charges the
// matching budget.
func (s *LedgerService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.TransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := fromTransactionInput(req.Msg.TransactionInput)
	if err != nil {
		return nil, toConnectError(err)
	}

	out, err := s.ledger.Create(ctx, userID, txn)
	if err != nil {
		s.logger.Warn("CreateTransaction failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Transaction created",
		"user_id", userID,
		"transaction_id", txn.ID,
		"budgets_adjusted", out.BudgetsAdjusted,
	)
	return connect.NewResponse(&api.TransactionResponse{
		Transaction:     toAPITransaction(txn),
		BudgetsAdjusted: out.BudgetsAdjusted,
	}), nil
}

// UpdateTransaction replaces the editable fields of one of the caller's
// transactions.
func (s *LedgerService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.TransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id", "is required")
	}

	txn, err := fromTransactionInput(req.Msg.TransactionInput)
	if err != nil {
		return nil, toConnectError(err)
	}
	txn.ID = req.Msg.ID

	out, err := s.ledger.Update(ctx, userID, txn)
	if err != nil {
		s.logger.Warn("UpdateTransaction failed", "user_id", userID, "transaction_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Transaction updated",
		"user_id", userID,
		"transaction_id", txn.ID,
		"budgets_adjusted", out.BudgetsAdjusted,
	)
	return connect.NewResponse(&api.TransactionResponse{
		Transaction:     toAPITransaction(txn),
		BudgetsAdjusted: out.BudgetsAdjusted,
	}), nil
}

// DeleteTransaction removes one of the caller's transactions.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, invalidArgument("id", "is required")
	}

	out, err := s.ledger.Delete(ctx, userID, req.Msg.ID)
	if err != nil {
		s.logger.Warn("DeleteTransaction failed", "user_id", userID, "transaction_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Transaction deleted", "user_id", userID, "transaction_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteTransactionResponse{
		BudgetsAdjusted: out.BudgetsAdjusted,
	}), nil
}
