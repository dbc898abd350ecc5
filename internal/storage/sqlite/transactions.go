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

const transactionColumns = `id, owner_id, title, amount, category, type, date, notes, created_at`

// ledgerTx implements storage.LedgerTx on top of a *sql.Tx.
type ledgerTx struct {
	q querier
}

var _ storage.LedgerTx = (*ledgerTx)(nil)

// ListTransactions returns all transactions owned by ownerID in insertion order.
func (s *SQLiteStore) ListTransactions(ctx context.Context, ownerID string) ([]*models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE owner_id = ? ORDER BY created_at, rowid`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return txns, nil
}

// InsertTransaction persists a new transaction, generating its ID and
// CreatedAt if unset.
func (t *ledgerTx) InsertTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	if txn.CreatedAt == 0 {
		txn.CreatedAt = time.Now().Unix()
	}

	_, err := t.q.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.OwnerID, txn.Title, int64(txn.Amount), txn.Category,
		string(txn.Type), txn.Date, nullString(txn.Notes), txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// GetTransaction retrieves a transaction by ID, scoped to its owner.
func (t *ledgerTx) GetTransaction(ctx context.Context, ownerID, id string) (*models.Transaction, error) {
	row := t.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	txn, err := scanTransaction(row)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// UpdateTransaction overwrites the client-editable fields of a transaction.
func (t *ledgerTx) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	res, err := t.q.ExecContext(ctx,
		`UPDATE transactions
		 SET title = ?, amount = ?, category = ?, type = ?, date = ?, notes = ?
		 WHERE id = ? AND owner_id = ?`,
		txn.Title, int64(txn.Amount), txn.Category, string(txn.Type), txn.Date,
		nullString(txn.Notes), txn.ID, txn.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return requireAffected(res)
}

// DeleteTransaction removes a transaction, scoped to its owner.
func (t *ledgerTx) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	res, err := t.q.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return requireAffected(res)
}

// AdjustSpent applies delta to every matching budget in one statement.
func (t *ledgerTx) AdjustSpent(ctx context.Context, ownerID, category string, delta int64) (int64, error) {
	return adjustSpent(ctx, t.q, ownerID, category, delta)
}

func adjustSpent(ctx context.Context, q querier, ownerID, category string, delta int64) (int64, error) {
	res, err := q.ExecContext(ctx,
		`UPDATE budgets SET spent = MAX(spent + ?, 0) WHERE owner_id = ? AND category = ?`,
		delta, ownerID, category,
	)
	if isCheckViolation(err) {
		return 0, storage.ErrSpendOutOfRange
	}
	if err != nil {
		return 0, fmt.Errorf("failed to adjust budget spend: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected budgets: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	txn := &models.Transaction{}
	var (
		amount int64
		typ    string
		notes  sql.NullString
	)
	err := row.Scan(&txn.ID, &txn.OwnerID, &txn.Title, &amount, &txn.Category,
		&typ, &txn.Date, &notes, &txn.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	txn.Amount = money.Amount(amount)
	txn.Type = models.TransactionType(typ)
	txn.Notes = notes.String
	return txn, nil
}
