package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"fintrack/internal/domain/shared"
	"fintrack/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, type, category_id, amount, description, date, receipt_file, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, userID string, params transaction.CreateParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, category_id, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + transactionColumns

	var t transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		userID, params.Kind, params.CategoryID, params.Amount, params.Description, params.Date,
	).Scan(
		&t.ID, &t.UserID, &t.Kind, &t.CategoryID, &t.Amount,
		&t.Description, &t.Date, &t.ReceiptFile, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID string, id int64) (*transaction.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`

	var t transaction.Transaction
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Kind, &t.CategoryID, &t.Amount,
		&t.Description, &t.Date, &t.ReceiptFile, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("transaction not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID string, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if filter.Month != nil {
		args = append(args, *filter.Month)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(MONTH FROM date) = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("EXTRACT(YEAR FROM date) = $%d", len(args)))
	}
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (r *TransactionRepository) Update(ctx context.Context, userID string, id int64, params transaction.UpdateParams) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET category_id = COALESCE($3, category_id),
		    amount = COALESCE($4, amount),
		    description = COALESCE($5, description),
		    date = COALESCE($6, date),
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + transactionColumns

	var t transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		id, userID, params.CategoryID, params.Amount, params.Description, params.Date,
	).Scan(
		&t.ID, &t.UserID, &t.Kind, &t.CategoryID, &t.Amount,
		&t.Description, &t.Date, &t.ReceiptFile, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("transaction not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return &t, nil
}

// Delete removes the transaction after reversing any linked debt or
// saving aggregate in the same database transaction. The link rows
// themselves go away via ON DELETE CASCADE.
func (r *TransactionRepository) Delete(ctx context.Context, userID string, id int64) (*transaction.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var t transaction.Transaction
	err = tx.QueryRowContext(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, id, userID).Scan(
		&t.ID, &t.UserID, &t.Kind, &t.CategoryID, &t.Amount,
		&t.Description, &t.Date, &t.ReceiptFile, &t.CreatedAt, &t.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("transaction not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock transaction: %w", err)
	}

	if err := reverseTransactionLinks(ctx, tx, id); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction delete: %w", err)
	}
	return &t, nil
}

func (r *TransactionRepository) Summary(ctx context.Context, userID string, month, year int) (*transaction.Summary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type IN ('income', 'carryover')), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`

	var s transaction.Summary
	err := r.db.QueryRowContext(ctx, query, userID, month, year).Scan(&s.TotalIncome, &s.TotalExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary: %w", err)
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpenses)
	return &s, nil
}

func (r *TransactionRepository) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction owners: %w", err)
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan owner: %w", err)
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}

func scanTransactions(rows *sql.Rows) ([]*transaction.Transaction, error) {
	var out []*transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Kind, &t.CategoryID, &t.Amount,
			&t.Description, &t.Date, &t.ReceiptFile, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
