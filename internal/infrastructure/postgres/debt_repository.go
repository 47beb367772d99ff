package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/debt"
	"fintrack/internal/domain/shared"
)

type DebtRepository struct {
	db *DB
}

func NewDebtRepository(db *DB) *DebtRepository {
	return &DebtRepository{db: db}
}

const debtColumns = `id, user_id, name, total_amount, paid_amount, status, date_taken, due_date, created_at`

func (r *DebtRepository) Create(ctx context.Context, userID string, params debt.CreateParams) (*debt.Debt, error) {
	query := `
		INSERT INTO debts (user_id, name, total_amount, date_taken, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + debtColumns

	var d debt.Debt
	err := r.db.QueryRowContext(
		ctx, query,
		userID, params.Name, params.TotalAmount, params.DateTaken, params.DueDate,
	).Scan(
		&d.ID, &d.UserID, &d.Name, &d.TotalAmount, &d.PaidAmount,
		&d.Status, &d.DateTaken, &d.DueDate, &d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}
	return &d, nil
}

func (r *DebtRepository) GetByID(ctx context.Context, userID string, id int64) (*debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1 AND user_id = $2`

	var d debt.Debt
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.TotalAmount, &d.PaidAmount,
		&d.Status, &d.DateTaken, &d.DueDate, &d.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("debt not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get debt: %w", err)
	}
	return &d, nil
}

func (r *DebtRepository) ListByUserID(ctx context.Context, userID string) ([]*debt.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var out []*debt.Debt
	for rows.Next() {
		var d debt.Debt
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Name, &d.TotalAmount, &d.PaidAmount,
			&d.Status, &d.DateTaken, &d.DueDate, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *DebtRepository) Update(ctx context.Context, userID string, id int64, params debt.UpdateParams) (*debt.Debt, error) {
	query := `
		UPDATE debts
		SET name = COALESCE($3, name),
		    total_amount = COALESCE($4, total_amount),
		    status = COALESCE($5, status),
		    due_date = COALESCE($6, due_date)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + debtColumns

	var d debt.Debt
	err := r.db.QueryRowContext(
		ctx, query,
		id, userID, params.Name, params.TotalAmount, params.Status, params.DueDate,
	).Scan(
		&d.ID, &d.UserID, &d.Name, &d.TotalAmount, &d.PaidAmount,
		&d.Status, &d.DateTaken, &d.DueDate, &d.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("debt not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}
	return &d, nil
}

func (r *DebtRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM debts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return shared.NotFound("debt not found")
	}
	return nil
}

func (r *DebtRepository) ListPayments(ctx context.Context, userID string, debtID int64) ([]*debt.Payment, error) {
	query := `
		SELECT p.id, p.debt_id, p.transaction_id, p.amount, p.date, p.description, p.created_at
		FROM debt_payments p
		JOIN debts d ON p.debt_id = d.id
		WHERE p.debt_id = $1 AND d.user_id = $2
		ORDER BY p.date DESC, p.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, debtID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debt payments: %w", err)
	}
	defer rows.Close()

	var out []*debt.Payment
	for rows.Next() {
		var p debt.Payment
		if err := rows.Scan(
			&p.ID, &p.DebtID, &p.TransactionID, &p.Amount, &p.Date, &p.Description, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan debt payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
