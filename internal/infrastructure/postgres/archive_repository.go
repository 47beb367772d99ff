package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/archive"
	"fintrack/internal/domain/shared"
	"fintrack/internal/domain/transaction"
)

// ArchiveRepository implements archive.Repository. Closing, regenerating
// and deleting an archive each run as one database transaction so the
// snapshot row and its carryover transaction can never diverge.
type ArchiveRepository struct {
	db *DB
}

func NewArchiveRepository(db *DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

const archiveColumns = `id, user_id, month, year, total_income, total_expenses, total_savings,
	       debts_remaining, carryover_in, carryover_out, carryover_transaction_id, created_at`

func (r *ArchiveRepository) CloseMonth(ctx context.Context, userID string, month, year int) (*archive.Archive, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	totals, err := computeTotals(ctx, tx, userID, month, year)
	if err != nil {
		return nil, err
	}
	carryoverOut := totals.CarryoverOut()

	a := archive.Archive{
		UserID:         userID,
		Month:          month,
		Year:           year,
		TotalIncome:    totals.TotalIncome,
		TotalExpenses:  totals.TotalExpenses,
		TotalSavings:   totals.TotalSavings,
		DebtsRemaining: totals.DebtsRemaining,
		CarryoverIn:    totals.CarryoverIn,
		CarryoverOut:   carryoverOut,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO monthly_archives
			(user_id, month, year, total_income, total_expenses, total_savings,
			 debts_remaining, carryover_in, carryover_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, userID, month, year, totals.TotalIncome, totals.TotalExpenses, totals.TotalSavings,
		totals.DebtsRemaining, totals.CarryoverIn, carryoverOut,
	).Scan(&a.ID, &a.CreatedAt)
	if isUniqueViolation(err) {
		return nil, shared.AlreadyExists("month already closed")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert archive: %w", err)
	}

	if carryoverOut.IsPositive() {
		txnID, err := insertCarryover(ctx, tx, userID, month, year, carryoverOut)
		if err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE monthly_archives SET carryover_transaction_id = $1 WHERE id = $2
		`, txnID, a.ID); err != nil {
			return nil, fmt.Errorf("failed to link carryover transaction: %w", err)
		}
		a.CarryoverTransactionID = &txnID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit month close: %w", err)
	}
	return &a, nil
}

func (r *ArchiveRepository) Regenerate(ctx context.Context, userID string, id int64) (*archive.Archive, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	a, err := lockArchive(ctx, tx, userID, id)
	if err != nil {
		return nil, err
	}

	totals, err := computeTotals(ctx, tx, userID, a.Month, a.Year)
	if err != nil {
		return nil, err
	}
	carryoverOut := totals.CarryoverOut()

	// Reconcile the carryover transaction with the recomputed balance
	// using the stored back-reference.
	switch {
	case a.CarryoverTransactionID != nil && carryoverOut.IsPositive():
		if _, err := tx.ExecContext(ctx, `
			UPDATE transactions SET amount = $1, updated_at = NOW() WHERE id = $2
		`, carryoverOut, *a.CarryoverTransactionID); err != nil {
			return nil, fmt.Errorf("failed to update carryover transaction: %w", err)
		}
	case a.CarryoverTransactionID != nil:
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM transactions WHERE id = $1
		`, *a.CarryoverTransactionID); err != nil {
			return nil, fmt.Errorf("failed to remove carryover transaction: %w", err)
		}
		a.CarryoverTransactionID = nil
	case carryoverOut.IsPositive():
		txnID, err := insertCarryover(ctx, tx, userID, a.Month, a.Year, carryoverOut)
		if err != nil {
			return nil, err
		}
		a.CarryoverTransactionID = &txnID
	}

	a.TotalIncome = totals.TotalIncome
	a.TotalExpenses = totals.TotalExpenses
	a.TotalSavings = totals.TotalSavings
	a.DebtsRemaining = totals.DebtsRemaining
	a.CarryoverIn = totals.CarryoverIn
	a.CarryoverOut = carryoverOut

	if _, err := tx.ExecContext(ctx, `
		UPDATE monthly_archives
		SET total_income = $1, total_expenses = $2, total_savings = $3,
		    debts_remaining = $4, carryover_in = $5, carryover_out = $6,
		    carryover_transaction_id = $7
		WHERE id = $8
	`, a.TotalIncome, a.TotalExpenses, a.TotalSavings, a.DebtsRemaining,
		a.CarryoverIn, a.CarryoverOut, a.CarryoverTransactionID, a.ID,
	); err != nil {
		return nil, fmt.Errorf("failed to update archive: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit archive regeneration: %w", err)
	}
	return a, nil
}

func (r *ArchiveRepository) Delete(ctx context.Context, userID string, id int64) (*archive.Archive, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	a, err := lockArchive(ctx, tx, userID, id)
	if err != nil {
		return nil, err
	}

	if a.CarryoverTransactionID != nil {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM transactions WHERE id = $1
		`, *a.CarryoverTransactionID); err != nil {
			return nil, fmt.Errorf("failed to remove carryover transaction: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_archives WHERE id = $1`, a.ID); err != nil {
		return nil, fmt.Errorf("failed to delete archive: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit archive delete: %w", err)
	}
	return a, nil
}

func (r *ArchiveRepository) List(ctx context.Context, userID string) ([]*archive.Archive, error) {
	query := `SELECT ` + archiveColumns + ` FROM monthly_archives WHERE user_id = $1 ORDER BY year DESC, month DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}
	defer rows.Close()

	var out []*archive.Archive
	for rows.Next() {
		var a archive.Archive
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Month, &a.Year, &a.TotalIncome, &a.TotalExpenses,
			&a.TotalSavings, &a.DebtsRemaining, &a.CarryoverIn, &a.CarryoverOut,
			&a.CarryoverTransactionID, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan archive: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func lockArchive(ctx context.Context, tx *Tx, userID string, id int64) (*archive.Archive, error) {
	var a archive.Archive
	err := tx.QueryRowContext(ctx, `
		SELECT `+archiveColumns+` FROM monthly_archives WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, id, userID).Scan(
		&a.ID, &a.UserID, &a.Month, &a.Year, &a.TotalIncome, &a.TotalExpenses,
		&a.TotalSavings, &a.DebtsRemaining, &a.CarryoverIn, &a.CarryoverOut,
		&a.CarryoverTransactionID, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("archive not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock archive: %w", err)
	}
	return &a, nil
}

// computeTotals aggregates the period inside the open transaction.
// Total income includes carryover transactions so the carryover chain
// propagates; carryover in is also reported separately.
func computeTotals(ctx context.Context, tx *Tx, userID string, month, year int) (archive.Totals, error) {
	var t archive.Totals

	err := tx.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type IN ('income', 'carryover')), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`, userID, month, year).Scan(&t.TotalIncome, &t.TotalExpenses)
	if err != nil {
		return t, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	// The chain links each period to at most one carryover transaction,
	// so this reads a single row rather than summing.
	err = tx.QueryRowContext(ctx, `
		SELECT amount FROM transactions
		WHERE user_id = $1
		  AND type = 'carryover'
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`, userID, month, year).Scan(&t.CarryoverIn)
	if err == sql.ErrNoRows {
		t.CarryoverIn = decimal.Zero
	} else if err != nil {
		return t, fmt.Errorf("failed to read carryover: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(st.amount), 0)
		FROM saving_transactions st
		JOIN saving_goals sg ON st.saving_id = sg.id
		WHERE sg.user_id = $1
		  AND EXTRACT(MONTH FROM st.date) = $2
		  AND EXTRACT(YEAR FROM st.date) = $3
	`, userID, month, year).Scan(&t.TotalSavings)
	if err != nil {
		return t, fmt.Errorf("failed to aggregate savings: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount - paid_amount), 0)
		FROM debts
		WHERE user_id = $1 AND status = 'active'
	`, userID).Scan(&t.DebtsRemaining)
	if err != nil {
		return t, fmt.Errorf("failed to aggregate debts: %w", err)
	}

	return t, nil
}

// insertCarryover books the forward carryover on the first day of the
// month following the closed period.
func insertCarryover(ctx context.Context, tx *Tx, userID string, month, year int, amount decimal.Decimal) (int64, error) {
	nextMonth, nextYear := archive.NextPeriod(month, year)
	date := archive.CarryoverDate(nextMonth, nextYear)

	var txnID int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, transaction.KindCarryover, amount, archive.CarryoverDescription, date).Scan(&txnID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert carryover transaction: %w", err)
	}
	return txnID, nil
}
