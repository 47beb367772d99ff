package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/debt"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/saving"
	"fintrack/internal/domain/shared"
	"fintrack/internal/domain/transaction"
)

// LedgerRepository implements ledger.Store. Every operation runs in a
// single database transaction: the aggregate row is locked with
// SELECT ... FOR UPDATE, the expense/income transaction and the link row
// are inserted, and the aggregate balance and status are updated before
// commit. A failure at any step rolls the whole operation back.
type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) AddDebtPayment(ctx context.Context, userID string, params ledger.PaymentParams) (*ledger.PaymentResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	d, err := lockDebt(ctx, tx, userID, params.DebtID)
	if err != nil {
		return nil, err
	}

	newPaid, newStatus, err := d.ApplyPayment(params.Amount)
	if err != nil {
		return nil, err
	}

	description := params.Description
	if description == nil {
		s := fmt.Sprintf("Debt payment: %s", d.Name)
		description = &s
	}

	var txnID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, transaction.KindExpense, params.Amount, description, params.Date).Scan(&txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment transaction: %w", err)
	}

	var paymentID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO debt_payments (debt_id, transaction_id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.ID, txnID, params.Amount, params.Date, params.Description).Scan(&paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert debt payment: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE debts SET paid_amount = $1, status = $2 WHERE id = $3
	`, newPaid, newStatus, d.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit debt payment: %w", err)
	}

	return &ledger.PaymentResult{
		PaymentID:     paymentID,
		TransactionID: txnID,
		NewPaidAmount: newPaid,
	}, nil
}

func (r *LedgerRepository) AddSavingContribution(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, err := lockGoal(ctx, tx, userID, params.SavingID)
	if err != nil {
		return nil, err
	}

	newSaved, newStatus, err := g.ApplyContribution(params.Amount)
	if err != nil {
		return nil, err
	}

	description := params.Description
	if description == nil {
		s := fmt.Sprintf("Saving contribution: %s", g.Name)
		description = &s
	}

	var txnID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, transaction.KindExpense, params.Amount, description, params.Date).Scan(&txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contribution transaction: %w", err)
	}

	var contributionID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO saving_transactions (saving_id, transaction_id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, g.ID, txnID, params.Amount, params.Date, params.Description).Scan(&contributionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saving contribution: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE saving_goals SET saved_amount = $1, status = $2 WHERE id = $3
	`, newSaved, newStatus, g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update saving goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit saving contribution: %w", err)
	}

	return &ledger.ContributionResult{
		ContributionID: contributionID,
		TransactionID:  txnID,
		NewSavedAmount: newSaved,
	}, nil
}

// WithdrawSaving reduces a goal's saved amount. The linked budget
// transaction is recorded as income (money moving back into the
// spendable balance); the link row stores the withdrawn amount as a
// positive value, like a contribution, with the transaction kind
// telling the two apart.
func (r *LedgerRepository) WithdrawSaving(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	g, err := lockGoal(ctx, tx, userID, params.SavingID)
	if err != nil {
		return nil, err
	}

	newSaved, err := g.ApplyWithdrawal(params.Amount)
	if err != nil {
		return nil, err
	}

	description := params.Description
	if description == nil {
		s := fmt.Sprintf("Saving withdrawal: %s", g.Name)
		description = &s
	}

	var txnID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, userID, transaction.KindIncome, params.Amount, description, params.Date).Scan(&txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert withdrawal transaction: %w", err)
	}

	var contributionID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO saving_transactions (saving_id, transaction_id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, g.ID, txnID, params.Amount, params.Date, params.Description).Scan(&contributionID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert saving withdrawal: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE saving_goals SET saved_amount = $1 WHERE id = $2
	`, newSaved, g.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update saving goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit saving withdrawal: %w", err)
	}

	return &ledger.ContributionResult{
		ContributionID: contributionID,
		TransactionID:  txnID,
		NewSavedAmount: newSaved,
	}, nil
}

func lockDebt(ctx context.Context, tx *Tx, userID string, id int64) (*debt.Debt, error) {
	var d debt.Debt
	err := tx.QueryRowContext(ctx, `
		SELECT id, user_id, name, total_amount, paid_amount, status, date_taken, due_date, created_at
		FROM debts
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, id, userID).Scan(
		&d.ID, &d.UserID, &d.Name, &d.TotalAmount, &d.PaidAmount,
		&d.Status, &d.DateTaken, &d.DueDate, &d.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("debt not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock debt: %w", err)
	}
	return &d, nil
}

func lockGoal(ctx context.Context, tx *Tx, userID string, id int64) (*saving.Goal, error) {
	var g saving.Goal
	err := tx.QueryRowContext(ctx, `
		SELECT id, user_id, name, target_amount, saved_amount, start_date, target_date, status, created_at
		FROM saving_goals
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, id, userID).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
		&g.StartDate, &g.TargetDate, &g.Status, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("saving goal not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock saving goal: %w", err)
	}
	return &g, nil
}

// reverseTransactionLinks undoes the aggregate effect of a transaction
// that is about to be deleted. Debt paid amounts and goal saved amounts
// go down by the linked row's amount. Statuses are not recomputed.
func reverseTransactionLinks(ctx context.Context, tx *Tx, txnID int64) error {
	var debtID int64
	var amount string
	err := tx.QueryRowContext(ctx, `
		SELECT debt_id, amount FROM debt_payments WHERE transaction_id = $1
	`, txnID).Scan(&debtID, &amount)
	if err == nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE debts SET paid_amount = paid_amount - $1 WHERE id = $2
		`, amount, debtID); err != nil {
			return fmt.Errorf("failed to reverse debt payment: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up debt payment link: %w", err)
	}

	var savingID int64
	err = tx.QueryRowContext(ctx, `
		SELECT saving_id, amount FROM saving_transactions WHERE transaction_id = $1
	`, txnID).Scan(&savingID, &amount)
	if err == nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE saving_goals SET saved_amount = saved_amount - $1 WHERE id = $2
		`, amount, savingID); err != nil {
			return fmt.Errorf("failed to reverse saving contribution: %w", err)
		}
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to look up saving link: %w", err)
	}

	return nil
}
