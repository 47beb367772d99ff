package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/saving"
	"fintrack/internal/domain/shared"
)

type SavingRepository struct {
	db *DB
}

func NewSavingRepository(db *DB) *SavingRepository {
	return &SavingRepository{db: db}
}

const goalColumns = `id, user_id, name, target_amount, saved_amount, start_date, target_date, status, created_at`

func (r *SavingRepository) Create(ctx context.Context, userID string, params saving.CreateParams) (*saving.Goal, error) {
	query := `
		INSERT INTO saving_goals (user_id, name, target_amount, start_date, target_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + goalColumns

	var g saving.Goal
	err := r.db.QueryRowContext(
		ctx, query,
		userID, params.Name, params.TargetAmount, params.StartDate, params.TargetDate,
	).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
		&g.StartDate, &g.TargetDate, &g.Status, &g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create saving goal: %w", err)
	}
	return &g, nil
}

func (r *SavingRepository) GetByID(ctx context.Context, userID string, id int64) (*saving.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM saving_goals WHERE id = $1 AND user_id = $2`

	var g saving.Goal
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
		&g.StartDate, &g.TargetDate, &g.Status, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("saving goal not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saving goal: %w", err)
	}
	return &g, nil
}

func (r *SavingRepository) ListByUserID(ctx context.Context, userID string) ([]*saving.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM saving_goals WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving goals: %w", err)
	}
	defer rows.Close()

	var out []*saving.Goal
	for rows.Next() {
		var g saving.Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
			&g.StartDate, &g.TargetDate, &g.Status, &g.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saving goal: %w", err)
		}
		out = append(out, &g)
	}
	return out, rows.Err()
}

func (r *SavingRepository) Update(ctx context.Context, userID string, id int64, params saving.UpdateParams) (*saving.Goal, error) {
	query := `
		UPDATE saving_goals
		SET name = COALESCE($3, name),
		    target_amount = COALESCE($4, target_amount),
		    status = COALESCE($5, status),
		    target_date = COALESCE($6, target_date)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalColumns

	var g saving.Goal
	err := r.db.QueryRowContext(
		ctx, query,
		id, userID, params.Name, params.TargetAmount, params.Status, params.TargetDate,
	).Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
		&g.StartDate, &g.TargetDate, &g.Status, &g.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("saving goal not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update saving goal: %w", err)
	}
	return &g, nil
}

func (r *SavingRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saving_goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete saving goal: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return shared.NotFound("saving goal not found")
	}
	return nil
}

func (r *SavingRepository) ListContributions(ctx context.Context, userID string, goalID int64) ([]*saving.Contribution, error) {
	query := `
		SELECT st.id, st.saving_id, st.transaction_id, st.amount, st.date, st.description, st.created_at
		FROM saving_transactions st
		JOIN saving_goals sg ON st.saving_id = sg.id
		WHERE st.saving_id = $1 AND sg.user_id = $2
		ORDER BY st.date DESC, st.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, goalID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list saving contributions: %w", err)
	}
	defer rows.Close()

	var out []*saving.Contribution
	for rows.Next() {
		var c saving.Contribution
		if err := rows.Scan(
			&c.ID, &c.SavingID, &c.TransactionID, &c.Amount, &c.Date, &c.Description, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saving contribution: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
