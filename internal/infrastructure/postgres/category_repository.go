package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/shared"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, userID string, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, type, is_fixed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, type, is_fixed, created_at
	`

	var c category.Category
	err := r.db.QueryRowContext(
		ctx, query,
		userID, params.Name, params.Kind, params.IsFixed,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.IsFixed, &c.CreatedAt)
	if isUniqueViolation(err) {
		return nil, shared.AlreadyExists("category already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) ListByUserID(ctx context.Context, userID string) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, name, type, is_fixed, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var out []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.IsFixed, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, userID string, id int64, params category.UpdateParams) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($3, name),
		    is_fixed = COALESCE($4, is_fixed)
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, type, is_fixed, created_at
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, id, userID, params.Name, params.IsFixed).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.IsFixed, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.NotFound("category not found")
	}
	if isUniqueViolation(err) {
		return nil, shared.AlreadyExists("category already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return shared.NotFound("category not found")
	}
	return nil
}
