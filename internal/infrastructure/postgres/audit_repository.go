package postgres

import (
	"context"
	"fmt"

	"fintrack/internal/domain/audit"
)

type AuditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, params audit.InsertParams) error {
	query := `
		INSERT INTO audit_logs (user_id, entity_type, entity_id, action, payload_before, payload_after)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		params.UserID, params.EntityType, params.EntityID, params.Action,
		nullableJSON(params.PayloadBefore), nullableJSON(params.PayloadAfter),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, userID string, limit, offset int) ([]*audit.Entry, error) {
	query := `
		SELECT id, user_id, entity_type, entity_id, action, payload_before, payload_after, created_at
		FROM audit_logs
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var out []*audit.Entry
	for rows.Next() {
		var e audit.Entry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.EntityType, &e.EntityID, &e.Action,
			&e.PayloadBefore, &e.PayloadAfter, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// nullableJSON maps an empty payload to SQL NULL instead of an empty
// JSONB document.
func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
