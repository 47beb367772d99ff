package postgres

import (
	"context"
	"fmt"

	"fintrack/internal/domain/notification"
)

type DeviceTokenRepository struct {
	db *DB
}

func NewDeviceTokenRepository(db *DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// UpsertToken registers the token for the user. A token already known
// to the system is reassigned and reactivated, covering devices that
// change hands between accounts.
func (r *DeviceTokenRepository) UpsertToken(ctx context.Context, userID string, params notification.RegisterParams) (*notification.DeviceToken, error) {
	query := `
		INSERT INTO device_tokens (user_id, token, platform)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    platform = EXCLUDED.platform,
		    active = TRUE,
		    updated_at = NOW()
		RETURNING id, user_id, token, platform, active, created_at, updated_at
	`

	var t notification.DeviceToken
	err := r.db.QueryRowContext(ctx, query, userID, params.Token, params.Platform).Scan(
		&t.ID, &t.UserID, &t.Token, &t.Platform, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}
	return &t, nil
}

func (r *DeviceTokenRepository) ActiveTokensByUserID(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT token FROM device_tokens WHERE user_id = $1 AND active
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

func (r *DeviceTokenRepository) DeactivateToken(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE device_tokens SET active = FALSE, updated_at = NOW() WHERE token = $1
	`, token)
	if err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}
	return nil
}
