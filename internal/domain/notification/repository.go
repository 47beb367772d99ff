package notification

import "context"

// Repository defines the interface for device token data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	// UpsertToken registers a token for a user, reassigning it if it
	// already belongs to someone else.
	UpsertToken(ctx context.Context, userID string, params RegisterParams) (*DeviceToken, error)
	ActiveTokensByUserID(ctx context.Context, userID string) ([]string, error)
	DeactivateToken(ctx context.Context, token string) error
}
