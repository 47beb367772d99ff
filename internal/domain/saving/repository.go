package saving

import "context"

// Repository defines the interface for saving goal data access. SavedAmount
// and the active→completed transition are owned by the ledger store.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Goal, error)
	GetByID(ctx context.Context, userID string, id int64) (*Goal, error)
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)
	Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Goal, error)
	Delete(ctx context.Context, userID string, id int64) error
	ListContributions(ctx context.Context, userID string, goalID int64) ([]*Contribution, error)
}
