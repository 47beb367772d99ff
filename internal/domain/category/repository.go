package category

import "context"

// Repository defines the interface for category data access. Create maps
// a (user, name) uniqueness violation to an ALREADY_EXISTS domain error.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Category, error)
	ListByUserID(ctx context.Context, userID string) ([]*Category, error)
	Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, userID string, id int64) error
}
