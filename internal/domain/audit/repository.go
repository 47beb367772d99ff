package audit

import "context"

// Repository defines the interface for audit log persistence.
type Repository interface {
	Insert(ctx context.Context, params InsertParams) error
	List(ctx context.Context, userID string, limit, offset int) ([]*Entry, error)
}
