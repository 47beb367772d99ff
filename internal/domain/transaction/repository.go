package transaction

import (
	"context"
)

// Repository defines the interface for transaction data access.
// Delete removes the transaction and reverses any linked debt or saving
// aggregate in the same database transaction; it returns the deleted row
// so the caller can audit it.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Transaction, error)
	GetByID(ctx context.Context, userID string, id int64) (*Transaction, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]*Transaction, error)
	Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Transaction, error)
	Delete(ctx context.Context, userID string, id int64) (*Transaction, error)
	Summary(ctx context.Context, userID string, month, year int) (*Summary, error)
	// ListOwners returns the distinct user ids that have transactions.
	// Used by the auto-close scheduler to build its work list.
	ListOwners(ctx context.Context) ([]string, error)
}
