package debt

import "context"

// Repository defines the interface for debt data access. PaidAmount and
// the active→paid transition are owned by the ledger store; this
// repository only covers direct CRUD.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Debt, error)
	GetByID(ctx context.Context, userID string, id int64) (*Debt, error)
	ListByUserID(ctx context.Context, userID string) ([]*Debt, error)
	Update(ctx context.Context, userID string, id int64, params UpdateParams) (*Debt, error)
	Delete(ctx context.Context, userID string, id int64) error
	ListPayments(ctx context.Context, userID string, debtID int64) ([]*Payment, error)
}
