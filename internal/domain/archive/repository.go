package archive

import "context"

// Repository executes the atomic period-closing operations. Each call is
// one database transaction: CloseMonth computes the aggregates, inserts
// the archive row and the forward carryover transaction; Regenerate
// recomputes totals in place and updates, replaces or removes the
// carryover via the stored back-reference; Delete removes the archive
// together with its carryover transaction and returns the deleted
// snapshot for auditing.
type Repository interface {
	CloseMonth(ctx context.Context, userID string, month, year int) (*Archive, error)
	Regenerate(ctx context.Context, userID string, id int64) (*Archive, error)
	Delete(ctx context.Context, userID string, id int64) (*Archive, error)
	List(ctx context.Context, userID string) ([]*Archive, error)
}
