package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/shared"
)

// Kind classifies a transaction. Carryover transactions are synthetic rows
// created by the period closer to propagate a positive balance forward.
type Kind string

const (
	KindIncome    Kind = "income"
	KindExpense   Kind = "expense"
	KindCarryover Kind = "carryover"
)

func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindCarryover:
		return true
	}
	return false
}

type Transaction struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	Kind        Kind            `json:"type"`
	CategoryID  *int64          `json:"categoryId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description *string         `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	ReceiptFile *string         `json:"receiptFile,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreateParams struct {
	Kind        Kind
	CategoryID  *int64
	Amount      decimal.Decimal
	Description *string
	Date        time.Time
}

func (p CreateParams) Validate() error {
	if !p.Kind.Valid() {
		return shared.InvalidArgument("type must be income, expense or carryover")
	}
	if !p.Amount.IsPositive() {
		return shared.InvalidArgument("amount must be positive")
	}
	if p.Kind == KindCarryover && p.CategoryID != nil {
		return shared.InvalidArgument("carryover transactions cannot have a category")
	}
	if p.Date.IsZero() {
		return shared.InvalidArgument("date is required")
	}
	return nil
}

// UpdateParams carries partial updates. The kind of a transaction is
// immutable after creation.
type UpdateParams struct {
	CategoryID  *int64
	Amount      *decimal.Decimal
	Description *string
	Date        *time.Time
}

func (p UpdateParams) Validate() error {
	if p.Amount != nil && !p.Amount.IsPositive() {
		return shared.InvalidArgument("amount must be positive")
	}
	return nil
}

type ListFilter struct {
	Month *int
	Year  *int
	Kind  *Kind
}

// Summary holds aggregated totals for one month. Income includes carryover
// transactions, matching the period closer's aggregate computation.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}
