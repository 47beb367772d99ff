package debt

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/shared"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

type Debt struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	Status      Status          `json:"status"`
	DateTaken   time.Time       `json:"dateTaken"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Remaining returns the outstanding amount on the debt.
func (d *Debt) Remaining() decimal.Decimal {
	return d.TotalAmount.Sub(d.PaidAmount)
}

// ApplyPayment validates a payment against the debt's current state and
// returns the resulting paid amount and status. The debt itself is not
// mutated; callers persist the result inside the enclosing database
// transaction while holding the row lock.
func (d *Debt) ApplyPayment(amount decimal.Decimal) (decimal.Decimal, Status, error) {
	if d.Status != StatusActive {
		return decimal.Zero, d.Status, shared.InvalidArgument("cannot add payment to inactive debt")
	}

	newPaid := d.PaidAmount.Add(amount)
	if newPaid.GreaterThan(d.TotalAmount) {
		return decimal.Zero, d.Status, shared.InvalidArgument("payment would exceed total debt amount")
	}

	status := StatusActive
	if newPaid.GreaterThanOrEqual(d.TotalAmount) {
		status = StatusPaid
	}
	return newPaid, status, nil
}

// ReversePayment returns the paid amount after undoing a payment of the
// given amount. The status is deliberately left untouched: a debt that
// reached "paid" stays "paid" even if the reversal drops the balance
// below the total. Status transitions are one-way; only a direct edit
// moves a debt out of "paid".
func (d *Debt) ReversePayment(amount decimal.Decimal) decimal.Decimal {
	return d.PaidAmount.Sub(amount)
}

type Payment struct {
	ID            int64           `json:"id"`
	DebtID        int64           `json:"debtId"`
	TransactionID int64           `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   *string         `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CreateParams struct {
	Name        string
	TotalAmount decimal.Decimal
	DateTaken   time.Time
	DueDate     *time.Time
}

func (p CreateParams) Validate() error {
	if p.Name == "" {
		return shared.InvalidArgument("name is required")
	}
	if !p.TotalAmount.IsPositive() {
		return shared.InvalidArgument("total amount must be positive")
	}
	if p.DateTaken.IsZero() {
		return shared.InvalidArgument("date taken is required")
	}
	return nil
}

// UpdateParams carries direct edits. PaidAmount is intentionally absent:
// it is only ever mutated through the contribution ledger or reversal.
type UpdateParams struct {
	Name        *string
	TotalAmount *decimal.Decimal
	Status      *Status
	DueDate     *time.Time
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return shared.InvalidArgument("name cannot be empty")
	}
	if p.TotalAmount != nil && !p.TotalAmount.IsPositive() {
		return shared.InvalidArgument("total amount must be positive")
	}
	if p.Status != nil && !p.Status.Valid() {
		return shared.InvalidArgument("status must be active, paid or cancelled")
	}
	return nil
}
