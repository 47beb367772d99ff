package saving

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/shared"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Goal struct {
	ID           int64           `json:"id"`
	UserID       string          `json:"userId"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	StartDate    time.Time       `json:"startDate"`
	TargetDate   *time.Time      `json:"targetDate,omitempty"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ApplyContribution validates a contribution against the goal's state and
// returns the resulting saved amount and status. Contributions may
// overshoot the target; reaching it flips the goal to completed.
func (g *Goal) ApplyContribution(amount decimal.Decimal) (decimal.Decimal, Status, error) {
	if g.Status != StatusActive {
		return decimal.Zero, g.Status, shared.InvalidArgument("cannot add contribution to inactive goal")
	}

	newSaved := g.SavedAmount.Add(amount)
	status := StatusActive
	if newSaved.GreaterThanOrEqual(g.TargetAmount) {
		status = StatusCompleted
	}
	return newSaved, status, nil
}

// ApplyWithdrawal validates a withdrawal and returns the resulting saved
// amount. The balance can never go negative. Withdrawing from a completed
// goal does not revert it to active; "completed" is a one-way transition.
func (g *Goal) ApplyWithdrawal(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.GreaterThan(g.SavedAmount) {
		return decimal.Zero, shared.InvalidArgument("withdrawal amount exceeds saved amount")
	}
	return g.SavedAmount.Sub(amount), nil
}

// Contribution links one transaction to a saving goal. Withdrawals reuse
// the same link shape with an income-kind transaction.
type Contribution struct {
	ID            int64           `json:"id"`
	SavingID      int64           `json:"savingId"`
	TransactionID int64           `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Description   *string         `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type CreateParams struct {
	Name         string
	TargetAmount decimal.Decimal
	StartDate    time.Time
	TargetDate   *time.Time
}

func (p CreateParams) Validate() error {
	if p.Name == "" {
		return shared.InvalidArgument("name is required")
	}
	if !p.TargetAmount.IsPositive() {
		return shared.InvalidArgument("target amount must be positive")
	}
	if p.StartDate.IsZero() {
		return shared.InvalidArgument("start date is required")
	}
	return nil
}

// UpdateParams carries direct edits. SavedAmount is only ever mutated
// through the contribution ledger or reversal.
type UpdateParams struct {
	Name         *string
	TargetAmount *decimal.Decimal
	Status       *Status
	TargetDate   *time.Time
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return shared.InvalidArgument("name cannot be empty")
	}
	if p.TargetAmount != nil && !p.TargetAmount.IsPositive() {
		return shared.InvalidArgument("target amount must be positive")
	}
	if p.Status != nil && !p.Status.Valid() {
		return shared.InvalidArgument("status must be active, completed or cancelled")
	}
	return nil
}
