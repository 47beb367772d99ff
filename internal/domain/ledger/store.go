package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentParams describes a debt payment request.
type PaymentParams struct {
	DebtID      int64
	Amount      decimal.Decimal
	Date        time.Time
	Description *string
}

// PaymentResult is returned after a committed debt payment.
type PaymentResult struct {
	PaymentID     int64           `json:"paymentId"`
	TransactionID int64           `json:"transactionId"`
	NewPaidAmount decimal.Decimal `json:"updatedPaidAmount"`
}

// ContributionParams describes a saving contribution or withdrawal request.
type ContributionParams struct {
	SavingID    int64
	Amount      decimal.Decimal
	Date        time.Time
	Description *string
}

// ContributionResult is returned after a committed contribution or withdrawal.
type ContributionResult struct {
	ContributionID int64           `json:"contributionId"`
	TransactionID  int64           `json:"transactionId"`
	NewSavedAmount decimal.Decimal `json:"updatedSavedAmount"`
}

// Store executes the atomic link operations: each call locks the aggregate
// row, inserts the transaction and link rows, updates the aggregate balance
// and status, and commits all or nothing. Implemented by the postgres
// ledger repository.
type Store interface {
	AddDebtPayment(ctx context.Context, userID string, params PaymentParams) (*PaymentResult, error)
	AddSavingContribution(ctx context.Context, userID string, params ContributionParams) (*ContributionResult, error)
	WithdrawSaving(ctx context.Context, userID string, params ContributionParams) (*ContributionResult, error)
}
