package ledger

import (
	"context"

	"fintrack/internal/domain/audit"
	"fintrack/internal/domain/shared"
)

// Service validates contribution ledger requests, delegates the atomic
// write to the Store and notifies the audit recorder after commit. Audit
// failures never surface to the caller.
type Service struct {
	store Store
	audit audit.Recorder
}

func NewService(store Store, recorder audit.Recorder) *Service {
	return &Service{store: store, audit: recorder}
}

func (s *Service) AddDebtPayment(ctx context.Context, userID string, params PaymentParams) (*PaymentResult, error) {
	if !params.Amount.IsPositive() {
		return nil, shared.InvalidArgument("payment amount must be positive")
	}
	if params.Date.IsZero() {
		return nil, shared.InvalidArgument("date is required")
	}

	result, err := s.store.AddDebtPayment(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "debt_payment", result.PaymentID, audit.ActionCreate, nil, map[string]any{
		"id":            result.PaymentID,
		"debtId":        params.DebtID,
		"transactionId": result.TransactionID,
		"amount":        params.Amount,
		"date":          params.Date,
		"description":   params.Description,
	})
	return result, nil
}

func (s *Service) AddSavingContribution(ctx context.Context, userID string, params ContributionParams) (*ContributionResult, error) {
	if !params.Amount.IsPositive() {
		return nil, shared.InvalidArgument("contribution amount must be positive")
	}
	if params.Date.IsZero() {
		return nil, shared.InvalidArgument("date is required")
	}

	result, err := s.store.AddSavingContribution(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "saving_transaction", result.ContributionID, audit.ActionCreate, nil, map[string]any{
		"id":            result.ContributionID,
		"savingId":      params.SavingID,
		"transactionId": result.TransactionID,
		"amount":        params.Amount,
		"date":          params.Date,
		"description":   params.Description,
	})
	return result, nil
}

func (s *Service) WithdrawSaving(ctx context.Context, userID string, params ContributionParams) (*ContributionResult, error) {
	if !params.Amount.IsPositive() {
		return nil, shared.InvalidArgument("withdrawal amount must be positive")
	}
	if params.Date.IsZero() {
		return nil, shared.InvalidArgument("date is required")
	}

	result, err := s.store.WithdrawSaving(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, userID, "saving_transaction", result.ContributionID, audit.ActionCreate, nil, map[string]any{
		"id":            result.ContributionID,
		"savingId":      params.SavingID,
		"transactionId": result.TransactionID,
		"amount":        params.Amount.Neg(),
		"date":          params.Date,
		"description":   params.Description,
	})
	return result, nil
}
