package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/audit"
	"fintrack/internal/domain/ledger"
	"fintrack/internal/domain/shared"
	"fintrack/internal/shared/middleware"
)

// MockLedgerStore implements ledger.Store for testing
type MockLedgerStore struct {
	AddDebtPaymentFunc        func(ctx context.Context, userID string, params ledger.PaymentParams) (*ledger.PaymentResult, error)
	AddSavingContributionFunc func(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error)
	WithdrawSavingFunc        func(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error)
}

func (m *MockLedgerStore) AddDebtPayment(ctx context.Context, userID string, params ledger.PaymentParams) (*ledger.PaymentResult, error) {
	if m.AddDebtPaymentFunc != nil {
		return m.AddDebtPaymentFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockLedgerStore) AddSavingContribution(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error) {
	if m.AddSavingContributionFunc != nil {
		return m.AddSavingContributionFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockLedgerStore) WithdrawSaving(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error) {
	if m.WithdrawSavingFunc != nil {
		return m.WithdrawSavingFunc(ctx, userID, params)
	}
	return nil, nil
}

// nopRecorder discards audit notifications
type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, userID, entityType string, entityID int64, action audit.Action, before, after any) {
}

func authedRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "user-1")
	return req.WithContext(ctx)
}

func TestHandleDebtPayment(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockStore      func() *MockLedgerStore
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"amount": "200.00", "date": "2025-03-15"}`,
			mockStore: func() *MockLedgerStore {
				return &MockLedgerStore{
					AddDebtPaymentFunc: func(ctx context.Context, userID string, params ledger.PaymentParams) (*ledger.PaymentResult, error) {
						if params.DebtID != 5 {
							t.Errorf("debt id = %d, want 5", params.DebtID)
						}
						if !params.Amount.Equal(decimal.RequireFromString("200.00")) {
							t.Errorf("amount = %s, want 200.00", params.Amount)
						}
						return &ledger.PaymentResult{
							PaymentID:     1,
							TransactionID: 10,
							NewPaidAmount: decimal.RequireFromString("700.00"),
						}, nil
					},
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Negative Amount",
			body:           `{"amount": "-50", "date": "2025-03-15"}`,
			mockStore:      func() *MockLedgerStore { return &MockLedgerStore{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Overshoot",
			body: `{"amount": "9999", "date": "2025-03-15"}`,
			mockStore: func() *MockLedgerStore {
				return &MockLedgerStore{
					AddDebtPaymentFunc: func(ctx context.Context, userID string, params ledger.PaymentParams) (*ledger.PaymentResult, error) {
						return nil, shared.InvalidArgument("payment exceeds remaining debt")
					},
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Debt Not Found",
			body: `{"amount": "200", "date": "2025-03-15"}`,
			mockStore: func() *MockLedgerStore {
				return &MockLedgerStore{
					AddDebtPaymentFunc: func(ctx context.Context, userID string, params ledger.PaymentParams) (*ledger.PaymentResult, error) {
						return nil, shared.NotFound("debt not found")
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid Date",
			body:           `{"amount": "200", "date": "15/03/2025"}`,
			mockStore:      func() *MockLedgerStore { return &MockLedgerStore{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewLedgerHandler(ledger.NewService(tt.mockStore(), nopRecorder{}))

			req := authedRequest(http.MethodPost, "/api/debts/5/payments", []byte(tt.body))
			req.SetPathValue("id", "5")

			rr := httptest.NewRecorder()
			handler.HandleDebtPayment(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandleDebtPayment_Unauthorized(t *testing.T) {
	handler := NewLedgerHandler(ledger.NewService(&MockLedgerStore{}, nopRecorder{}))

	req := httptest.NewRequest(http.MethodPost, "/api/debts/5/payments", bytes.NewReader([]byte(`{}`)))
	req.SetPathValue("id", "5")

	rr := httptest.NewRecorder()
	handler.HandleDebtPayment(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestHandleSavingContribution_Success(t *testing.T) {
	store := &MockLedgerStore{
		AddSavingContributionFunc: func(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error) {
			if params.SavingID != 3 {
				t.Errorf("saving id = %d, want 3", params.SavingID)
			}
			return &ledger.ContributionResult{
				ContributionID: 7,
				TransactionID:  12,
				NewSavedAmount: decimal.RequireFromString("550.00"),
			}, nil
		},
	}
	handler := NewLedgerHandler(ledger.NewService(store, nopRecorder{}))

	req := authedRequest(http.MethodPost, "/api/savings/3/contributions", []byte(`{"amount": "100", "date": "2025-03-15"}`))
	req.SetPathValue("id", "3")

	rr := httptest.NewRecorder()
	handler.HandleSavingContribution(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}

	var result ledger.ContributionResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.ContributionID != 7 {
		t.Errorf("contribution id = %d, want 7", result.ContributionID)
	}
	if !result.NewSavedAmount.Equal(decimal.RequireFromString("550.00")) {
		t.Errorf("saved amount = %s, want 550.00", result.NewSavedAmount)
	}
}

func TestHandleSavingWithdrawal_Overdraw(t *testing.T) {
	store := &MockLedgerStore{
		WithdrawSavingFunc: func(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error) {
			return nil, shared.InvalidArgument("withdrawal exceeds saved amount")
		},
	}
	handler := NewLedgerHandler(ledger.NewService(store, nopRecorder{}))

	req := authedRequest(http.MethodPost, "/api/savings/3/withdrawals", []byte(`{"amount": "9999", "date": "2025-03-15"}`))
	req.SetPathValue("id", "3")

	rr := httptest.NewRecorder()
	handler.HandleSavingWithdrawal(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
