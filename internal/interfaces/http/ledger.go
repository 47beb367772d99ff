package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/ledger"
	"fintrack/internal/shared/middleware"
)

// LedgerHandler exposes the atomic link operations: debt payments,
// saving contributions and withdrawals. Each request produces both a
// ledger transaction and a link row in a single database transaction.
type LedgerHandler struct {
	svc *ledger.Service
}

func NewLedgerHandler(svc *ledger.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

type LedgerEntryRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
}

func (r LedgerEntryRequest) parseDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

// HandleDebtPayment records a payment against the debt in the path.
func (h *LedgerHandler) HandleDebtPayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	debtID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid debt ID", http.StatusBadRequest)
		return
	}

	var req LedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding debt payment request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := req.parseDate()
	if err != nil {
		http.Error(w, "Invalid date format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	result, err := h.svc.AddDebtPayment(r.Context(), userID, ledger.PaymentParams{
		DebtID:      debtID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// HandleSavingContribution records a contribution to the goal in the path.
func (h *LedgerHandler) HandleSavingContribution(w http.ResponseWriter, r *http.Request) {
	h.handleSavingEntry(w, r, h.svc.AddSavingContribution)
}

// HandleSavingWithdrawal takes money back out of the goal in the path.
func (h *LedgerHandler) HandleSavingWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.handleSavingEntry(w, r, h.svc.WithdrawSaving)
}

func (h *LedgerHandler) handleSavingEntry(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID string, params ledger.ContributionParams) (*ledger.ContributionResult, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	savingID, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid saving goal ID", http.StatusBadRequest)
		return
	}

	var req LedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding saving entry request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := req.parseDate()
	if err != nil {
		http.Error(w, "Invalid date format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	result, err := op(r.Context(), userID, ledger.ContributionParams{
		SavingID:    savingID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
