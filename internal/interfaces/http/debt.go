package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/debt"
	"fintrack/internal/shared/middleware"
)

type DebtHandler struct {
	svc *debt.Service
}

func NewDebtHandler(svc *debt.Service) *DebtHandler {
	return &DebtHandler{svc: svc}
}

type CreateDebtRequest struct {
	Name        string          `json:"name"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DateTaken   string          `json:"dateTaken"`
	DueDate     *string         `json:"dueDate,omitempty"`
}

type UpdateDebtRequest struct {
	Name        *string          `json:"name,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	Status      *string          `json:"status,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty"`
}

// HandleDebts routes collection requests based on method.
func (h *DebtHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleDebtByID routes requests for a specific debt.
func (h *DebtHandler) HandleDebtByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodPut:
		h.handleUpdate(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DebtHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	debts, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if debts == nil {
		debts = []*debt.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

func (h *DebtHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create debt request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dateTaken, err := time.Parse("2006-01-02", req.DateTaken)
	if err != nil {
		http.Error(w, "Invalid dateTaken format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	params := debt.CreateParams{
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
		DateTaken:   dateTaken,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			http.Error(w, "Invalid dueDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.DueDate = &dueDate
	}

	created, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *DebtHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid debt ID", http.StatusBadRequest)
		return
	}

	d, err := h.svc.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (h *DebtHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid debt ID", http.StatusBadRequest)
		return
	}

	var req UpdateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update debt request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := debt.UpdateParams{
		Name:        req.Name,
		TotalAmount: req.TotalAmount,
	}
	if req.Status != nil {
		status := debt.Status(*req.Status)
		params.Status = &status
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			http.Error(w, "Invalid dueDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.DueDate = &dueDate
	}

	updated, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *DebtHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid debt ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDebtPayments lists the payment history for a specific debt.
func (h *DebtHandler) HandleDebtPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid debt ID", http.StatusBadRequest)
		return
	}

	payments, err := h.svc.ListPayments(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	if payments == nil {
		payments = []*debt.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}
