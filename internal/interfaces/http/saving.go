package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/saving"
	"fintrack/internal/shared/middleware"
)

type SavingHandler struct {
	svc *saving.Service
}

func NewSavingHandler(svc *saving.Service) *SavingHandler {
	return &SavingHandler{svc: svc}
}

type CreateSavingRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	StartDate    string          `json:"startDate"`
	TargetDate   *string         `json:"targetDate,omitempty"`
}

type UpdateSavingRequest struct {
	Name         *string          `json:"name,omitempty"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty"`
	Status       *string          `json:"status,omitempty"`
	TargetDate   *string          `json:"targetDate,omitempty"`
}

// HandleSavings routes collection requests based on method.
func (h *SavingHandler) HandleSavings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSavingByID routes requests for a specific saving goal.
func (h *SavingHandler) HandleSavingByID(w http.ResponseWriter, r *http.Request) {
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

func (h *SavingHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goals, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if goals == nil {
		goals = []*saving.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (h *SavingHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSavingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create saving goal request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, "Invalid startDate format (use YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	params := saving.CreateParams{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		StartDate:    startDate,
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			http.Error(w, "Invalid targetDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.TargetDate = &targetDate
	}

	created, err := h.svc.Create(r.Context(), userID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *SavingHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid saving goal ID", http.StatusBadRequest)
		return
	}

	goal, err := h.svc.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *SavingHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid saving goal ID", http.StatusBadRequest)
		return
	}

	var req UpdateSavingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding update saving goal request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := saving.UpdateParams{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
	}
	if req.Status != nil {
		status := saving.Status(*req.Status)
		params.Status = &status
	}
	if req.TargetDate != nil {
		targetDate, err := time.Parse("2006-01-02", *req.TargetDate)
		if err != nil {
			http.Error(w, "Invalid targetDate format (use YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		params.TargetDate = &targetDate
	}

	updated, err := h.svc.Update(r.Context(), userID, id, params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *SavingHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, "Invalid saving goal ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSavingContributions lists the contribution history for a goal,
// withdrawals included.
func (h *SavingHandler) HandleSavingContributions(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, "Invalid saving goal ID", http.StatusBadRequest)
		return
	}

	contributions, err := h.svc.ListContributions(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	if contributions == nil {
		contributions = []*saving.Contribution{}
	}
	writeJSON(w, http.StatusOK, contributions)
}
