package http

import (
	"encoding/json"
	"log"
	"net/http"

	"fintrack/internal/domain/archive"
	"fintrack/internal/shared/middleware"
)

// ArchiveHandler exposes the period-closing lifecycle. Closing a month
// freezes its totals into an archive row and books the positive balance
// as a carryover transaction in the following month.
type ArchiveHandler struct {
	closer *archive.Closer
}

func NewArchiveHandler(closer *archive.Closer) *ArchiveHandler {
	return &ArchiveHandler{closer: closer}
}

type CloseMonthRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// HandleArchives routes collection requests based on method.
func (h *ArchiveHandler) HandleArchives(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleClose(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ArchiveHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	archives, err := h.closer.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if archives == nil {
		archives = []*archive.Archive{}
	}
	writeJSON(w, http.StatusOK, archives)
}

func (h *ArchiveHandler) handleClose(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CloseMonthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding close month request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	arch, err := h.closer.CloseMonth(r.Context(), userID, req.Month, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, arch)
}

// HandleArchiveByID handles deletion of a closed month. Deleting the
// archive also removes its carryover transaction, reopening the month.
func (h *ArchiveHandler) HandleArchiveByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
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
		http.Error(w, "Invalid archive ID", http.StatusBadRequest)
		return
	}

	if err := h.closer.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRegenerate recomputes the archive's totals from the current
// ledger and reconciles the carryover transaction in place.
func (h *ArchiveHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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
		http.Error(w, "Invalid archive ID", http.StatusBadRequest)
		return
	}

	arch, err := h.closer.Regenerate(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, arch)
}
