package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"fintrack/internal/domain/shared"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain error codes to HTTP statuses. Anything that is
// not a domain error is logged and reported as a generic 500 so internal
// details never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	switch shared.CodeOf(err) {
	case shared.CodeInvalidArgument:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case shared.CodeNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case shared.CodeAlreadyExists:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pathID parses the {id} path segment as an int64 entity id.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
