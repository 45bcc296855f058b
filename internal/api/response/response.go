package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adfinis/poweradmin-api/internal/core"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is the body of every non-2xx answer. Field names the
// offending request field for validation failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteFieldError writes a 400 naming the invalid field.
func WriteFieldError(w http.ResponseWriter, field, message string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Field: field})
}

// WriteServiceError maps core errors to HTTP statuses. It reports whether
// the error was unexpected (500) so callers can log it.
func WriteServiceError(w http.ResponseWriter, err error) bool {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteFieldError(w, verr.Field, verr.Message)
	case errors.Is(err, core.ErrPermissionDenied):
		WriteError(w, http.StatusForbidden, core.ErrPermissionDenied.Error())
	case errors.Is(err, core.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	default:
		WriteError(w, http.StatusInternalServerError, "internal server error")
		return true
	}
	return false
}

// PaginatedResponse wraps a list with pagination metadata.
type PaginatedResponse struct {
	Items      any    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// WritePaginated writes a paginated JSON response.
func WritePaginated(w http.ResponseWriter, status int, items any, nextCursor string, hasMore bool) {
	WriteJSON(w, status, PaginatedResponse{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	})
}
