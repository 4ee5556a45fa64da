package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

// ErrorResponse is the error body returned by every endpoint
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, statusCode int, message, details string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message, Details: details})
}

// StatusForError maps domain errors to HTTP status codes. Unrecognized
// errors map to 500; their text is not exposed to the client.
func StatusForError(err error) int {
	var validationErr models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrLineItemNotFound),
		errors.Is(err, models.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrOrderCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
