package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ClaudioCeppi83/gastro-app/internal/models"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", models.ValidationError{Field: "name", Message: "required"}, http.StatusBadRequest},
		{"wrapped validation error", fmt.Errorf("validate: %w", models.ValidationError{Field: "name", Message: "required"}), http.StatusBadRequest},
		{"order not found", models.ErrOrderNotFound, http.StatusNotFound},
		{"line item not found", fmt.Errorf("remove item: %w", models.ErrLineItemNotFound), http.StatusNotFound},
		{"category not found", models.ErrCategoryNotFound, http.StatusNotFound},
		{"order completed", models.ErrOrderCompleted, http.StatusConflict},
		{"unknown error", fmt.Errorf("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusForError(tt.err); got != tt.want {
				t.Errorf("StatusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusBadRequest, "Invalid order ID", "")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s, want application/json", ct)
	}

	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "Invalid order ID" {
		t.Errorf("error = %q, want %q", body.Error, "Invalid order ID")
	}
	if body.Details != "" {
		t.Errorf("details = %q, want empty", body.Details)
	}
}
