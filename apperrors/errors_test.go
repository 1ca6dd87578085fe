package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidation("title", "required"), http.StatusUnprocessableEntity},
		{"invalid state", NewInvalidState("status", "archived", []string{"pending"}), http.StatusUnprocessableEntity},
		{"not found", NewNotFound("task", 7), http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", NewNotFound("task", 7)), http.StatusNotFound},
		{"conflict", NewConflict("priority %d in use", 1), http.StatusConflict},
		{"other", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidationError_Add(t *testing.T) {
	err := NewValidation("title", "too short")
	err.Add("title", "too plain").Add("priority_id", "missing")

	if !err.HasErrors() {
		t.Fatal("expected errors")
	}
	if got := len(err.Fields["title"]); got != 2 {
		t.Errorf("title messages = %d, want 2", got)
	}
	if got := err.Fields["priority_id"]; len(got) != 1 || got[0] != "missing" {
		t.Errorf("priority_id messages = %v", got)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("x: %w", NewNotFound("tag", 3))) {
		t.Error("expected wrapped NotFoundError to match")
	}
	if IsNotFound(errors.New("nope")) {
		t.Error("plain error should not match")
	}
}
