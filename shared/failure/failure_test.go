package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"medreg/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"BadRequestFromString", failure.BadRequestFromString("bad"), http.StatusBadRequest},
		{"Unauthorized", failure.Unauthorized("no"), http.StatusUnauthorized},
		{"NotFound", failure.NotFound("registration not found"), http.StatusNotFound},
		{"Conflict", failure.Conflict("taken"), http.StatusConflict},
		{"Unavailable", failure.Unavailable("busy"), http.StatusServiceUnavailable},
		{"Forbidden", failure.Forbidden("nope"), http.StatusForbidden},
		{"InternalError", failure.InternalError(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}

func TestGetCode_WrappedAndUnknown(t *testing.T) {
	wrapped := fmt.Errorf("create registration: %w", failure.Conflict("duplicate"))
	if got := failure.GetCode(wrapped); got != http.StatusConflict {
		t.Errorf("expected wrapped failure code %d, got %d", http.StatusConflict, got)
	}

	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected unknown error to map to 500, got %d", got)
	}
}

func TestIsTransient(t *testing.T) {
	if !failure.IsTransient(failure.Unavailable("busy")) {
		t.Error("expected Unavailable to be transient")
	}

	if failure.IsTransient(failure.Conflict("duplicate")) {
		t.Error("expected Conflict to be permanent")
	}
}
