package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNotFound, "not_found"},
		{KindCreationFailed, "creation_failed"},
		{KindUpdateFailed, "update_failed"},
		{KindDeletionFailed, "deletion_failed"},
		{KindValidationFailed, "validation_failed"},
		{KindUnauthorized, "unauthorized"},
		{KindForbidden, "forbidden"},
		{KindBadRequest, "bad_request"},
		{KindConflict, "conflict"},
		{KindServerError, "server_error"},
		{KindServiceUnavailable, "service_unavailable"},
		{KindGeneral, "general"},
		{Kind(999), "general"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			if got := test.kind.String(); got != test.expected {
				t.Errorf("expected %s, got %s", test.expected, got)
			}
		})
	}
}

func TestKind_Status(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindNotFound, 404},
		{KindCreationFailed, 500},
		{KindUpdateFailed, 500},
		{KindDeletionFailed, 500},
		{KindValidationFailed, 422},
		{KindUnauthorized, 401},
		{KindForbidden, 403},
		{KindBadRequest, 400},
		{KindConflict, 409},
		{KindServerError, 500},
		{KindServiceUnavailable, 503},
		{KindGeneral, 500},
	}

	for _, test := range tests {
		t.Run(test.kind.String(), func(t *testing.T) {
			if got := test.kind.Status(); got != test.expected {
				t.Errorf("expected %d, got %d", test.expected, got)
			}
		})
	}
}

func TestNew_DefaultsEmptyCode(t *testing.T) {
	err := New(KindGeneral, "boom", "", 500, nil)
	if err.Code() != CodeGeneral {
		t.Errorf("expected code %q, got %q", CodeGeneral, err.Code())
	}
}

func TestNew_ClonesContext(t *testing.T) {
	ctx := map[string]any{"entity_id": int64(7)}
	err := New(KindNotFound, "missing", "admin.not_found", 404, ctx)

	// Mutating the caller's map must not affect the error.
	ctx["entity_id"] = int64(99)
	if got := err.Context()["entity_id"]; got != int64(7) {
		t.Errorf("expected context to be cloned at construction, got %v", got)
	}
}

func TestDomainError_ContextIsDefensiveCopy(t *testing.T) {
	err := New(KindNotFound, "missing", "admin.not_found", 404, map[string]any{"entity_id": int64(7)})

	first := err.Context()
	first["entity_id"] = int64(123)

	second := err.Context()
	if second["entity_id"] != int64(7) {
		t.Errorf("context copy leaked internal state: %v", second["entity_id"])
	}
}

func TestDomainError_AddContext(t *testing.T) {
	err := New(KindServerError, "boom", "server.error", 500, map[string]any{"a": 1, "b": 2})
	err.AddContext(map[string]any{"b": 20, "c": 3})

	got := err.Context()
	if got["a"] != 1 || got["b"] != 20 || got["c"] != 3 {
		t.Errorf("unexpected merged context: %v", got)
	}
}

func TestDomainError_AddContextOnEmpty(t *testing.T) {
	err := New(KindServerError, "boom", "server.error", 500, nil)
	err.AddContext(map[string]any{"error": "db down"})

	if err.Context()["error"] != "db down" {
		t.Errorf("expected context to be created on first merge")
	}
}

func TestAsDomainError(t *testing.T) {
	de := NotFound("Admin", 5)
	wrapped := fmt.Errorf("handling request: %w", de)

	got, ok := AsDomainError(wrapped)
	if !ok {
		t.Fatal("expected DomainError in chain")
	}
	if got.Code() != "admin.not_found" {
		t.Errorf("expected admin.not_found, got %s", got.Code())
	}

	if _, ok := AsDomainError(stderrors.New("plain")); ok {
		t.Error("expected no DomainError in plain error")
	}
}
