package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePresent(t *testing.T) {
	s := Schema{"title": String(), "intro": String()}

	if err := ValidatePresent(s, map[string]any{"title": "Scene", "extra": 1}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePresent(s, map[string]any{}); err != nil {
		t.Errorf("missing fields are not required, got %v", err)
	}

	err := ValidatePresent(s, map[string]any{"title": 42, "intro": true})
	if err == nil {
		t.Fatal("expected error")
	}
	var aggr *AggregateError
	if !errors.As(err, &aggr) || len(aggr.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(aggr.Errors[0], &ve) || ve.Key != "intro" {
		t.Errorf("errors are sorted by key, got %v", aggr.Errors[0])
	}
	if !strings.Contains(err.Error(), "2 validation errors") {
		t.Errorf("unexpected message: %s", err)
	}
}

func TestValidatePresent_EmptySchema(t *testing.T) {
	if err := ValidatePresent(nil, map[string]any{"x": 1}); err != nil {
		t.Errorf("nil schema should accept everything, got %v", err)
	}
}

func TestValidationError_String(t *testing.T) {
	e := &ValidationError{Key: "title", Reason: "expected string", Value: 3}
	if got := e.Error(); got != `field "title": expected string (got int)` {
		t.Errorf("Error() = %q", got)
	}
	e = &ValidationError{Key: "title", Reason: "required"}
	if got := e.Error(); got != `field "title": required` {
		t.Errorf("Error() = %q", got)
	}
}
