package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("trait", "T001")
	if got := err.Error(); got != "trait not found: T001" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError doesn't unwrap to ErrNotFound")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation("cost-total", "must be non-negative")
	if got := err.Error(); got != "validation failed for cost-total: must be non-negative" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ValidationError doesn't unwrap to ErrInvalidInput")
	}
}

func TestIOErrorKeepsCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewIO("write", "/tmp/catalog", cause)
	if !errors.Is(err, cause) {
		t.Error("IOError doesn't unwrap to its cause")
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("YAML", "traits/T001.yaml", "bad indent")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ParseError doesn't unwrap to ErrInvalidInput")
	}
}
