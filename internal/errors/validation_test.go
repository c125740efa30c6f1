package errors

import (
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("metadata.options", "must have exactly one correct option", 2)

	if err.Field != "metadata.options" {
		t.Errorf("Expected field to be 'metadata.options', got '%s'", err.Field)
	}

	if err.Message != "must have exactly one correct option" {
		t.Errorf("Expected message to be 'must have exactly one correct option', got '%s'", err.Message)
	}

	if err.Value != 2 {
		t.Errorf("Expected value to be 2, got '%v'", err.Value)
	}

	expected := "validation error on field 'metadata.options': must have exactly one correct option"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("passage", "cannot be empty", nil))
	expected := "validation failed: passage cannot be empty"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("blanks", "must have at least 1 blank", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("type", "must be a supported question type", "question_type", "MULTI_SELECT")

	if err.Rule != "question_type" {
		t.Errorf("Expected rule to be 'question_type', got '%s'", err.Rule)
	}

	if err.Field != "type" {
		t.Errorf("Expected field to be 'type', got '%s'", err.Field)
	}
}
