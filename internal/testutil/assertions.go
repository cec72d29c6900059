package testutil

import (
	"errors"
	"testing"

	apperrors "budgetplanner/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertAppErrorFields checks the error code and that every named field
// carries a validation message.
func AssertAppErrorFields(t *testing.T, err error, expectedCode string, fields ...string) {
	t.Helper()

	AssertAppError(t, err, expectedCode)
	appErr, _ := apperrors.As(err)
	for _, field := range fields {
		if appErr.Fields[field] == "" {
			t.Errorf("expected a message for field %q, got fields %v", field, appErr.Fields)
		}
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
