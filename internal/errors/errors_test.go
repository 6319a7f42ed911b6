package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppError_ErrorAndReason(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := CheckerUnavailable("Grammar checking failed", cause)

	if err.Code != ErrCodeCheckerUnavailable {
		t.Errorf("Expected code %s, got %s", ErrCodeCheckerUnavailable, err.Code)
	}
	if got := err.Error(); got != "CHECKER_UNAVAILABLE: Grammar checking failed (caused by: connection refused)" {
		t.Errorf("Unexpected Error(): %q", got)
	}
	if got := err.Reason(); got != "Grammar checking failed: connection refused" {
		t.Errorf("Unexpected Reason(): %q", got)
	}
	if !stderrors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the cause")
	}
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	inner := InvalidInput("Please provide text to analyze", nil)
	wrapped := fmt.Errorf("analyze: %w", inner)

	if !IsCode(wrapped, ErrCodeInvalidInput) {
		t.Error("Expected wrapped error to match INVALID_INPUT")
	}
	if IsCode(wrapped, ErrCodeAnalysisError) {
		t.Error("Did not expect wrapped error to match ANALYSIS_ERROR")
	}
	if IsCode(stderrors.New("plain"), ErrCodeInvalidInput) {
		t.Error("Plain errors carry no code")
	}
}

func TestWithOperation(t *testing.T) {
	err := AnalysisError("Analysis failed", nil).WithOperation("analyze").WithDetails("panic")
	if err.Operation != "analyze" || err.Details != "panic" {
		t.Errorf("Unexpected operation/details: %q %q", err.Operation, err.Details)
	}
	if err.Reason() != "Analysis failed" {
		t.Errorf("Unexpected reason %q", err.Reason())
	}
}
