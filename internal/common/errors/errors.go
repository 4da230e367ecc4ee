// Package errors provides standardized error handling for the analysis pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeStoreScanFailed ErrorCode = "STORE_SCAN_FAILED"

	ErrCodeLanguageDetectFailed ErrorCode = "LANGUAGE_DETECT_FAILED"
	ErrCodeTranslationFailed    ErrorCode = "TRANSLATION_FAILED"
	ErrCodeModelInvokeFailed    ErrorCode = "MODEL_INVOKE_FAILED"
	ErrCodeModelParseFailed     ErrorCode = "MODEL_PARSE_FAILED"
	ErrCodeSummaryFailed        ErrorCode = "SUMMARY_FAILED"

	ErrCodeUnexpected ErrorCode = "UNEXPECTED_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable input validation error.
// It surfaces as a 400 before any external call is made.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Provide either reviewText or shopName",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreScanFailedError creates a retryable record-store scan error.
// Store failures are fatal to the request; there is no partial-result
// fallback for them.
func NewStoreScanFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreScanFailed,
		Message:   "Record store scan failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewLanguageDetectFailedError marks a detection degradation. The caller
// recovers with the "en" default; this error is logged, never surfaced.
func NewLanguageDetectFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLanguageDetectFailed,
		Message:   "Language detection failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewTranslationFailedError marks a translation degradation. The chain falls
// through to its next stage or returns the original text.
func NewTranslationFailedError(stage string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTranslationFailed,
		Message:   "Translation stage failed",
		Details:   fmt.Sprintf("stage: %s, error: %s", stage, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelInvokeFailedError creates a retryable model inference error.
func NewModelInvokeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelInvokeFailed,
		Message:   "Model inference call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelParseFailedError marks a malformed model response. Treated as a
// degradation: callers recover with empty score arrays or default verdicts.
func NewModelParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelParseFailed,
		Message:   "Model response could not be parsed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSummaryFailedError marks a qualitative-summary degradation. The numeric
// aggregate is computed and returned independently.
func NewSummaryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSummaryFailed,
		Message:   "Review summary generation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnexpectedError wraps anything uncaught; surfaces as a 500.
func NewUnexpectedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpected,
		Message:   "Analysis failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	case strings.Contains(codeStr, "STORE"):
		return "STORE"
	case strings.Contains(codeStr, "LANGUAGE") || strings.Contains(codeStr, "TRANSLATION"):
		return "LANGUAGE"
	case strings.Contains(codeStr, "MODEL") || strings.Contains(codeStr, "SUMMARY"):
		return "AI"
	default:
		return "OTHER"
	}
}
