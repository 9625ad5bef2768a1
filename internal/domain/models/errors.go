package models

import "fmt"

// ValidationError reports one invalid field value or one malformed filter
// criterion. It is caller-correctable and never retried.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// RecordFailure describes one raw record rejected during normalization.
// Failures are collected and returned alongside the successes; a bad record
// never aborts the batch unless strict mode is enabled.
type RecordFailure struct {
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (f RecordFailure) Error() string {
	return fmt.Sprintf("record %d: field %s: %s", f.Index, f.Field, f.Reason)
}
