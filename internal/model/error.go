package model

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned by lookups for an identifier with no
// backing row.
var ErrProductNotFound = errors.New("product not found")

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeValidation      = "DATA_VALIDATION_ERROR"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DataValidationError is the single caller-facing error kind for this layer.
// It covers missing required fields, wrong types, unknown category names,
// update-without-identity, and store rejections surfaced by the lifecycle
// operations. The message names the offending field or condition.
type DataValidationError struct {
	Message string
}

func (e *DataValidationError) Error() string {
	return e.Message
}

// NewDataValidationError creates a DataValidationError with a formatted
// message.
func NewDataValidationError(format string, args ...any) *DataValidationError {
	return &DataValidationError{Message: fmt.Sprintf(format, args...)}
}

// PriceFilterError carries the raw decimal conversion error for an
// unparseable price filter string. It stays distinct from
// DataValidationError: the conversion failure is surfaced with its own
// message, not normalised into the validation contract.
type PriceFilterError struct {
	Err error
}

func (e *PriceFilterError) Error() string {
	return e.Err.Error()
}

func (e *PriceFilterError) Unwrap() error {
	return e.Err
}
