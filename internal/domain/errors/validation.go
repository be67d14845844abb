package errors

import (
	"sort"
	"strings"

	"storerating/internal/errors"
)

// FieldError describes one rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError builds a VALIDATION_FAILED error listing the rejected fields
func NewValidationError(fields ...FieldError) *BaseError {
	sorted := make([]FieldError, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Field < sorted[j].Field
	})

	return ErrValidationFailed.WithDetails(sorted)
}

// ValidationFields extracts field errors from a VALIDATION_FAILED error
func ValidationFields(err error) []FieldError {
	appErr, ok := errors.AsType[*BaseError](err)
	if !ok || appErr.ErrorCode() != ErrValidationFailed.ErrorCode() {
		return nil
	}
	fields, _ := appErr.Details().([]FieldError)

	return fields
}

// FieldNames lists the rejected field names, comma separated
func FieldNames(fields []FieldError) string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}

	return strings.Join(names, ",")
}
