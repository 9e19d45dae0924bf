package domain

import "errors"

var (
	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")
	ErrInvalidState  = errors.New("entry is not in a state that allows this operation")

	// Calculation errors
	ErrInvalidDateRange = errors.New("to date precedes from date")
	ErrValidation       = errors.New("validation failed")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")
)
