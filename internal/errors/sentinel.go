package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a manifest or config validation failure.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a manifest, module, or file was not found.
	ErrNotFound = errors.New("not found")
)
