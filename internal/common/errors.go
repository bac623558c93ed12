package common

import "errors"

// Sentinel errors for the failure categories handlers translate to HTTP
// status codes. Services wrap these with fmt.Errorf("...: %w", ...).
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")
)
