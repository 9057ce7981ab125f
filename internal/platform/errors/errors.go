package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("not found")
	ErrStoreNotReady        = errors.New("store not loaded")
	ErrTooFewItems          = errors.New("too few items to compare")
	ErrConfirmationRequired = errors.New("confirmation required")
)
