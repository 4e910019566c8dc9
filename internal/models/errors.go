package models

import "errors"

// Error kinds shared by every layer. Wrap them with fmt.Errorf("...: %w", Err...)
// and match with errors.Is; handlers translate them into status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)
