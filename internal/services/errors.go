package services

import "errors"

// Service-level error taxonomy. Handlers map these onto HTTP statuses:
// ErrValidation to 400, ErrNotFound to 404, ErrForbidden to 403.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)
