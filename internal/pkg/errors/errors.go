package errors

import "errors"

// Common application errors. Services wrap these with fmt.Errorf("%w: detail", ...)
// and handlers translate them into HTTP statuses in one place.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned when credentials are missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned when input data fails validation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned when an operation collides with existing data,
	// for example a taken username.
	ErrConflict = errors.New("resource state conflict")

	// ErrUpstream is returned when an external provider call fails.
	ErrUpstream = errors.New("upstream provider error")
)
