package models

import "errors"

var (
	// ErrInvalidInput means no usable content source was supplied.
	ErrInvalidInput = errors.New("invalid input")
	// ErrFetchFailure means page content could not be retrieved or parsed.
	ErrFetchFailure = errors.New("fetch failure")
	// ErrTypeMismatch means a comment analyzer returned a shape that cannot be normalized.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ErrorType maps an error to the error_type string used in logs and output.
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrFetchFailure):
		return "fetch_error"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	default:
		return "unknown_error"
	}
}
