package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when required input is missing or malformed.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is returned when an identity already exists.
	ErrConflict = errors.New("email already registered")
	// ErrAuth is returned when email or password is incorrect.
	ErrAuth = errors.New("invalid email or password")
	// ErrUnavailable is returned when a model dependency failed to load at startup.
	ErrUnavailable = errors.New("model not available")
	// ErrEncoding is returned when a category is outside an encoder's vocabulary.
	ErrEncoding = errors.New("unknown category")
)

// FieldError ties a failure to a single request field.
type FieldError struct {
	Field  string
	Reason string
	kind   error
}

func (e *FieldError) Error() string {
	return e.Reason + ": " + e.Field
}

// Unwrap exposes the sentinel so errors.Is works on the taxonomy.
func (e *FieldError) Unwrap() error {
	return e.kind
}

// Missing reports an absent required field.
func Missing(field string) error {
	return &FieldError{Field: field, Reason: "missing input field", kind: ErrValidation}
}

// Invalid reports a present but unusable field value.
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, kind: ErrValidation}
}

// UnknownCategory reports a value the named encoder has never seen.
func UnknownCategory(field, value string) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf("unknown %s %q", field, value), kind: ErrEncoding}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Errors outside the
// taxonomy get the fallback status, which differs per endpoint.
func MapErrorToHTTP(err error, fallback int) *HTTPError {
	var fe *FieldError
	switch {
	case errors.As(err, &fe) && errors.Is(err, ErrEncoding):
		return NewHTTPError(http.StatusBadRequest, fe.Reason, "UNKNOWN_CATEGORY")
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusBadRequest, ErrConflict.Error(), "EMAIL_ALREADY_REGISTERED")
	case errors.Is(err, ErrAuth):
		return NewHTTPError(http.StatusUnauthorized, ErrAuth.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnavailable):
		return NewHTTPError(http.StatusInternalServerError, ErrUnavailable.Error(), "MODEL_UNAVAILABLE")
	case errors.Is(err, ErrEncoding):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_CATEGORY")
	}
	if fallback == 0 {
		fallback = http.StatusInternalServerError
	}
	if fallback >= http.StatusInternalServerError {
		return NewHTTPError(fallback, "internal server error", "INTERNAL_ERROR")
	}
	return NewHTTPError(fallback, err.Error(), "REQUEST_FAILED")
}
