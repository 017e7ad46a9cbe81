package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUserNotFound is returned when a lookup or mutation targets a user that does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when password verification fails or a token no longer maps to a user.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenExpired is returned when a session token is past its expiration.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed is returned when a token's signature or structure is invalid.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrNoLookupKey is returned when a polymorphic lookup is issued without a discriminator.
	ErrNoLookupKey = errors.New("no lookup key provided")
)

// StoreCodeDuplicateEntry is the canonical code for a unique-constraint violation.
// It matches the MySQL ER_DUP_ENTRY number so normalized native errors keep their code.
const StoreCodeDuplicateEntry = "1062"

// StoreError is the canonical {code, detail} shape every raw store error is
// normalized into before any other layer inspects it. Test doubles return this
// type directly; native driver errors are converted by NormalizeStoreError.
type StoreError struct {
	Code   string
	Detail string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error %s: %s", e.Code, e.Detail)
}

// NormalizeStoreError reduces a raw store error to the canonical StoreError
// shape. Already-normalized errors pass through unchanged, native MySQL driver
// errors carry their number and message over, and anything else keeps an empty
// code with the error text as detail.
func NormalizeStoreError(err error) *StoreError {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return &StoreError{
			Code:   fmt.Sprintf("%d", mysqlErr.Number),
			Detail: mysqlErr.Message,
		}
	}

	return &StoreError{Detail: err.Error()}
}

// ConflictError reports a unique-constraint violation tagged with the
// offending column so callers can produce a field-specific response.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s is already taken", e.Field)
}

// TranslateStoreError normalizes err and converts duplicate-key violations
// into a ConflictError. Every other store failure is surfaced as the
// normalized StoreError.
func TranslateStoreError(err error) error {
	storeErr := NormalizeStoreError(err)
	if storeErr == nil {
		return nil
	}
	if storeErr.Code != StoreCodeDuplicateEntry {
		return storeErr
	}
	return &ConflictError{Field: conflictField(storeErr.Detail)}
}

// conflictField extracts the colliding column from a duplicate-entry detail
// string such as "Duplicate entry 'alice' for key 'users.idx_users_username'".
func conflictField(detail string) string {
	lower := strings.ToLower(detail)
	for _, field := range []string{"username", "user_id", "email"} {
		if strings.Contains(lower, field) {
			return field
		}
	}
	return "unknown"
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Field      string
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
		Field: e.Field,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		httpErr := NewHTTPError(http.StatusConflict, conflict.Error(), "CONFLICT")
		httpErr.Field = conflict.Field
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrTokenMalformed):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_MALFORMED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
