package dto

import (
	"net/http"
	"strings"
)

// Error codes raised by the HTTP layer itself. Domain errors keep the code
// they were created with.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
)

// Domain error codes with a status other than the prefix defaults
const (
	ErrCodeAlreadyExists       = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	ErrCodeInvalidState        = "INVALID_STATE"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeGone                = "GONE"
	ErrCodeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrCodeTenantRequired      = "TENANT_REQUIRED"
	ErrCodeTenantSuspended     = "TENANT_SUSPENDED"
	ErrCodeAccountLocked       = "ACCOUNT_LOCKED"
	ErrCodeAccountPending      = "ACCOUNT_PENDING"
	ErrCodeAccountDeactivated  = "ACCOUNT_DEACTIVATED"
	ErrCodePDFUnavailable      = "PDF_UNAVAILABLE"
	ErrCodeShortCodeExhausted  = "SHORT_CODE_EXHAUSTED"
	ErrCodePasswordHash        = "PASSWORD_HASH_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodePasswordHash:    http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeTenantRequired:  http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Auth
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeTenantSuspended:    http.StatusForbidden,
	ErrCodeAccountPending:     http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeAccountLocked:      http.StatusLocked,

	// Resources
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeGone:                http.StatusGone,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeInvalidState:        http.StatusUnprocessableEntity,

	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodePDFUnavailable:     http.StatusServiceUnavailable,
	ErrCodeShortCodeExhausted: http.StatusServiceUnavailable,
	ErrCodeUnavailable:        http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code. Codes not in
// ErrorCodeHTTPStatus fall back on their prefix: TOKEN_* is 401, INVALID_*
// is 400 and any other business rule is 422.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case code == "":
		return http.StatusInternalServerError
	case strings.HasPrefix(code, "TOKEN_"):
		return http.StatusUnauthorized
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}
