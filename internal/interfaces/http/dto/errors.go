package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationRange    = "ERR_VALIDATION_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a route or resource does not exist
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeUnknownKind is used when an export names a record kind that does not exist
	ErrCodeUnknownKind = "ERR_UNKNOWN_KIND"
)

// Input error codes
const (
	ErrCodeBadRequest    = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput  = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON   = "ERR_INVALID_JSON"
	ErrCodeInvalidStatus = "ERR_INVALID_STATUS"
	ErrCodeTooLarge      = "ERR_REQUEST_TOO_LARGE"
)

// Dependency error codes
const (
	// ErrCodeUpstream is used when the order-delivery API fails where no fallback exists
	ErrCodeUpstream = "ERR_UPSTREAM_UNAVAILABLE"
	// ErrCodeStorage is used when an export cannot be stored
	ErrCodeStorage = "ERR_STORAGE_FAILURE"
	// ErrCodeStorageDisabled is used when no export storage is configured
	ErrCodeStorageDisabled = "ERR_STORAGE_DISABLED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	ErrCodeNotFound:    http.StatusNotFound,
	ErrCodeUnknownKind: http.StatusNotFound,

	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,
	ErrCodeInvalidStatus: http.StatusBadRequest,
	ErrCodeTooLarge:      http.StatusRequestEntityTooLarge,

	ErrCodeUpstream:        http.StatusBadGateway,
	ErrCodeStorage:         http.StatusBadGateway,
	ErrCodeStorageDisabled: http.StatusServiceUnavailable,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATUS":       ErrCodeInvalidStatus,
	"UNKNOWN_KIND":         ErrCodeUnknownKind,
	"UPSTREAM_UNAVAILABLE": ErrCodeUpstream,
	"STORAGE_FAILURE":      ErrCodeStorage,
	"STORAGE_DISABLED":     ErrCodeStorageDisabled,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
