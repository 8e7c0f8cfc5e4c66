package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation = "ERR_VALIDATION"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeConflict      = "ERR_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"

	// ErrCodeAlreadyPosted is used when a document already carries a ledger entry
	ErrCodeAlreadyPosted = "ERR_ALREADY_POSTED"
	// ErrCodeMissingAccount is used when a semantic account is absent or inactive
	ErrCodeMissingAccount = "ERR_MISSING_ACCOUNT"
	// ErrCodeRollbackNotAllowed is used when the document series forbids rollback
	ErrCodeRollbackNotAllowed = "ERR_ROLLBACK_NOT_ALLOWED"
	// ErrCodePaymentLedgerFailure is used when the payment committed but its
	// ledger posting failed; the response still carries the allocation
	ErrCodePaymentLedgerFailure = "ERR_PAYMENT_LEDGER_FAILURE"
)

// Input error codes
const (
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:         http.StatusUnprocessableEntity,
	ErrCodeAlreadyPosted:        http.StatusConflict,
	ErrCodeMissingAccount:       http.StatusUnprocessableEntity,
	ErrCodeRollbackNotAllowed:   http.StatusUnprocessableEntity,
	ErrCodePaymentLedgerFailure: http.StatusConflict,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// LegacyErrorCodeMapping maps domain error codes to standardized codes
var LegacyErrorCodeMapping = map[string]string{
	"NOT_FOUND":              ErrCodeNotFound,
	"ALREADY_EXISTS":         ErrCodeAlreadyExists,
	"INVALID_INPUT":          ErrCodeInvalidInput,
	"INVALID_STATE":          ErrCodeInvalidState,
	"UNAUTHORIZED":           ErrCodeUnauthorized,
	"FORBIDDEN":              ErrCodeForbidden,
	"BAD_REQUEST":            ErrCodeBadRequest,
	"INTERNAL_ERROR":         ErrCodeInternal,
	"INVALID_COMPANY":        ErrCodeInvalidInput,
	"INVALID_ACTOR":          ErrCodeInvalidInput,
	"INVALID_AMOUNT":         ErrCodeInvalidInput,
	"INVALID_PAYMENT_METHOD": ErrCodeInvalidInput,
	"INVALID_INVOICE":        ErrCodeInvalidInput,
	"INVALID_DOCUMENT_REF":   ErrCodeInvalidInput,
	"INVALID_ENTRY_NUMBER":   ErrCodeInvalidInput,
	"INVALID_ACCOUNT_CODE":   ErrCodeInvalidInput,

	"ACCOUNT_NOT_FOUND":       ErrCodeMissingAccount,
	"INVOICE_NOT_FOUND":       ErrCodeNotFound,
	"ALREADY_POSTED":          ErrCodeAlreadyPosted,
	"ROLLBACK_NOT_ALLOWED":    ErrCodeRollbackNotAllowed,
	"PAYMENT_LEDGER_FAILURE":  ErrCodePaymentLedgerFailure,
	"ENTRY_NUMBER_CONFLICT":   ErrCodeConflict,
	"UNBALANCED_ENTRY":        ErrCodeInternal,
	"PERSISTENCE_FAILURE":     ErrCodeInternal,
	"PAYMENT_PERSIST_FAILURE": ErrCodeInternal,
	"LEDGER_DELETE_FAILURE":   ErrCodeInternal,
	"COMPENSATION_FAILURE":    ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format.
// If the code is already in the new format or unknown, returns it as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := LegacyErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
