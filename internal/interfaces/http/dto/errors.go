package dto

import "net/http"

// Generic error codes used directly by the HTTP layer
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeNotFound   = "NOT_FOUND"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Unknown codes fall back to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Missing resources
	ErrCodeNotFound:         http.StatusNotFound,
	"SESSION_NOT_FOUND":     http.StatusNotFound,
	"TRANSACTION_NOT_FOUND": http.StatusNotFound,
	"SOURCE_NOT_FOUND":      http.StatusNotFound,
	"LINE_NOT_FOUND":        http.StatusNotFound,
	"LINK_NOT_FOUND":        http.StatusNotFound,
	"PAYMENT_NOT_FOUND":     http.StatusNotFound,

	// Malformed input
	"UNKNOWN_KIND":        http.StatusBadRequest,
	"INVALID_KIND":        http.StatusBadRequest,
	"INVALID_SOURCE_TYPE": http.StatusBadRequest,
	"INVALID_SOURCE":      http.StatusBadRequest,
	"INVALID_SOURCE_LINE": http.StatusBadRequest,
	"INVALID_NUMBER":      http.StatusBadRequest,
	"INVALID_BRANCH":      http.StatusBadRequest,
	"INVALID_SITUATION":   http.StatusBadRequest,
	"INVALID_WAREHOUSE":   http.StatusBadRequest,

	// Business rule violations
	"INVALID_STATE":           http.StatusUnprocessableEntity,
	"INVALID_QUANTITY":        http.StatusUnprocessableEntity,
	"INVALID_DISCOUNT":        http.StatusUnprocessableEntity,
	"INVALID_EXCHANGE_LINE":   http.StatusUnprocessableEntity,
	"INVALID_PAYMENT":         http.StatusUnprocessableEntity,
	"INVALID_SHIPPING":        http.StatusUnprocessableEntity,
	"QUANTITY_EXCEEDS_SOURCE": http.StatusUnprocessableEntity,
	"LINE_NOT_IN_SOURCE":      http.StatusUnprocessableEntity,
	"SELECTION_READ_ONLY":     http.StatusUnprocessableEntity,
	"DUPLICATE_SELECTION":     http.StatusUnprocessableEntity,
	"INCOMPLETE_TRANSACTION":  http.StatusUnprocessableEntity,

	// Conflicts
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Upstream collaborator failures
	"SOURCE_FETCH_FAILED":   http.StatusBadGateway,
	"VOUCHER_UPLOAD_FAILED": http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for a domain error code,
// defaulting to 500 Internal Server Error
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
