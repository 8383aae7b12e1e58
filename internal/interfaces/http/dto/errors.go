package dto

import "net/http"

// API error codes returned by the interface layer itself
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeMissingTenant = "MISSING_TENANT"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain and API error codes to HTTP statuses.
// Validation failures are 400, missing resources 404, write conflicts 409
// and business rule violations 422.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeMissingTenant: http.StatusBadRequest,
	ErrCodeInternal:      http.StatusInternalServerError,

	"INVALID_INPUT":     http.StatusBadRequest,
	"INVALID_NAME":      http.StatusBadRequest,
	"INVALID_PRICE":     http.StatusBadRequest,
	"INVALID_PRODUCT":   http.StatusBadRequest,
	"INVALID_QUANTITY":  http.StatusBadRequest,
	"INVALID_DISCOUNT":  http.StatusBadRequest,
	"INVALID_WAREHOUSE": http.StatusBadRequest,

	"NOT_FOUND": http.StatusNotFound,

	"ALREADY_EXISTS":         http.StatusConflict,
	"ALREADY_ASSIGNED":       http.StatusConflict,
	"CONCURRENCY_CONFLICT":   http.StatusConflict,
	"OPTIMISTIC_LOCK_FAILED": http.StatusConflict,
	"DUPLICATE_ORDER_NUMBER": http.StatusConflict,
	"DUPLICATE_REQUEST":      http.StatusConflict,

	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"STOCK_RECORD_MISSING": http.StatusUnprocessableEntity,
	"PARTIAL_ADJUSTMENT":   http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"EMPTY_ORDER":          http.StatusUnprocessableEntity,
	"RECORD_NOT_EMPTY":     http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code. Unknown codes
// map to 500 so nothing leaks through as a silent success.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
