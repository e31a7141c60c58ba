package dto

import (
	"net/http"
	"strings"
)

// Error codes surfaced by the API. Domain errors carry the same codes, so
// handlers pass them through untouched.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeUnauthorized is used when tenant identification is missing or invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeConcurrencyConflict is used when locking fails
	ErrCodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeInsufficientStock is used when an outbound movement exceeds on-hand stock
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	// ErrCodeOverPayment is used when payments would exceed the document total
	ErrCodeOverPayment = "OVER_PAYMENT"
	// ErrCodeStockNotTracked is used when a stock operation targets an untracked product
	ErrCodeStockNotTracked = "STOCK_NOT_TRACKED"
	// ErrCodeInvalidRole is used when a party lacks the role an operation requires
	ErrCodeInvalidRole = "INVALID_ROLE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeInsufficientStock: http.StatusUnprocessableEntity,
	ErrCodeOverPayment:       http.StatusUnprocessableEntity,
	ErrCodeStockNotTracked:   http.StatusUnprocessableEntity,
	ErrCodeInvalidRole:       http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Domain validation codes follow the INVALID_<FIELD> convention and map to
// 400 Bad Request; anything unknown maps to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
