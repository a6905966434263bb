package dto

import (
	"net/http"

	"github.com/ayush-nalawade/CRM-backend/internal/domain/shared"
)

// HTTP-layer error codes for failures that never reach the domain
const (
	// ErrCodeBadRequest is used for malformed requests (bad JSON, bad UUIDs)
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes. The
// codes themselves pass through to the response body unchanged; clients
// dispatch on them, not on the status.
var errorCodeHTTPStatus = map[string]int{
	shared.CodeValidationFailed:     http.StatusBadRequest,
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeAlreadyExists:        http.StatusConflict,
	shared.CodeReferentialViolation: http.StatusUnprocessableEntity,
	shared.CodeNegativeAmount:       http.StatusUnprocessableEntity,
	shared.CodeInvalidState:         http.StatusUnprocessableEntity,
	shared.CodeConsistencyViolation: http.StatusInternalServerError,
	shared.CodeUnauthorized:         http.StatusUnauthorized,

	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeInternal:   http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
