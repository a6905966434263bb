package shared

import "errors"

// Error codes used across the domain. The HTTP layer maps these to status
// codes; the codes themselves are part of the API contract.
const (
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeAlreadyExists        = "ALREADY_EXISTS"
	CodeReferentialViolation = "REFERENTIAL_VIOLATION"
	CodeNegativeAmount       = "NEGATIVE_AMOUNT"
	CodeConsistencyViolation = "CONSISTENCY_VIOLATION"
	CodeInvalidState         = "INVALID_STATE"
	CodeUnauthorized         = "UNAUTHORIZED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying the offending field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewNotFoundError creates a not-found error carrying the field that named
// the missing entity
func NewNotFoundError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeNotFound,
		Message: message,
		Field:   field,
	}
}

// NewReferentialError creates an error for a violated cross-entity relationship
func NewReferentialError(field, message string) *DomainError {
	return &DomainError{
		Code:    CodeReferentialViolation,
		Message: message,
		Field:   field,
	}
}

// NewNegativeAmountError creates an error for a derived amount that would go negative
func NewNegativeAmountError(message string) *DomainError {
	return NewDomainError(CodeNegativeAmount, message)
}

// NewConsistencyError creates an error for an invariant that failed after a write.
// These indicate bugs, not user errors, and are logged at high severity.
func NewConsistencyError(message string) *DomainError {
	return NewDomainError(CodeConsistencyViolation, message)
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}

// HasCode reports whether err is a DomainError carrying the given code
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
)
