package shared

import "strings"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

// ValidationError is a domain error carrying the full list of problems found
// during a validation pass. Callers render every problem at once instead of
// only the first one.
type ValidationError struct {
	Code     string   `json:"code"`
	Problems []string `json:"problems"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// NewValidationError creates a validation error from a list of problems
func NewValidationError(code string, problems []string) *ValidationError {
	return &ValidationError{
		Code:     code,
		Problems: problems,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
)
