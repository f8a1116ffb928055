package shared

import "errors"

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

// Common domain errors. The resolution pipeline distinguishes five classes:
// validation failures fail fast before any lookup, not-found triggers the next
// fallback source, transient failures are retried then demoted to not-found,
// persistence failures are logged and absorbed, narrative failures are captured
// per category.
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidBBL        = NewDomainError("INVALID_BBL", "BBL must be 10 digits with borough 1-5")
	ErrInvalidAddress    = NewDomainError("INVALID_ADDRESS", "Address is empty or malformed")
	ErrRateLimited       = NewDomainError("RATE_LIMITED", "Source rejected the request due to rate limiting")
	ErrSourceUnavailable = NewDomainError("SOURCE_UNAVAILABLE", "Source returned a server-side error")
	ErrTimeout           = NewDomainError("TIMEOUT", "Source did not respond within the call deadline")
	ErrPersistence       = NewDomainError("PERSISTENCE", "Checkpoint write to the metrics store failed")
	ErrNarrative         = NewDomainError("NARRATIVE", "Narrative generation failed")
)

// IsNotFound reports whether err is a not-found miss from a source.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation reports whether err is a validation failure. Validation errors
// are the only class that crosses the orchestrator boundary.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidBBL) || errors.Is(err, ErrInvalidAddress)
}

// IsTransient reports whether err is worth retrying: rate limiting,
// server-side failures and call timeouts. Not-found and validation responses
// are immediate, non-retried misses.
func IsTransient(err error) bool {
	return errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrSourceUnavailable) ||
		errors.Is(err, ErrTimeout)
}
