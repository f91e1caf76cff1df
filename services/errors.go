package services

import "errors"

// Error codes carried by ServiceError. Controllers branch on these to decide
// between re-showing a form, redirecting to login, or rendering a 404.
const (
	CodeValidation   = "validation"
	CodeConflict     = "conflict"
	CodeAuth         = "auth"
	CodeUnauthorized = "unauthorized"
	CodeNotFound     = "not_found"
)

// ServiceError is a recoverable, user-facing failure. Anything else escaping
// a service is treated as an internal error.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Code: CodeConflict, Message: message}
}

func NewAuthError(message string) *ServiceError {
	return &ServiceError{Code: CodeAuth, Message: message}
}

func NewUnauthorizedError(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message}
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message}
}

// AsServiceError unwraps err into a ServiceError if one is in the chain.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
