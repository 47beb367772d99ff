package shared

import "errors"

// Error codes shared across domains. Handlers map them to HTTP status
// codes at the interface layer.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeInternal        = "INTERNAL"
)

// DomainError is a business rule violation carrying a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func InvalidArgument(msg string) error {
	return &DomainError{Code: CodeInvalidArgument, Message: msg}
}

func NotFound(msg string) error {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func AlreadyExists(msg string) error {
	return &DomainError{Code: CodeAlreadyExists, Message: msg}
}

func Internal(msg string) error {
	return &DomainError{Code: CodeInternal, Message: msg}
}

// CodeOf returns the domain error code, or CodeInternal for any other
// error.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
