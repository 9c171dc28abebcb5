package types

import (
	"errors"
	"fmt"
)

// Error type identifiers, grouped by taxonomy. These travel in the "type"
// field of the JSON error envelope and drive client-side handling.
const (
	ErrAuthMalformed = "auth.malformed"
	ErrAuthInvalid   = "auth.invalid"
	ErrAuthExpired   = "auth.expired"
	ErrAuthUnknown   = "auth.unknown"

	ErrOwnershipNotFound  = "ownership.notfound"
	ErrOwnershipForbidden = "ownership.forbidden"
	ErrOwnershipMismatch  = "ownership.mismatch"

	ErrValidationTooLarge = "validation.toolarge"
	ErrValidationBadInput = "validation.badinput"

	ErrUpstreamTimeout   = "upstream.timeout"
	ErrUpstreamStatus    = "upstream.status"
	ErrUpstreamTransport = "upstream.transport"

	ErrStorageUnavailable = "storage.unavailable"
)

// CustomError carries an HTTP status code and a dotted error type from the
// service layer up to the top-level fiber error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// NewError creates a CustomError with the given status code, message and type.
func NewError(code int, message, errType string) *CustomError {
	return &CustomError{Code: code, Message: message, Type: errType}
}

// AsCustomError unwraps err into a *CustomError if one is in the chain.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// IsErrorType reports whether err is a CustomError of the given type.
func IsErrorType(err error, errType string) bool {
	ce, ok := AsCustomError(err)
	return ok && ce.Type == errType
}
