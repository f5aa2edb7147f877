package booking

import (
	"errors"
	"fmt"
)

// Machine-readable error codes surfaced to handlers.
const (
	CodeNotFound          = "notFound"
	CodeInvalidTransition = "invalidTransition"
	CodePolicyViolation   = "policyViolation"
	CodeConflict          = "conflict"
	CodeForbidden         = "forbidden"
	CodeGatewayError      = "gatewayError"
)

// Error is a booking-domain error carrying a code handlers translate into an
// HTTP status.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(code, msg string) error {
	return &Error{Code: code, Message: msg}
}

func NewGatewayError(msg string, cause error) error {
	return &Error{Code: CodeGatewayError, Message: msg, Cause: cause}
}

// CodeOf extracts the domain code from an error chain, or "" when the error
// did not originate here.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
