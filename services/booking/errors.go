package booking

import (
	"errors"
	"fmt"
)

// Error codes. Every rejection carries a stable code and a
// human-readable message.
const (
	CodeNotFound   = "notFound"
	CodeConflict   = "conflict"
	CodeForbidden  = "forbidden"
	CodeValidation = "validationError"
	CodeFatal      = "fatal"
)

// Conflict reasons.
const (
	ReasonSpotUnavailable = "spotUnavailable"
	ReasonTimeConflict    = "timeConflict"
	ReasonAlreadyTerminal = "alreadyTerminal"
	ReasonSpotNumberTaken = "spotNumberTaken"
	ReasonSpotInUse       = "spotInUse"
)

// Error is the service-level error returned to handlers.
type Error struct {
	Code    string
	Reason  string
	Message string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s/%s: %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewConflictError(reason, msg string) error {
	return &Error{Code: CodeConflict, Reason: reason, Message: msg}
}

func NewForbiddenError(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

// NewFatalError marks a violated system invariant, e.g. the ledger and
// the registry disagreeing after a partial write. Handlers surface it
// distinctly from ordinary conflicts.
func NewFatalError(msg string) error {
	return &Error{Code: CodeFatal, Message: msg}
}

// CodeOf extracts the service error code, or empty for foreign errors.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// ReasonOf extracts the conflict reason, or empty.
func ReasonOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Reason
	}
	return ""
}
