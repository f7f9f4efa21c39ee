package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindSessionNotReady    Kind = "SESSION_NOT_READY"
	KindUnknownIdentity    Kind = "UNKNOWN_IDENTITY"
	KindInvalidAttachment  Kind = "INVALID_ATTACHMENT"
	KindAlreadyCompleted   Kind = "ALREADY_COMPLETED"
	KindNetworkUnavailable Kind = "NETWORK_UNAVAILABLE"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
	KindServerRejected     Kind = "SERVER_REJECTED"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the Kind carried by err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
