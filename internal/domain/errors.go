package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the transport layer can pick a status code.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindReferential
	KindConflict
	KindNotFound
	KindAuthentication
	KindAuthorization
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindReferential:
		return "ReferentialError"
	case KindConflict:
		return "ConflictError"
	case KindNotFound:
		return "NotFoundError"
	case KindAuthentication:
		return "AuthenticationError"
	case KindAuthorization:
		return "AuthorizationError"
	default:
		return "UnexpectedError"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return e.Msg + ": " + e.Err.Error()
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error by kind, so errors.Is(err, ErrNotFound) works
// for any not-found error regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Msg == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrValidation     = &Error{Kind: KindValidation}
	ErrReferential    = &Error{Kind: KindReferential}
	ErrConflict       = &Error{Kind: KindConflict}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrAuthentication = &Error{Kind: KindAuthentication}
	ErrAuthorization  = &Error{Kind: KindAuthorization}
)

func Validation(msg string) error      { return &Error{Kind: KindValidation, Msg: msg} }
func Referential(msg string) error     { return &Error{Kind: KindReferential, Msg: msg} }
func Conflict(msg string) error        { return &Error{Kind: KindConflict, Msg: msg} }
func NotFound(msg string) error        { return &Error{Kind: KindNotFound, Msg: msg} }
func Unauthenticated(msg string) error { return &Error{Kind: KindAuthentication, Msg: msg} }
func Forbidden(msg string) error       { return &Error{Kind: KindAuthorization, Msg: msg} }

func Unexpected(msg string, err error) error {
	return &Error{Kind: KindUnexpected, Msg: msg, Err: err}
}

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain.
// Errors that carry no kind are unexpected.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
