package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAuthentication
	KindAuthorization
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindConflict:
		return "conflict"
	}
	return "unknown"
}

// Error is a recoverable business failure. Anything else reaching the HTTP
// boundary is treated as a store or infrastructure fault.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func Validation(field, code, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message, Field: field}
}

func NotFound(code, message string) error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Authentication(code, message string) error {
	return &Error{Kind: KindAuthentication, Code: code, Message: message}
}

func Authorization(code, message string) error {
	return &Error{Kind: KindAuthorization, Code: code, Message: message}
}

func Conflict(field, code, message string) error {
	return &Error{Kind: KindConflict, Code: code, Message: message, Field: field}
}

func As(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

func IsKind(err error, kind Kind) bool {
	be, ok := As(err)
	return ok && be.Kind == kind
}

func IsBusiness(err error, code string) bool {
	be, ok := As(err)
	return ok && be.Code == code
}
