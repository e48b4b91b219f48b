// Package apperr defines the domain error taxonomy shared by services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. Transport code branches on Kind, never on the concrete Go type.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	default:
		return "internal"
	}
}

// Stable machine-readable codes. Clients branch on these instead of message text.
const (
	CodeInternal         = "INTERNAL_ERROR"
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeAuth             = "AUTH_ERROR"
	CodeOrgNotFound      = "ORG_NOT_FOUND"
	CodeGeoParamsInvalid = "GEO_PARAMS_INVALID"
	CodeInvalidAPIKey    = "INVALID_API_KEY"
)

// Error is a classified failure carrying a message and a stable code.
type Error struct {
	Kind    Kind
	Message string
	Code    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error, falling back to the kind's generic code when code is empty.
func New(kind Kind, code, message string) *Error {
	if code == "" {
		code = defaultCode(kind)
	}
	return &Error{Kind: kind, Message: message, Code: code}
}

// NotFound reports a referenced entity that does not exist.
func NotFound(code, message string) *Error { return New(KindNotFound, code, message) }

// Validation reports a contradictory or incomplete parameter combination.
func Validation(code, message string) *Error { return New(KindValidation, code, message) }

// Auth reports a missing or invalid credential.
func Auth(code, message string) *Error { return New(KindAuth, code, message) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func defaultCode(kind Kind) string {
	switch kind {
	case KindNotFound:
		return CodeNotFound
	case KindValidation:
		return CodeValidation
	case KindAuth:
		return CodeAuth
	default:
		return CodeInternal
	}
}
