package apperr

import (
	"fmt"
	"strings"
)

// Kind classifies an operation failure so the HTTP surface can map it to a status
// code without inspecting error strings.
type Kind int

const (
	KindValidation Kind = iota
	KindMalformedInput
	KindNotFound
	KindAuth
	KindConflict
	KindUpstream
)

type Error struct {
	Kind       Kind
	Msg        string
	Violations []string
	cause      error
}

func (e *Error) Error() string {
	if len(e.Violations) > 0 {
		return strings.Join(e.Violations, "; ")
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.cause }

// Validation carries every field violation found, not just the first.
func Validation(violations []string) *Error {
	return &Error{Kind: KindValidation, Violations: violations}
}

func MalformedInput(err error) *Error {
	return &Error{Kind: KindMalformedInput, Msg: fmt.Sprintf("invalid request body format : %q", err.Error())}
}

func NotFound() *Error {
	return &Error{Kind: KindNotFound, Msg: "not found"}
}

func Auth() *Error {
	return &Error{Kind: KindAuth, Msg: "unauthorized"}
}

func Conflict() *Error {
	return &Error{Kind: KindConflict, Msg: "conflict"}
}

// Upstream wraps a failed persistence or identity-gateway call.
func Upstream(op string, err error) *Error {
	return &Error{Kind: KindUpstream, Msg: op, cause: err}
}
