package ledger

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	ErrorKindNotFound          ErrorKind = "not_found"
	ErrorKindUnreachable       ErrorKind = "unreachable"
	ErrorKindRejected          ErrorKind = "rejected"
	ErrorKindMalformedResponse ErrorKind = "malformed_response"
)

// Error is returned by every remote call of the package.
type Error struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Code       string
	Reason     string
	Err        error
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrNotFound          = &Error{Kind: ErrorKindNotFound}
	ErrUnreachable       = &Error{Kind: ErrorKindUnreachable}
	ErrRejected          = &Error{Kind: ErrorKindRejected}
	ErrMalformedResponse = &Error{Kind: ErrorKindMalformedResponse}
)

func (e *Error) Error() string {
	var builder strings.Builder
	if e.Op != "" {
		builder.WriteString(e.Op)
		builder.WriteString(": ")
	}
	builder.WriteString(string(e.Kind))
	if e.StatusCode != 0 {
		fmt.Fprintf(&builder, " (status %d)", e.StatusCode)
	}
	if e.Code != "" {
		fmt.Fprintf(&builder, " [%s]", e.Code)
	}
	if e.Reason != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Reason)
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or "" for foreign errors.
func KindOf(err error) ErrorKind {
	var ledgerErr *Error
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Kind
	}
	return ""
}

// IsRetryable reports whether repeating a read could succeed.
func IsRetryable(err error) bool {
	return KindOf(err) == ErrorKindUnreachable
}

// MalformedResponse builds a decode error for op.
func MalformedResponse(op string, format string, args ...any) *Error {
	return &Error{
		Kind:   ErrorKindMalformedResponse,
		Op:     op,
		Reason: fmt.Sprintf(format, args...),
	}
}

// NotFound builds a confirmed-absence error for op.
func NotFound(op string, reason string) *Error {
	return &Error{Kind: ErrorKindNotFound, Op: op, Reason: reason}
}

func classifyStatus(statusCode int, code string) ErrorKind {
	switch {
	case statusCode == 404 || strings.HasSuffix(code, "_not_found"):
		return ErrorKindNotFound
	case statusCode == 429 || statusCode >= 500:
		return ErrorKindUnreachable
	default:
		return ErrorKindRejected
	}
}
