package filter

import "fmt"

// Kind classifies a pattern error.
type Kind string

const (
	LexError      Kind = "lex"
	ParseError    Kind = "parse"
	BindError     Kind = "bind"
	ArgumentError Kind = "argument"
	EvalError     Kind = "eval"
)

// Error is a diagnostic with a byte range into the pattern source, rendered
// by internal/diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Span    Range
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fatal reports whether this error kind is a compile-time error (exit 2),
// as opposed to a per-line EvalError.
func (e *Error) Fatal() bool {
	return e.Kind != EvalError
}

func newError(kind Kind, span Range, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

func wrapError(kind Kind, span Range, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span, Cause: cause}
}

// NewBindError reports an unknown filter name, wrong arity, or an argument
// that forbids the nested {...} form it was given.
func NewBindError(span Range, format string, args ...any) *Error {
	return newError(BindError, span, format, args...)
}

// NewArgumentError reports an argument that failed to parse into its
// declared typed form (integer, range, or regular expression).
func NewArgumentError(span Range, format string, args ...any) *Error {
	return newError(ArgumentError, span, format, args...)
}

// NewEvalError reports a filter that failed against a specific input value.
func NewEvalError(span Range, format string, args ...any) *Error {
	return newError(EvalError, span, format, args...)
}
