package jq

import (
	"errors"
)

// Kind categorizes a failed invocation.
type Kind uint8

const (
	// KindConfiguration marks options that are representable but invalid,
	// detected before the engine is touched.
	KindConfiguration Kind = iota + 1
	// KindCompile marks a filter program the engine could not compile.
	KindCompile
	// KindEvaluation marks a failure while the engine processed the input.
	KindEvaluation
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindCompile:
		return "compile"
	case KindEvaluation:
		return "evaluation"
	default:
		return "unknown"
	}
}

var (
	// ErrConfiguration matches any configuration error via errors.Is.
	ErrConfiguration = &Error{Kind: KindConfiguration}
	// ErrCompile matches any compile error via errors.Is.
	ErrCompile = &Error{Kind: KindCompile}
	// ErrEvaluation matches any evaluation error via errors.Is.
	ErrEvaluation = &Error{Kind: KindEvaluation}
)

// Error is the error returned by Run. Diagnostic holds the human-readable
// text, taken verbatim from the engine for compile and evaluation errors.
type Error struct {
	Cause      error
	Diagnostic string
	Kind       Kind
}

func (e *Error) Error() string {
	if e.Diagnostic == "" {
		return e.Kind.String() + " error"
	}
	return e.Kind.String() + " error: " + e.Diagnostic
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func newError(kind Kind, cause error) *Error {
	return &Error{
		Kind:       kind,
		Diagnostic: cause.Error(),
		Cause:      cause,
	}
}
