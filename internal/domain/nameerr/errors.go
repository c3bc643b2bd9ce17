// Package nameerr classifies the failures of name generation.
//
// Every error produced while parsing a descriptor, resolving an operand or
// orchestrating a render is an *Error carrying one of three kinds. Callers
// classify with errors.Is against the sentinels below.
package nameerr

import (
	"errors"
	"fmt"
)

// Sentinel kinds. An *Error matches exactly one of them via errors.Is.
var (
	ErrSyntax     = errors.New("syntax error")
	ErrResolution = errors.New("resolution error")
	ErrGeneration = errors.New("generation error")
)

// Kind is the coarse category of a name-generation failure.
type Kind string

const (
	// KindSyntax marks malformed input detected before any lookup.
	KindSyntax Kind = "syntax"
	// KindResolution marks a value that could not be produced during evaluation.
	KindResolution Kind = "resolution"
	// KindGeneration marks an orchestration failure (no descriptor, bad outcome id).
	KindGeneration Kind = "generation"
)

// Error wraps an optional cause with the operation, kind and offending input.
type Error struct {
	Op    string
	Kind  Kind
	Input string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Input != "" {
		base += fmt.Sprintf(" (input=%q)", e.Input)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

// Unwrap exposes the cause. A cause that is itself an *Error is hidden
// behind its message so the chain carries only e's kind; whatever that
// cause wraps stays reachable.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	if inner, ok := e.Err.(*Error); ok && inner != nil {
		return kindless{inner}
	}
	return e.Err
}

// kindless is a nested *Error stripped of its kind.
type kindless struct{ e *Error }

func (k kindless) Error() string { return k.e.Error() }

func (k kindless) Unwrap() error { return k.e.Unwrap() }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrResolution:
		return e.Kind == KindResolution
	case ErrGeneration:
		return e.Kind == KindGeneration
	}
	return false
}

// Syntax builds a syntax error for op over input.
func Syntax(op, input, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindSyntax, Input: input, Msg: fmt.Sprintf(format, args...)}
}

// Resolution builds a resolution error, optionally wrapping cause.
func Resolution(op, input string, cause error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindResolution, Input: input, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// Generation builds a generation error, optionally wrapping cause.
func Generation(op, input string, cause error, format string, args ...any) *Error {
	return &Error{Op: op, Kind: KindGeneration, Input: input, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// IsKind helps callers classify errors without matching on sentinels.
func IsKind(err error, kind Kind) bool {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind == kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var ne *Error
	if errors.As(err, &ne) {
		return ne.Kind
	}
	return ""
}
