package cif

import (
	"errors"
	"fmt"
)

// ErrFormat is wrapped by every error that reports malformed input.
var ErrFormat = errors.New("cif: format error")

// SyntaxError reports malformed input at a source line.
type SyntaxError struct {
	Line int
	Msg  string
	Err  error // optional underlying cause
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cif: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("cif: line %d: %s", e.Line, e.Msg)
}

// Unwrap reports both ErrFormat and the underlying cause.
func (e *SyntaxError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFormat, e.Err}
	}
	return []error{ErrFormat}
}
