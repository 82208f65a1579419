// Package cbf reads Crystallographic Binary Files: CIF documents whose cells
// may hold compressed binary arrays.
//
// A Handle owns a parsed document and a set of hierarchically scoped
// cursors (datablock, saveframe, category, column, row, block item). Moving
// a cursor resets the cursors below it, which must then be rewound or
// selected before use.
package cbf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-cbf/internal/cif"
)

// Error kinds. Every error returned by a cursor, value or array operation is
// an *OpError whose Kind is one of these.
var (
	ErrEndOfSequence    = errors.New("end of sequence")
	ErrNotFound         = errors.New("not found")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrNotBinaryValue   = errors.New("value is not binary")
	ErrUnexpectedBinary = errors.New("value is binary")
	ErrInvalidScope     = errors.New("cursor not positioned")
	ErrFault            = errors.New("fault")
	ErrClosed           = errors.New("handle is closed")
)

// ErrFormat is wrapped by errors for malformed input.
var ErrFormat = cif.ErrFormat

// OpError describes a failed operation.
type OpError struct {
	Op    string
	Level Level
	Name  string // searched name or value, if any
	Index int    // selected index, or -1
	Kind  error
	Err   error // underlying cause, if any
}

func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString("cbf: ")
	b.WriteString(e.Op)
	if e.Level != levelNone {
		b.WriteString(" " + e.Level.String())
	}
	switch {
	case e.Name != "":
		fmt.Fprintf(&b, " %q", e.Name)
	case e.Index >= 0:
		fmt.Fprintf(&b, " %d", e.Index)
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is reports whether target is the error kind.
func (e *OpError) Is(target error) bool {
	return target == e.Kind
}

func (e *OpError) Unwrap() error {
	return e.Err
}
