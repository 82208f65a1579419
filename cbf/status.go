package cbf

// status is the outcome of a document engine or codec call, before it is
// interpreted for the operation that made it.
type status int

const (
	statusOK        status = iota
	statusNotFound         // no such item in scope
	statusUndefined        // cursor or parent not positioned
	statusBinary           // text requested from a binary cell
	statusASCII            // array requested from a text cell
	statusArgument         // bad header field or codec failure
	statusFormat           // decoded data does not match its description
	statusClosed
)

type opKind int

const (
	opRewind opKind = iota
	opNext
	opFind
	opSelect
	opCount
	opName
	opValue
	opArray
)

var opNames = [...]string{
	opRewind: "rewind",
	opNext:   "next",
	opFind:   "find",
	opSelect: "select",
	opCount:  "count",
	opName:   "name",
	opValue:  "value",
	opArray:  "array",
}

func (o opKind) String() string {
	return opNames[o]
}

// interpret maps a status to an error kind for op. It is the only place
// where statuses become errors.
func interpret(op opKind, st status) error {
	switch st {
	case statusOK:
		return nil
	case statusClosed:
		return ErrClosed
	case statusUndefined:
		return ErrInvalidScope
	case statusNotFound:
		switch op {
		case opNext:
			return ErrEndOfSequence
		case opFind:
			return ErrNotFound
		case opSelect:
			return ErrIndexOutOfRange
		}
	case statusBinary:
		if op == opValue {
			return ErrUnexpectedBinary
		}
	case statusASCII:
		if op == opArray {
			return ErrNotBinaryValue
		}
	}
	return ErrFault
}

// check returns nil for statusOK, otherwise an *OpError.
func check(op opKind, lvl Level, st status, name string, index int, cause error) error {
	kind := interpret(op, st)
	if kind == nil {
		return nil
	}
	return &OpError{Op: op.String(), Level: lvl, Name: name, Index: index, Kind: kind, Err: cause}
}
