package cbf

import "github.com/robert-malhotra/go-cbf/internal/cif"

// ValueKind classifies a cell.
type ValueKind = cif.ValueKind

const (
	KindAbsent = cif.KindAbsent
	KindNull   = cif.KindNull
	KindBinary = cif.KindBinary
	KindWord   = cif.KindWord
	KindDouble = cif.KindDouble
	KindSingle = cif.KindSingle
	KindText   = cif.KindText
)

// cell returns the value at the current column and row.
func (h *Handle) cell(op opKind) (*cif.Value, error) {
	if h.closed {
		return nil, check(op, LevelRow, statusClosed, "", -1, nil)
	}
	col := h.column()
	if col == nil {
		return nil, check(op, LevelColumn, statusUndefined, "", -1, nil)
	}
	if h.cur.row < 0 {
		return nil, check(op, LevelRow, statusUndefined, "", -1, nil)
	}
	return &col.Values[h.cur.row], nil
}

// TypeOfValue returns the kind of the cell under the cursor.
func (h *Handle) TypeOfValue() (ValueKind, error) {
	v, err := h.cell(opValue)
	if err != nil {
		return KindAbsent, err
	}
	return v.Kind, nil
}

// Value returns the text of the cell under the cursor as written, without
// quotes. Absent cells return "". Binary cells fail with ErrUnexpectedBinary.
func (h *Handle) Value() (string, error) {
	v, err := h.cell(opValue)
	if err != nil {
		return "", err
	}
	if v.Kind == cif.KindBinary {
		return "", check(opValue, LevelRow, statusBinary, "", -1, nil)
	}
	return v.Text, nil
}

// Get returns the cell under the cursor with its kind: nil for absent
// cells, an Array for binary cells and a string otherwise.
func (h *Handle) Get() (any, ValueKind, error) {
	v, err := h.cell(opValue)
	if err != nil {
		return nil, KindAbsent, err
	}
	switch v.Kind {
	case cif.KindAbsent:
		return nil, KindAbsent, nil
	case cif.KindBinary:
		a, err := h.Binary()
		if err != nil {
			return nil, KindBinary, err
		}
		return a, KindBinary, nil
	default:
		return v.Text, v.Kind, nil
	}
}
