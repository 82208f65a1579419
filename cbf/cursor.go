package cbf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-cbf/internal/cif"
)

// Level names a cursor.
type Level int

const (
	levelNone Level = iota
	LevelDatablock
	LevelSaveframe
	LevelCategory
	LevelColumn
	LevelRow
	LevelBlockItem
)

var levelNames = [...]string{
	levelNone:      "",
	LevelDatablock: "datablock",
	LevelSaveframe: "saveframe",
	LevelCategory:  "category",
	LevelColumn:    "column",
	LevelRow:       "row",
	LevelBlockItem: "blockitem",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel parses a level name as printed by Level.String. "block" is
// accepted for datablock.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(s)
	if s == "block" {
		return LevelDatablock, nil
	}
	for l := LevelDatablock; l <= LevelBlockItem; l++ {
		if levelNames[l] == s {
			return l, nil
		}
	}
	return levelNone, fmt.Errorf("unknown level %q", s)
}

// ItemKind tells whether a block item is a category or a saveframe.
type ItemKind = cif.ItemKind

const (
	ItemCategory  = cif.ItemCategory
	ItemSaveframe = cif.ItemSaveframe
)

// Cursor positions. Non-negative values are indexes into the scope.
const (
	unset       = -2
	beforeFirst = -1
)

type cursors struct {
	block    int
	frame    int
	category int
	column   int
	row      int
	item     int
}

func initialCursors() cursors {
	return cursors{
		block:    beforeFirst,
		frame:    unset,
		category: unset,
		column:   unset,
		row:      unset,
		item:     unset,
	}
}

func (c *cursors) pos(l Level) *int {
	switch l {
	case LevelDatablock:
		return &c.block
	case LevelSaveframe:
		return &c.frame
	case LevelCategory:
		return &c.category
	case LevelColumn:
		return &c.column
	case LevelRow:
		return &c.row
	case LevelBlockItem:
		return &c.item
	}
	return nil
}

// reset unsets every cursor scoped below l.
func (c *cursors) reset(l Level) {
	switch l {
	case LevelDatablock:
		c.frame, c.category, c.column, c.row, c.item = unset, unset, unset, unset, unset
	case LevelSaveframe:
		c.category, c.column, c.row = unset, unset, unset
	case LevelCategory:
		c.column, c.row = unset, unset
	}
}

var errNoName = errors.New("rows have no name")

func (h *Handle) block() *cif.Block {
	if h.cur.block < 0 {
		return nil
	}
	return h.doc.Blocks[h.cur.block]
}

func (h *Handle) frame() *cif.Saveframe {
	b := h.block()
	if b == nil || h.cur.frame < 0 {
		return nil
	}
	return b.Saveframes[h.cur.frame]
}

// categories returns the category scope: the current saveframe when the
// saveframe cursor is on an item, otherwise the current datablock.
func (h *Handle) categories() ([]*cif.Category, bool) {
	b := h.block()
	if b == nil {
		return nil, false
	}
	if f := h.frame(); f != nil {
		return f.Categories, true
	}
	return b.Categories, true
}

func (h *Handle) category() *cif.Category {
	cats, ok := h.categories()
	if !ok || h.cur.category < 0 {
		return nil
	}
	return cats[h.cur.category]
}

func (h *Handle) column() *cif.Column {
	c := h.category()
	if c == nil || h.cur.column < 0 {
		return nil
	}
	return c.Columns[h.cur.column]
}

// scope returns the number of entries at level l under the current parents.
func (h *Handle) scope(l Level) (int, status) {
	switch l {
	case LevelDatablock:
		return len(h.doc.Blocks), statusOK
	case LevelSaveframe:
		if b := h.block(); b != nil {
			return len(b.Saveframes), statusOK
		}
	case LevelBlockItem:
		if b := h.block(); b != nil {
			return len(b.Items), statusOK
		}
	case LevelCategory:
		if cats, ok := h.categories(); ok {
			return len(cats), statusOK
		}
	case LevelColumn:
		if c := h.category(); c != nil {
			return len(c.Columns), statusOK
		}
	case LevelRow:
		if c := h.category(); c != nil {
			return c.Rows, statusOK
		}
	}
	return 0, statusUndefined
}

func (h *Handle) nameAt(l Level, i int) string {
	switch l {
	case LevelDatablock:
		return h.doc.Blocks[i].Name
	case LevelSaveframe:
		return h.block().Saveframes[i].Name
	case LevelBlockItem:
		b := h.block()
		item := b.Items[i]
		if item.Kind == ItemSaveframe {
			return b.Saveframes[item.Index].Name
		}
		return b.Categories[item.Index].Name
	case LevelCategory:
		cats, _ := h.categories()
		return cats[i].Name
	case LevelColumn:
		return h.category().Columns[i].Name
	}
	return ""
}

// moveTo positions l at index i and resets the cursors below it. A block
// item also positions the saveframe or category it refers to.
func (h *Handle) moveTo(l Level, i int) {
	*h.cur.pos(l) = i
	h.cur.reset(l)
	if l != LevelBlockItem {
		return
	}
	item := h.block().Items[i]
	switch item.Kind {
	case ItemSaveframe:
		h.cur.frame = item.Index
		h.cur.category = unset
	default:
		h.cur.frame = unset
		h.cur.category = item.Index
	}
	h.cur.column, h.cur.row = unset, unset
}

// Rewind positions l before its first entry. The parent cursor must be on
// an entry.
func (h *Handle) Rewind(l Level) error {
	if h.closed {
		return check(opRewind, l, statusClosed, "", -1, nil)
	}
	if _, st := h.scope(l); st != statusOK {
		return check(opRewind, l, st, "", -1, nil)
	}
	*h.cur.pos(l) = beforeFirst
	h.cur.reset(l)
	return nil
}

// Next advances l by one entry. It fails with ErrEndOfSequence after the
// last entry and with ErrInvalidScope if l was never rewound or selected.
func (h *Handle) Next(l Level) error {
	if h.closed {
		return check(opNext, l, statusClosed, "", -1, nil)
	}
	n, st := h.scope(l)
	if st != statusOK {
		return check(opNext, l, st, "", -1, nil)
	}
	p := *h.cur.pos(l)
	if p == unset {
		return check(opNext, l, statusUndefined, "", -1, nil)
	}
	if p+1 >= n {
		return check(opNext, l, statusNotFound, "", -1, nil)
	}
	h.moveTo(l, p+1)
	return nil
}

// Find positions l on the first entry in scope named exactly name. For
// LevelRow the name is matched against the current column's values.
func (h *Handle) Find(l Level, name string) error {
	if l == LevelRow {
		return h.FindRow(name)
	}
	if h.closed {
		return check(opFind, l, statusClosed, name, -1, nil)
	}
	n, st := h.scope(l)
	if st != statusOK {
		return check(opFind, l, st, name, -1, nil)
	}
	for i := 0; i < n; i++ {
		if h.nameAt(l, i) == name {
			h.moveTo(l, i)
			return nil
		}
	}
	return check(opFind, l, statusNotFound, name, -1, nil)
}

// Select positions l on the zero-based index i.
func (h *Handle) Select(l Level, i int) error {
	if h.closed {
		return check(opSelect, l, statusClosed, "", i, nil)
	}
	n, st := h.scope(l)
	if st != statusOK {
		return check(opSelect, l, st, "", i, nil)
	}
	if i < 0 || i >= n {
		return check(opSelect, l, statusNotFound, "", i, nil)
	}
	h.moveTo(l, i)
	return nil
}

// Count returns the number of entries in scope at l without moving it.
func (h *Handle) Count(l Level) (int, error) {
	if h.closed {
		return 0, check(opCount, l, statusClosed, "", -1, nil)
	}
	n, st := h.scope(l)
	if st != statusOK {
		return 0, check(opCount, l, st, "", -1, nil)
	}
	return n, nil
}

// Position returns the index l is on.
func (h *Handle) Position(l Level) (int, error) {
	if h.closed {
		return 0, check(opName, l, statusClosed, "", -1, nil)
	}
	if _, st := h.scope(l); st != statusOK {
		return 0, check(opName, l, st, "", -1, nil)
	}
	p := *h.cur.pos(l)
	if p < 0 {
		return 0, check(opName, l, statusUndefined, "", -1, nil)
	}
	return p, nil
}

// Name returns the name of the entry l is on.
func (h *Handle) Name(l Level) (string, error) {
	if l == LevelRow {
		return "", check(opName, l, statusArgument, "", -1, errNoName)
	}
	p, err := h.Position(l)
	if err != nil {
		return "", err
	}
	return h.nameAt(l, p), nil
}

// FindRow positions the row cursor on the first row whose value in the
// current column is exactly value. Binary and absent cells never match.
func (h *Handle) FindRow(value string) error {
	if h.closed {
		return check(opFind, LevelRow, statusClosed, value, -1, nil)
	}
	col := h.column()
	if col == nil {
		return check(opFind, LevelRow, statusUndefined, value, -1, nil)
	}
	for i, v := range col.Values {
		if v.Kind != cif.KindBinary && v.Kind != cif.KindAbsent && v.Text == value {
			h.moveTo(LevelRow, i)
			return nil
		}
	}
	return check(opFind, LevelRow, statusNotFound, value, -1, nil)
}

// BlockItemKind reports whether the block item cursor is on a category or
// a saveframe.
func (h *Handle) BlockItemKind() (ItemKind, error) {
	p, err := h.Position(LevelBlockItem)
	if err != nil {
		return ItemCategory, err
	}
	return h.block().Items[p].Kind, nil
}
