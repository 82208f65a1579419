package cbf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-cbf/internal/cbftest"
)

// textDoc has three datablocks; the first holds a 2-column, 3-row loop.
func textDoc() []byte {
	return cbftest.New().
		Block("first").
		Loop([]string{"_items.colA", "_items.colB"},
			[]string{"a1", "'b 1'"},
			[]string{"a2", `"b2"`},
			[]string{"a3", "."}).
		Item("_entry.id", "first").
		Block("second").
		Item("_entry.id", "second").
		Block("third").
		Bytes()
}

// frameDoc has one datablock with a saveframe between two categories.
func frameDoc() []byte {
	return cbftest.New().
		Block("dict").
		Item("_dictionary.title", "demo").
		Save("frame_a").
		Item("_item.name", "'_a.b'").
		Loop([]string{"_enum.value"}, []string{"x"}, []string{"y"}).
		Save("").
		Item("_other.value", "1").
		Bytes()
}

func mustParse(t *testing.T, data []byte, opts ...Option) *Handle {
	t.Helper()
	h, err := ParseBytes(data, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestNextDatablockEndOfSequence(t *testing.T) {
	h := mustParse(t, textDoc())

	n, err := h.CountDatablocks()
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.NoError(t, h.RewindDatablock())
	var names []string
	for i := 0; i < n; i++ {
		require.NoError(t, h.NextDatablock())
		name, err := h.DatablockName()
		require.NoError(t, err)
		names = append(names, name)
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)

	err = h.NextDatablock()
	assert.ErrorIs(t, err, ErrEndOfSequence)
	assert.NotErrorIs(t, err, ErrFault)

	// A failed next leaves the cursor where it was.
	name, err := h.DatablockName()
	require.NoError(t, err)
	assert.Equal(t, "third", name)
}

func TestRewoundCursorHasNoName(t *testing.T) {
	h := mustParse(t, textDoc())
	_, err := h.DatablockName()
	assert.ErrorIs(t, err, ErrInvalidScope)
}

func TestSelectIsIdempotent(t *testing.T) {
	h := mustParse(t, textDoc())

	require.NoError(t, h.SelectDatablock(1))
	first, err := h.DatablockName()
	require.NoError(t, err)

	require.NoError(t, h.SelectDatablock(1))
	second, err := h.DatablockName()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, h.SelectDatablock(0))
	require.NoError(t, h.SelectCategory(0))
	require.NoError(t, h.SelectColumn(1))
	require.NoError(t, h.SelectRow(2))
	v1, err := h.Value()
	require.NoError(t, err)
	require.NoError(t, h.SelectRow(2))
	v2, err := h.Value()
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestFindThenName(t *testing.T) {
	h := mustParse(t, textDoc())

	tests := []struct {
		level Level
		name  string
	}{
		{LevelDatablock, "second"},
		{LevelDatablock, "first"},
		{LevelCategory, "items"},
		{LevelColumn, "colB"},
	}
	for _, tt := range tests {
		require.NoError(t, h.Find(tt.level, tt.name), "find %s %s", tt.level, tt.name)
		got, err := h.Name(tt.level)
		require.NoError(t, err)
		assert.Equal(t, tt.name, got)
	}
}

func TestFindSearchesWholeScope(t *testing.T) {
	h := mustParse(t, textDoc())
	require.NoError(t, h.SelectDatablock(2))
	require.NoError(t, h.FindDatablock("first"))

	name, err := h.DatablockName()
	require.NoError(t, err)
	assert.Equal(t, "first", name)
}

func TestFindAndSelectErrors(t *testing.T) {
	h := mustParse(t, textDoc())
	require.NoError(t, h.SelectDatablock(0))

	err := h.FindCategory("missing")
	require.ErrorIs(t, err, ErrNotFound)
	var opErr *OpError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "missing", opErr.Name)
	assert.Equal(t, LevelCategory, opErr.Level)
	assert.Equal(t, `cbf: find category "missing": not found`, err.Error())

	err = h.SelectDatablock(7)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, 7, opErr.Index)

	assert.ErrorIs(t, h.SelectDatablock(-1), ErrIndexOutOfRange)

	// Failed moves keep the current position.
	name, err := h.DatablockName()
	require.NoError(t, err)
	assert.Equal(t, "first", name)
}

func TestParentSwitchInvalidatesChildren(t *testing.T) {
	h := mustParse(t, textDoc())

	require.NoError(t, h.SelectDatablock(0))
	require.NoError(t, h.FindCategory("items"))
	require.NoError(t, h.RewindColumn())
	require.NoError(t, h.NextColumn())
	require.NoError(t, h.RewindRow())
	require.NoError(t, h.NextRow())
	_, err := h.Value()
	require.NoError(t, err)

	// Switching category unsets column and row.
	require.NoError(t, h.SelectCategory(1))
	assert.ErrorIs(t, h.NextColumn(), ErrInvalidScope)
	assert.ErrorIs(t, h.NextRow(), ErrInvalidScope)
	_, err = h.Value()
	assert.ErrorIs(t, err, ErrInvalidScope)
	_, err = h.ColumnName()
	assert.ErrorIs(t, err, ErrInvalidScope)

	// Scope operations only need the parent.
	n, err := h.CountColumns()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.NoError(t, h.RewindColumn())
	require.NoError(t, h.NextColumn())

	// Switching datablock unsets category too.
	require.NoError(t, h.SelectDatablock(1))
	assert.ErrorIs(t, h.NextCategory(), ErrInvalidScope)
	assert.ErrorIs(t, h.NextColumn(), ErrInvalidScope)
	_, err = h.CountColumns()
	assert.ErrorIs(t, err, ErrInvalidScope)
	assert.ErrorIs(t, h.RewindColumn(), ErrInvalidScope)

	require.NoError(t, h.RewindCategory())
	require.NoError(t, h.NextCategory())
	name, err := h.CategoryName()
	require.NoError(t, err)
	assert.Equal(t, "entry", name)
}

func TestRewindRequiresParent(t *testing.T) {
	h := mustParse(t, textDoc())

	for _, l := range []Level{LevelSaveframe, LevelCategory, LevelColumn, LevelRow, LevelBlockItem} {
		assert.ErrorIs(t, h.Rewind(l), ErrInvalidScope, "rewind %s", l)
	}
	assert.NoError(t, h.Rewind(LevelDatablock))
}

func TestRowsAndValues(t *testing.T) {
	h := mustParse(t, textDoc())
	require.NoError(t, h.SelectDatablock(0))
	require.NoError(t, h.FindCategory("items"))

	rows, err := h.CountRows()
	require.NoError(t, err)
	assert.Equal(t, 3, rows)

	require.NoError(t, h.FindColumn("colB"))
	tests := []struct {
		text string
		kind ValueKind
	}{
		{"b 1", KindSingle},
		{"b2", KindDouble},
		{".", KindNull},
	}
	require.NoError(t, h.RewindRow())
	for i, tt := range tests {
		require.NoError(t, h.NextRow())
		n, err := h.RowNumber()
		require.NoError(t, err)
		assert.Equal(t, i, n)

		text, err := h.Value()
		require.NoError(t, err)
		assert.Equal(t, tt.text, text)

		kind, err := h.TypeOfValue()
		require.NoError(t, err)
		assert.Equal(t, tt.kind, kind)
	}
	assert.ErrorIs(t, h.NextRow(), ErrEndOfSequence)

	_, err = h.Name(LevelRow)
	assert.ErrorIs(t, err, ErrFault)
}

func TestFindRow(t *testing.T) {
	h := mustParse(t, textDoc())
	require.NoError(t, h.SelectDatablock(0))
	require.NoError(t, h.FindCategory("items"))

	assert.ErrorIs(t, h.FindRow("a2"), ErrInvalidScope)

	require.NoError(t, h.FindColumn("colA"))
	require.NoError(t, h.FindRow("a2"))
	n, err := h.RowNumber()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Moving the column keeps the row.
	require.NoError(t, h.FindColumn("colB"))
	v, err := h.Value()
	require.NoError(t, err)
	assert.Equal(t, "b2", v)

	assert.ErrorIs(t, h.Find(LevelRow, "nope"), ErrNotFound)
}

func TestFindTag(t *testing.T) {
	h := mustParse(t, textDoc())
	require.NoError(t, h.SelectDatablock(0))

	require.NoError(t, h.FindTag("_items.colB"))
	name, err := h.ColumnName()
	require.NoError(t, err)
	assert.Equal(t, "colB", name)

	assert.ErrorIs(t, h.FindTag("items.colB"), ErrFault)
	assert.ErrorIs(t, h.FindTag("_items.missing"), ErrNotFound)
}

func TestSaveframeScope(t *testing.T) {
	h := mustParse(t, frameDoc())

	assert.ErrorIs(t, h.RewindSaveframe(), ErrInvalidScope)
	require.NoError(t, h.SelectDatablock(0))

	n, err := h.CountCategories()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = h.CountSaveframes()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, h.FindSaveframe("frame_a"))
	n, err = h.CountCategories()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, h.FindCategory("enum"))
	rows, err := h.CountRows()
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	// Leaving the saveframe returns the scope to the datablock.
	require.NoError(t, h.RewindSaveframe())
	_, err = h.CategoryName()
	assert.ErrorIs(t, err, ErrInvalidScope)
	assert.ErrorIs(t, h.FindCategory("enum"), ErrNotFound)
	require.NoError(t, h.FindCategory("other"))
}

func TestBlockItems(t *testing.T) {
	h := mustParse(t, frameDoc())
	require.NoError(t, h.SelectDatablock(0))

	n, err := h.CountBlockItems()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, h.RewindBlockItem())

	kind, err := h.NextBlockItem()
	require.NoError(t, err)
	assert.Equal(t, ItemCategory, kind)
	name, err := h.CategoryName()
	require.NoError(t, err)
	assert.Equal(t, "dictionary", name)

	kind, err = h.NextBlockItem()
	require.NoError(t, err)
	assert.Equal(t, ItemSaveframe, kind)
	name, err = h.SaveframeName()
	require.NoError(t, err)
	assert.Equal(t, "frame_a", name)
	n, err = h.CountCategories()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	kind, err = h.NextBlockItem()
	require.NoError(t, err)
	assert.Equal(t, ItemCategory, kind)
	name, err = h.Name(LevelBlockItem)
	require.NoError(t, err)
	assert.Equal(t, "other", name)

	_, err = h.NextBlockItem()
	assert.ErrorIs(t, err, ErrEndOfSequence)

	kind, err = h.SelectBlockItem(1)
	require.NoError(t, err)
	assert.Equal(t, ItemSaveframe, kind)
}

func TestClosedHandle(t *testing.T) {
	h, err := ParseBytes(textDoc())
	require.NoError(t, err)
	require.NoError(t, h.Close())
	require.NoError(t, h.Close())

	assert.ErrorIs(t, h.NextDatablock(), ErrClosed)
	_, err = h.CountDatablocks()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = h.Value()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = h.Datablocks()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, h.FindRow("x"), ErrClosed)
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		op   opKind
		st   status
		want error
	}{
		{opNext, statusOK, nil},
		{opNext, statusNotFound, ErrEndOfSequence},
		{opFind, statusNotFound, ErrNotFound},
		{opSelect, statusNotFound, ErrIndexOutOfRange},
		{opCount, statusNotFound, ErrFault},
		{opRewind, statusUndefined, ErrInvalidScope},
		{opValue, statusBinary, ErrUnexpectedBinary},
		{opArray, statusASCII, ErrNotBinaryValue},
		{opValue, statusASCII, ErrFault},
		{opArray, statusArgument, ErrFault},
		{opArray, statusFormat, ErrFault},
		{opName, statusClosed, ErrClosed},
	}
	for _, tt := range tests {
		got := interpret(tt.op, tt.st)
		if !errors.Is(got, tt.want) || (tt.want == nil) != (got == nil) {
			t.Errorf("interpret(%s, %d) = %v, want %v", tt.op, tt.st, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelDatablock, LevelSaveframe, LevelCategory, LevelColumn, LevelRow, LevelBlockItem} {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	got, err := ParseLevel("Block")
	require.NoError(t, err)
	assert.Equal(t, LevelDatablock, got)

	_, err = ParseLevel("cell")
	assert.Error(t, err)
}
