package cbf

// RewindDatablock positions the datablock cursor before the first block.
func (h *Handle) RewindDatablock() error { return h.Rewind(LevelDatablock) }

// NextDatablock advances to the next datablock.
func (h *Handle) NextDatablock() error { return h.Next(LevelDatablock) }

// FindDatablock positions on the datablock named name.
func (h *Handle) FindDatablock(name string) error { return h.Find(LevelDatablock, name) }

// SelectDatablock positions on datablock i.
func (h *Handle) SelectDatablock(i int) error { return h.Select(LevelDatablock, i) }

// CountDatablocks returns the number of datablocks.
func (h *Handle) CountDatablocks() (int, error) { return h.Count(LevelDatablock) }

// DatablockName returns the current datablock's name.
func (h *Handle) DatablockName() (string, error) { return h.Name(LevelDatablock) }

// RewindSaveframe positions the saveframe cursor before the first saveframe of the datablock.
func (h *Handle) RewindSaveframe() error { return h.Rewind(LevelSaveframe) }

// NextSaveframe advances to the next saveframe.
func (h *Handle) NextSaveframe() error { return h.Next(LevelSaveframe) }

// FindSaveframe positions on the saveframe named name.
func (h *Handle) FindSaveframe(name string) error { return h.Find(LevelSaveframe, name) }

// SelectSaveframe positions on saveframe i.
func (h *Handle) SelectSaveframe(i int) error { return h.Select(LevelSaveframe, i) }

// CountSaveframes returns the number of saveframes in the datablock.
func (h *Handle) CountSaveframes() (int, error) { return h.Count(LevelSaveframe) }

// SaveframeName returns the current saveframe's name.
func (h *Handle) SaveframeName() (string, error) { return h.Name(LevelSaveframe) }

// RewindCategory positions the category cursor before the first category in scope.
func (h *Handle) RewindCategory() error { return h.Rewind(LevelCategory) }

// NextCategory advances to the next category.
func (h *Handle) NextCategory() error { return h.Next(LevelCategory) }

// FindCategory positions on the category named name.
func (h *Handle) FindCategory(name string) error { return h.Find(LevelCategory, name) }

// SelectCategory positions on category i.
func (h *Handle) SelectCategory(i int) error { return h.Select(LevelCategory, i) }

// CountCategories returns the number of categories in scope.
func (h *Handle) CountCategories() (int, error) { return h.Count(LevelCategory) }

// CategoryName returns the current category's name.
func (h *Handle) CategoryName() (string, error) { return h.Name(LevelCategory) }

// RewindColumn positions the column cursor before the first column.
func (h *Handle) RewindColumn() error { return h.Rewind(LevelColumn) }

// NextColumn advances to the next column.
func (h *Handle) NextColumn() error { return h.Next(LevelColumn) }

// FindColumn positions on the column named name.
func (h *Handle) FindColumn(name string) error { return h.Find(LevelColumn, name) }

// SelectColumn positions on column i.
func (h *Handle) SelectColumn(i int) error { return h.Select(LevelColumn, i) }

// CountColumns returns the number of columns in the category.
func (h *Handle) CountColumns() (int, error) { return h.Count(LevelColumn) }

// ColumnName returns the current column's name.
func (h *Handle) ColumnName() (string, error) { return h.Name(LevelColumn) }

// RewindRow positions the row cursor before the first row.
func (h *Handle) RewindRow() error { return h.Rewind(LevelRow) }

// NextRow advances to the next row.
func (h *Handle) NextRow() error { return h.Next(LevelRow) }

// SelectRow positions on row i.
func (h *Handle) SelectRow(i int) error { return h.Select(LevelRow, i) }

// CountRows returns the number of rows in the category.
func (h *Handle) CountRows() (int, error) { return h.Count(LevelRow) }

// RowNumber returns the zero-based index of the current row.
func (h *Handle) RowNumber() (int, error) { return h.Position(LevelRow) }

// RewindBlockItem positions the block item cursor before the first item.
func (h *Handle) RewindBlockItem() error { return h.Rewind(LevelBlockItem) }

// CountBlockItems returns the number of categories and saveframes in the datablock.
func (h *Handle) CountBlockItems() (int, error) { return h.Count(LevelBlockItem) }

// NextBlockItem advances the block item cursor and reports the kind of item
// reached. The matching saveframe or category cursor is positioned on it.
func (h *Handle) NextBlockItem() (ItemKind, error) {
	if err := h.Next(LevelBlockItem); err != nil {
		return ItemCategory, err
	}
	return h.BlockItemKind()
}

// SelectBlockItem positions the block item cursor on item i.
func (h *Handle) SelectBlockItem(i int) (ItemKind, error) {
	if err := h.Select(LevelBlockItem, i); err != nil {
		return ItemCategory, err
	}
	return h.BlockItemKind()
}
