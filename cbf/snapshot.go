package cbf

import "errors"

// Category is a snapshot of one category. Values maps each column name to
// its cells in row order: nil for absent cells, an Array for binary cells
// and a string otherwise.
type Category struct {
	Name    string           `json:"name"`
	Columns []string         `json:"columns"`
	Types   []ValueKind      `json:"columns~type"`
	Values  map[string][]any `json:"values"`
}

// Saveframe is a snapshot of one saveframe.
type Saveframe struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// Block is a snapshot of one datablock.
type Block struct {
	Name       string      `json:"name"`
	Categories []Category  `json:"categories"`
	Saveframes []Saveframe `json:"saveframes,omitempty"`
}

// keep runs fn and restores every cursor afterwards, so snapshots never
// move the caller's position.
func (h *Handle) keep(fn func() error) error {
	if h.closed {
		return check(opRewind, levelNone, statusClosed, "", -1, nil)
	}
	saved := h.cur
	defer func() { h.cur = saved }()
	return fn()
}

// each calls fn for every entry at l, from a rewind to ErrEndOfSequence.
func (h *Handle) each(l Level, fn func() error) error {
	if err := h.Rewind(l); err != nil {
		return err
	}
	for {
		err := h.Next(l)
		if errors.Is(err, ErrEndOfSequence) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(); err != nil {
			return err
		}
	}
}

// Datablocks returns a snapshot of every datablock in document order.
func (h *Handle) Datablocks() ([]Block, error) {
	out := []Block{}
	err := h.keep(func() error {
		return h.each(LevelDatablock, func() error {
			b, err := h.flattenBlock()
			out = append(out, b)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CurrentDatablock returns a snapshot of the datablock under the cursor.
func (h *Handle) CurrentDatablock() (Block, error) {
	var b Block
	err := h.keep(func() (err error) {
		b, err = h.flattenBlock()
		return err
	})
	return b, err
}

// DatablockByName returns a snapshot of the named datablock.
func (h *Handle) DatablockByName(name string) (Block, error) {
	var b Block
	err := h.keep(func() error {
		if err := h.FindDatablock(name); err != nil {
			return err
		}
		var err error
		b, err = h.flattenBlock()
		return err
	})
	return b, err
}

// DatablockAt returns a snapshot of datablock i.
func (h *Handle) DatablockAt(i int) (Block, error) {
	var b Block
	err := h.keep(func() error {
		if err := h.SelectDatablock(i); err != nil {
			return err
		}
		var err error
		b, err = h.flattenBlock()
		return err
	})
	return b, err
}

// CurrentCategory returns a snapshot of the category under the cursor.
func (h *Handle) CurrentCategory() (Category, error) {
	var c Category
	err := h.keep(func() (err error) {
		c, err = h.flattenCategory()
		return err
	})
	return c, err
}

// CategoryByName returns a snapshot of the named category in the current
// category scope.
func (h *Handle) CategoryByName(name string) (Category, error) {
	var c Category
	err := h.keep(func() error {
		if err := h.FindCategory(name); err != nil {
			return err
		}
		var err error
		c, err = h.flattenCategory()
		return err
	})
	return c, err
}

// CategoryAt returns a snapshot of category i in the current category scope.
func (h *Handle) CategoryAt(i int) (Category, error) {
	var c Category
	err := h.keep(func() error {
		if err := h.SelectCategory(i); err != nil {
			return err
		}
		var err error
		c, err = h.flattenCategory()
		return err
	})
	return c, err
}

func (h *Handle) flattenBlock() (Block, error) {
	name, err := h.DatablockName()
	if err != nil {
		return Block{}, err
	}
	b := Block{Name: name, Categories: []Category{}}

	// A rewound saveframe cursor puts the category scope on the block.
	if err := h.RewindSaveframe(); err != nil {
		return b, err
	}
	if b.Categories, err = h.flattenCategories(); err != nil {
		return b, err
	}

	err = h.each(LevelSaveframe, func() error {
		name, err := h.SaveframeName()
		if err != nil {
			return err
		}
		cats, err := h.flattenCategories()
		b.Saveframes = append(b.Saveframes, Saveframe{Name: name, Categories: cats})
		return err
	})
	return b, err
}

func (h *Handle) flattenCategories() ([]Category, error) {
	cats := []Category{}
	err := h.each(LevelCategory, func() error {
		c, err := h.flattenCategory()
		cats = append(cats, c)
		return err
	})
	return cats, err
}

// flattenCategory snapshots the current category. Each column's type is the
// kind of its first cell; an empty category reports absent.
func (h *Handle) flattenCategory() (Category, error) {
	name, err := h.CategoryName()
	if err != nil {
		return Category{}, err
	}
	rows, err := h.CountRows()
	if err != nil {
		return Category{}, err
	}
	c := Category{
		Name:    name,
		Columns: []string{},
		Types:   []ValueKind{},
		Values:  make(map[string][]any),
	}

	err = h.each(LevelColumn, func() error {
		col, err := h.ColumnName()
		if err != nil {
			return err
		}
		values := make([]any, 0, rows)
		kind := KindAbsent
		err = h.each(LevelRow, func() error {
			v, k, err := h.Get()
			if err != nil {
				return err
			}
			if len(values) == 0 {
				kind = k
			}
			values = append(values, v)
			return nil
		})
		c.Columns = append(c.Columns, col)
		c.Types = append(c.Types, kind)
		c.Values[col] = values
		return err
	})
	return c, err
}
