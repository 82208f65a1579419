package cbf

import (
	"errors"
	"strings"
)

// ErrStopWalk stops Walk without reporting an error.
var ErrStopWalk = errors.New("stop walk")

// Path locates a category. Saveframe is empty for block-level categories.
type Path struct {
	Block     string
	Saveframe string
	Category  string
}

// String returns "block/category" or "block/saveframe/category".
func (p Path) String() string {
	parts := []string{p.Block}
	if p.Saveframe != "" {
		parts = append(parts, p.Saveframe)
	}
	return strings.Join(append(parts, p.Category), "/")
}

// WalkFunc is called for each category during Walk.
// err is any error encountered reading the category; c then holds what was
// read before the failure.
// Return nil to continue walking, ErrStopWalk to stop, or any other error
// to stop and return it.
type WalkFunc func(p Path, c Category, err error) error

// Walk visits every category of every datablock in document order,
// including categories inside saveframes. Cursors are restored afterwards.
//
// Example:
//
//	cbf.Walk(h, func(p cbf.Path, c cbf.Category, err error) error {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(p, len(c.Columns), "columns")
//	    return nil
//	})
func Walk(h *Handle, fn WalkFunc) error {
	err := h.keep(func() error {
		return h.each(LevelDatablock, func() error {
			return walkBlock(h, fn)
		})
	})
	if errors.Is(err, ErrStopWalk) {
		return nil
	}
	return err
}

func walkBlock(h *Handle, fn WalkFunc) error {
	block, err := h.DatablockName()
	if err != nil {
		return err
	}
	return h.each(LevelBlockItem, func() error {
		kind, err := h.BlockItemKind()
		if err != nil {
			return err
		}
		if kind == ItemCategory {
			return visit(h, fn, Path{Block: block})
		}
		frame, err := h.SaveframeName()
		if err != nil {
			return err
		}
		return h.each(LevelCategory, func() error {
			return visit(h, fn, Path{Block: block, Saveframe: frame})
		})
	})
}

func visit(h *Handle, fn WalkFunc, p Path) error {
	name, err := h.CategoryName()
	if err != nil {
		return err
	}
	p.Category = name
	c, err := h.flattenCategory()
	return fn(p, c, err)
}
