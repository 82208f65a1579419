package cif

import (
	"strings"

	"github.com/robert-malhotra/go-cbf/internal/mime"
)

// ValueKind classifies how a value was written.
type ValueKind string

const (
	KindAbsent ValueKind = ""     // no value in this row
	KindNull   ValueKind = "null" // unquoted "." or "?"
	KindBinary ValueKind = "bnry"
	KindWord   ValueKind = "word"
	KindDouble ValueKind = "dblq"
	KindSingle ValueKind = "sglq"
	KindText   ValueKind = "text"
)

// NoCategory holds items whose tag has no category part.
const NoCategory = "(none)"

// Value is a single cell.
type Value struct {
	Kind   ValueKind
	Text   string
	Binary *Binary // set when Kind is KindBinary
}

// Binary is a decoded binary section: its header and the still-compressed
// payload with any transfer encoding removed.
type Binary struct {
	Header  mime.Header
	Payload []byte
}

// Column is a named sequence of values, one per row.
type Column struct {
	Name   string
	Values []Value
}

// Category is a table of columns sharing a row count.
type Category struct {
	Name    string
	Columns []*Column
	Rows    int
}

// Column returns the index and column with the given name, or -1 and nil.
func (c *Category) Column(name string) (int, *Column) {
	for i, col := range c.Columns {
		if col.Name == name {
			return i, col
		}
	}
	return -1, nil
}

func (c *Category) column(name string) *Column {
	for _, col := range c.Columns {
		if strings.EqualFold(col.Name, name) {
			return col
		}
	}
	return nil
}

// addColumn appends a column padded with absent values to the row count.
func (c *Category) addColumn(name string) *Column {
	col := &Column{Name: name, Values: make([]Value, c.Rows)}
	c.Columns = append(c.Columns, col)
	return col
}

// addRows extends every column by n absent values.
func (c *Category) addRows(n int) {
	for _, col := range c.Columns {
		col.Values = append(col.Values, make([]Value, n)...)
	}
	c.Rows += n
}

// Saveframe is a named group of categories inside a data block.
type Saveframe struct {
	Name       string
	Categories []*Category
}

// Category returns the index and category with the given name, or -1 and nil.
func (s *Saveframe) Category(name string) (int, *Category) {
	return findCategory(s.Categories, name)
}

// ItemKind tells whether a block item is a category or a save frame.
type ItemKind int

const (
	ItemCategory ItemKind = iota
	ItemSaveframe
)

func (k ItemKind) String() string {
	if k == ItemSaveframe {
		return "saveframe"
	}
	return "category"
}

// Item is a block-level entry in document order. Index points into
// Block.Categories or Block.Saveframes depending on Kind.
type Item struct {
	Kind  ItemKind
	Index int
}

// Block is a data block.
type Block struct {
	Name       string
	Categories []*Category
	Saveframes []*Saveframe
	Items      []Item
}

// Category returns the index and block-level category with the given
// name, or -1 and nil.
func (b *Block) Category(name string) (int, *Category) {
	return findCategory(b.Categories, name)
}

// Saveframe returns the index and save frame with the given name, or -1
// and nil.
func (b *Block) Saveframe(name string) (int, *Saveframe) {
	for i, f := range b.Saveframes {
		if f.Name == name {
			return i, f
		}
	}
	return -1, nil
}

// Document is a parsed file.
type Document struct {
	Blocks []*Block
}

// Block returns the index and block with the given name, or -1 and nil.
func (d *Document) Block(name string) (int, *Block) {
	for i, b := range d.Blocks {
		if b.Name == name {
			return i, b
		}
	}
	return -1, nil
}

func findCategory(cats []*Category, name string) (int, *Category) {
	for i, c := range cats {
		if c.Name == name {
			return i, c
		}
	}
	return -1, nil
}

// SplitTag splits "_category.column" into its parts. A tag without a dot
// belongs to NoCategory.
func SplitTag(tag string) (category, column string) {
	tag = strings.TrimPrefix(tag, "_")
	category, column, ok := strings.Cut(tag, ".")
	if !ok {
		return NoCategory, tag
	}
	return category, column
}
