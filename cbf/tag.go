package cbf

import (
	"fmt"
	"strings"

	"github.com/robert-malhotra/go-cbf/internal/cif"
)

// NoCategory is the category of tags written without a dot.
const NoCategory = cif.NoCategory

// ParseTag splits a tag into category and column.
//
// Examples:
//   - "_array_data.data" -> "array_data", "data"
//   - "_diffrn.id" -> "diffrn", "id"
//   - "_plain" -> "(none)", "plain"
//
// Returns an error if the tag does not start with an underscore or has an
// empty part.
func ParseTag(tag string) (category, column string, err error) {
	if !strings.HasPrefix(tag, "_") || len(tag) == 1 {
		return "", "", fmt.Errorf("tag must start with '_' and have a name: %q", tag)
	}
	category, column = cif.SplitTag(tag)
	if category == "" || column == "" {
		return "", "", fmt.Errorf("tag has an empty category or column: %q", tag)
	}
	return category, column, nil
}

// JoinTag builds a tag from category and column.
func JoinTag(category, column string) string {
	if category == NoCategory {
		return "_" + column
	}
	return "_" + category + "." + column
}

// FindTag positions the category and column cursors on tag within the
// current category scope.
func (h *Handle) FindTag(tag string) error {
	category, column, err := ParseTag(tag)
	if err != nil {
		return check(opFind, LevelColumn, statusArgument, tag, -1, err)
	}
	if err := h.FindCategory(category); err != nil {
		return err
	}
	return h.FindColumn(column)
}
