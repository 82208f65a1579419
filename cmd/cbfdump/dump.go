package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robert-malhotra/go-cbf/cbf"
	"github.com/robert-malhotra/go-cbf/internal/config"
	"github.com/robert-malhotra/go-cbf/internal/dtype"
	"github.com/robert-malhotra/go-cbf/internal/export"
)

// dump prints every category of the selected datablock, row by row.
func dump(h *cbf.Handle, cfg config.Config, w io.Writer) error {
	blocks, err := h.CountDatablocks()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Found %d datablocks\n", blocks)

	index, err := h.Position(cbf.LevelDatablock)
	if err != nil {
		return err
	}
	name, err := h.DatablockName()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Datablock %d is named %s\n", index, name)

	categories, err := h.CountCategories()
	if err != nil {
		return err
	}
	for i := 0; i < categories; i++ {
		if err := h.SelectCategory(i); err != nil {
			return err
		}
		if err := dumpCategory(h, cfg, w, i); err != nil {
			return err
		}
	}
	return nil
}

func dumpCategory(h *cbf.Handle, cfg config.Config, w io.Writer, i int) error {
	name, err := h.CategoryName()
	if err != nil {
		return err
	}
	rows, err := h.CountRows()
	if err != nil {
		return err
	}
	cols, err := h.CountColumns()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Category: %d Name: %s Rows: %d Cols: %d\n", i, name, rows, cols)

	header := "Row#"
	for k := 0; k < cols; k++ {
		if err := h.SelectColumn(k); err != nil {
			return err
		}
		col, err := h.ColumnName()
		if err != nil {
			return err
		}
		header += fmt.Sprintf(" %q", col)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for j := 0; j < rows; j++ {
		if err := h.SelectRow(j); err != nil {
			return err
		}
		fmt.Fprintf(w, "%d:", j)
		var arrays []string
		for k := 0; k < cols; k++ {
			if err := h.SelectColumn(k); err != nil {
				return err
			}
			kind, err := h.TypeOfValue()
			if err != nil {
				return err
			}
			if kind != cbf.KindBinary {
				text, err := h.Value()
				if err != nil {
					return err
				}
				fmt.Fprintf(w, " %q:%s,", text, kindName(kind))
				continue
			}
			fmt.Fprint(w, " <binary>,")
			lines, err := describeArray(h, cfg)
			if err != nil {
				return err
			}
			arrays = append(arrays, lines...)
		}
		fmt.Fprintln(w)
		for _, line := range arrays {
			fmt.Fprintln(w, "   "+line)
		}
	}
	fmt.Fprintln(w)
	return nil
}

func kindName(k cbf.ValueKind) string {
	if k == cbf.KindAbsent {
		return "absent"
	}
	return string(k)
}

// describeArray returns the parameter and content lines for the binary cell
// under the cursor. Decode faults are reported inline.
func describeArray(h *cbf.Handle, cfg config.Config) ([]string, error) {
	p, err := h.ArrayParameters()
	if errors.Is(err, cbf.ErrFault) {
		return []string{"error: " + err.Error()}, nil
	}
	if err != nil {
		return nil, err
	}
	lines := []string{formatParams(p)}
	if cfg.Arrays == config.ArraysNone {
		return lines, nil
	}

	a, err := h.Binary()
	if errors.Is(err, cbf.ErrFault) {
		return append(lines, "error: "+err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	s := export.Summarize(a)
	lines = append(lines, fmt.Sprintf("shape: %v dtype: %s blake3: %s", s.Shape, s.DType, s.BLAKE3))

	limit := cfg.Preview
	if cfg.Arrays == config.ArraysFull {
		limit = a.Len()
	}
	if limit > 0 {
		lines = append(lines, "data: "+preview(a, limit))
	}
	return lines, nil
}

func formatParams(p cbf.ArrayParameters) string {
	return fmt.Sprintf("compression=%s id=%d elsize=%d signed=%t unsigned=%t real=%t source=%s order=%s elements=%d dims=(%d, %d, %d) padding=%d",
		p.Compression, p.BinaryID, p.ElementSize, p.Signed, p.Unsigned, p.Real, sourceType(p), p.ByteOrder,
		p.Elements, p.DimSlow, p.DimMid, p.DimFast, p.Padding)
}

// sourceType names the Go type of the stored elements.
func sourceType(p cbf.ArrayParameters) string {
	t, err := dtype.GoType(dtype.Element{Size: p.ElementSize, Signed: p.Signed, Real: p.Real})
	if err != nil {
		return "unknown"
	}
	return t.String()
}

// preview formats the first n elements.
func preview(a cbf.Array, n int) string {
	var parts []string
	switch d := a.(type) {
	case *cbf.Dense[int32]:
		parts = formatValues(d.Data(), n)
	case *cbf.Dense[uint32]:
		parts = formatValues(d.Data(), n)
	case *cbf.Dense[float64]:
		parts = formatValues(d.Data(), n)
	}
	if a.Len() > n {
		parts = append(parts, "...")
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatValues[T cbf.Element](data []T, n int) []string {
	if n > len(data) {
		n = len(data)
	}
	out := make([]string, n)
	for i, v := range data[:n] {
		out[i] = fmt.Sprint(v)
	}
	return out
}
