package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/natefinch/atomic"

	"github.com/robert-malhotra/go-cbf/cbf"
	"github.com/robert-malhotra/go-cbf/internal/config"
)

// binaryPlaceholder replaces arrays when arrays are not exported.
const binaryPlaceholder = "<binary>"

// Arrays rewrites every array cell according to mode: full keeps elements,
// summary replaces them with an ArraySummary and none with "<binary>". The
// input is not modified.
func Arrays(blocks []cbf.Block, mode string) ([]cbf.Block, error) {
	switch mode {
	case config.ArraysFull:
		return blocks, nil
	case config.ArraysSummary, config.ArraysNone:
	default:
		return nil, fmt.Errorf("unknown arrays mode %q", mode)
	}

	out := make([]cbf.Block, len(blocks))
	for i, b := range blocks {
		out[i] = cbf.Block{Name: b.Name, Categories: rewriteCategories(b.Categories, mode)}
		for _, f := range b.Saveframes {
			out[i].Saveframes = append(out[i].Saveframes, cbf.Saveframe{
				Name:       f.Name,
				Categories: rewriteCategories(f.Categories, mode),
			})
		}
	}
	return out, nil
}

func rewriteCategories(cats []cbf.Category, mode string) []cbf.Category {
	out := make([]cbf.Category, len(cats))
	for i, c := range cats {
		values := make(map[string][]any, len(c.Values))
		for col, cells := range c.Values {
			rewritten := make([]any, len(cells))
			for j, v := range cells {
				a, ok := v.(cbf.Array)
				switch {
				case !ok:
					rewritten[j] = v
				case mode == config.ArraysNone:
					rewritten[j] = binaryPlaceholder
				default:
					rewritten[j] = Summarize(a)
				}
			}
			values[col] = rewritten
		}
		out[i] = cbf.Category{Name: c.Name, Columns: c.Columns, Types: c.Types, Values: values}
	}
	return out
}

// EncodeJSON writes blocks as indented JSON.
func EncodeJSON(w io.Writer, blocks []cbf.Block, mode string) error {
	rewritten, err := Arrays(blocks, mode)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rewritten); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return nil
}

// WriteJSON writes blocks to path atomically, so readers never observe a
// partial file.
func WriteJSON(path string, blocks []cbf.Block, mode string) error {
	var buf bytes.Buffer
	if err := EncodeJSON(&buf, blocks, mode); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
