package cbf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-cbf/internal/cbftest"
)

func TestWalk(t *testing.T) {
	h := mustParse(t, append(frameDoc(), textDoc()...))

	var paths []string
	err := Walk(h, func(p Path, c Category, err error) error {
		if err != nil {
			return err
		}
		assert.Equal(t, p.Category, c.Name)
		paths = append(paths, p.String())
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dict/dictionary",
		"dict/frame_a/item",
		"dict/frame_a/enum",
		"dict/other",
		"first/items",
		"first/entry",
		"second/entry",
	}, paths)
}

func TestWalkStop(t *testing.T) {
	h := mustParse(t, textDoc())

	count := 0
	err := Walk(h, func(Path, Category, error) error {
		count++
		return ErrStopWalk
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	custom := errors.New("custom")
	err = Walk(h, func(Path, Category, error) error { return custom })
	assert.ErrorIs(t, err, custom)
}

func TestWalkReportsCategoryErrors(t *testing.T) {
	arr := cbftest.Int32s(1)
	arr.Conversions = "x-CBF_CANONICAL"
	data := append(arrayDoc(arr), []byte("data_next\n_entry.id next\n")...)
	h := mustParse(t, data)

	var failed []string
	var seen []string
	err := Walk(h, func(p Path, c Category, err error) error {
		if err != nil {
			assert.ErrorIs(t, err, ErrFault)
			failed = append(failed, p.String())
			return nil
		}
		seen = append(seen, p.String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"image/array_data"}, failed)
	assert.Equal(t, []string{"next/entry"}, seen)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		cat     string
		col     string
		wantErr bool
	}{
		{"_array_data.data", "array_data", "data", false},
		{"_diffrn.id", "diffrn", "id", false},
		{"_plain", NoCategory, "plain", false},
		{"array_data.data", "", "", true},
		{"_", "", "", true},
		{"_.x", "", "", true},
		{"_cat.", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			cat, col, err := ParseTag(tt.tag)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.tag)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.tag, err)
			}
			if cat != tt.cat || col != tt.col {
				t.Errorf("ParseTag(%q) = %q, %q; want %q, %q", tt.tag, cat, col, tt.cat, tt.col)
			}
		})
	}
}

func TestJoinTag(t *testing.T) {
	tests := []struct {
		cat, col, want string
	}{
		{"array_data", "data", "_array_data.data"},
		{NoCategory, "plain", "_plain"},
	}
	for _, tt := range tests {
		if got := JoinTag(tt.cat, tt.col); got != tt.want {
			t.Errorf("JoinTag(%q, %q) = %q, want %q", tt.cat, tt.col, got, tt.want)
		}
	}
}
