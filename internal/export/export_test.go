package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-malhotra/go-cbf/cbf"
	"github.com/robert-malhotra/go-cbf/internal/config"
)

func sampleBlocks() []cbf.Block {
	arr := cbf.NewDense(cbf.Shape{2, 2}, []int32{1, 2, 3, 4})
	return []cbf.Block{{
		Name: "image",
		Categories: []cbf.Category{
			{
				Name:    "array_data",
				Columns: []string{"array_id", "data"},
				Types:   []cbf.ValueKind{cbf.KindWord, cbf.KindBinary},
				Values: map[string][]any{
					"array_id": {"image_1", nil},
					"data":     {arr, arr},
				},
			},
		},
		Saveframes: []cbf.Saveframe{{
			Name: "frame",
			Categories: []cbf.Category{{
				Name:    "item",
				Columns: []string{"name"},
				Types:   []cbf.ValueKind{cbf.KindSingle},
				Values:  map[string][]any{"name": {"_a.b"}},
			}},
		}},
	}}
}

func TestDigest(t *testing.T) {
	a := cbf.NewDense(cbf.Shape{2}, []int32{1, 2})
	b := cbf.NewDense(cbf.Shape{2}, []int32{1, 3})
	assert.Len(t, Digest(a), 64)
	assert.Equal(t, Digest(a), Digest(cbf.NewDense(cbf.Shape{1, 2}, []int32{1, 2})))
	assert.NotEqual(t, Digest(a), Digest(b))
}

func TestArraysModes(t *testing.T) {
	blocks := sampleBlocks()

	full, err := Arrays(blocks, config.ArraysFull)
	require.NoError(t, err)
	assert.Equal(t, blocks, full)

	none, err := Arrays(blocks, config.ArraysNone)
	require.NoError(t, err)
	assert.Equal(t, []any{"<binary>", "<binary>"}, none[0].Categories[0].Values["data"])
	assert.Equal(t, []any{"image_1", nil}, none[0].Categories[0].Values["array_id"])
	assert.Equal(t, "frame", none[0].Saveframes[0].Name)

	summary, err := Arrays(blocks, config.ArraysSummary)
	require.NoError(t, err)
	s, ok := summary[0].Categories[0].Values["data"][0].(ArraySummary)
	require.True(t, ok)
	assert.Equal(t, cbf.Shape{2, 2}, s.Shape)
	assert.Equal(t, "int32", s.DType)
	assert.Equal(t, 4, s.Len)

	// The input is untouched.
	_, isArray := blocks[0].Categories[0].Values["data"][0].(cbf.Array)
	assert.True(t, isArray)

	_, err = Arrays(blocks, "everything")
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, sampleBlocks(), config.ArraysFull))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "image", got[0]["name"])

	cats := got[0]["categories"].([]any)
	cat := cats[0].(map[string]any)
	assert.Equal(t, []any{"word", "bnry"}, cat["columns~type"])
	arr := cat["values"].(map[string]any)["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "int32", arr["dtype"])
	assert.Equal(t, []any{1.0, 2.0, 3.0, 4.0}, arr["data"])
}

func TestEncodeJSONNoBlocks(t *testing.T) {
	for _, mode := range []string{config.ArraysFull, config.ArraysSummary, config.ArraysNone} {
		var buf bytes.Buffer
		require.NoError(t, EncodeJSON(&buf, []cbf.Block{}, mode))
		assert.JSONEq(t, `[]`, buf.String(), mode)
	}
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	ctx := context.Background()
	require.NoError(t, WriteSQLite(ctx, path, sampleBlocks(), true))

	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	var tables int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM categories`).Scan(&tables))
	assert.Equal(t, 2, tables)

	rows, err := db.QueryContext(ctx, `SELECT row_index, "array_id", "data" FROM "image__array_data" ORDER BY row_index`)
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		index int
		id    sql.NullString
		data  string
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.index, &r.id, &r.data))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []row{
		{0, sql.NullString{String: "image_1", Valid: true}, "array:1"},
		{1, sql.NullString{}, "array:2"},
	}, got)

	var dtype, shape, digest string
	var blob []byte
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT dtype, shape, blake3, data FROM arrays WHERE id = 1`).Scan(&dtype, &shape, &digest, &blob))
	assert.Equal(t, "int32", dtype)
	assert.Equal(t, "[2,2]", shape)
	assert.Len(t, digest, 64)
	assert.Len(t, blob, 16)

	var name string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT "name" FROM "image__frame__item"`).Scan(&name))
	assert.Equal(t, "_a.b", name)
}

func TestTableName(t *testing.T) {
	assert.Equal(t, "b__c", TableName(cbf.Path{Block: "b", Category: "c"}))
	assert.Equal(t, "b__f__c", TableName(cbf.Path{Block: "b", Saveframe: "f", Category: "c"}))
	assert.Equal(t, `"a""b"`, quote(`a"b`))
}
