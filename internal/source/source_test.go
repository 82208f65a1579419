package source

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const doc = "data_test\n_entry.id test\n"

func TestReadPlain(t *testing.T) {
	data, c, err := Read(bytes.NewReader([]byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, Plain, c)
	assert.Equal(t, doc, string(data))
}

func TestReadShortInput(t *testing.T) {
	data, c, err := Read(bytes.NewReader([]byte("x")))
	require.NoError(t, err)
	assert.Equal(t, Plain, c)
	assert.Equal(t, "x", string(data))
}

func TestReadGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data, c, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, Gzip, c)
	assert.Equal(t, doc, string(data))
}

func TestReadXZ(t *testing.T) {
	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	_, err = xw.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, xw.Close())

	data, c, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, XZ, c)
	assert.Equal(t, doc, string(data))
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.cbf")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	data, _, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc, string(data))

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.cbf"))
	assert.Error(t, err)
}

func TestDetect(t *testing.T) {
	assert.Equal(t, Bzip2, Detect([]byte("BZh91AY")))
	assert.Equal(t, Plain, Detect(nil))
	assert.Equal(t, "xz", XZ.String())
}
