package fileio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCompressed(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"fusion-dgd.tsv.gz", true},
		{"archive.tgz", true},
		{"fusion-dgd.tsv", false},
		{"hgnc_complete_set.txt", false},
		{"-", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCompressed(tt.path))
		})
	}
}

func TestCreateOpen_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, "FusionName\tGene1A\nA--B\tA\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FusionName\tGene1A\nA--B\tA\n", string(raw))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, string(raw), string(got))
}

func TestCreateOpen_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv.gz")
	content := "FusionName\tGene1A\nA--B\tA\n"

	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// The file on disk must be a real gzip stream.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	raw, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open("/nonexistent/hgnc_complete_set.txt")
	assert.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_CorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tsv.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip at all"), 0644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hgnc.txt")
	require.NoError(t, os.WriteFile(path, []byte("prev_symbol\tsymbol\n"), 0644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, fp.Path)
	assert.Equal(t, int64(19), fp.Size)
	assert.False(t, fp.ModTime.IsZero())

	_, err = StatFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCreate_PlainWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	w, err := Create(path)
	require.NoError(t, err)
	defer w.Close()

	_, err = io.WriteString(w, "FusionName\n")
	require.NoError(t, err)

	// Buffering is left to the caller, so the bytes are on disk before Close.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FusionName\n", string(raw))
}
