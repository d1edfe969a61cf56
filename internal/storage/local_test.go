package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlob_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	blob, err := NewLocalBlob(filepath.Join(t.TempDir(), "certs"))
	require.NoError(t, err)

	_, err = blob.Get(ctx, "a.png")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, blob.Put(ctx, "a.png", []byte("png-bytes"), "image/png"))

	data, err := blob.Get(ctx, "a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	require.NoError(t, blob.Delete(ctx, "a.png"))
	_, err = blob.Get(ctx, "a.png")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing object is not an error
	assert.NoError(t, blob.Delete(ctx, "a.png"))
}

func TestLocalBlob_RejectsPathTraversal(t *testing.T) {
	ctx := context.Background()
	blob, err := NewLocalBlob(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", ".", "..", "../escape.png", "dir/file.png", `dir\file.png`} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, blob.Put(ctx, name, []byte("x"), ""), ErrInvalidName)
			_, err := blob.Get(ctx, name)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestLocalDocument_LoadMissingAndSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "ledger.json")
	doc, err := NewLocalDocument(path)
	require.NoError(t, err)

	var out []string
	found, err := doc.Load(ctx, &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, doc.Save(ctx, []string{"a", "b"}))

	found, err = doc.Load(ctx, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, out)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestLocalDocument_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "layouts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	doc, err := NewLocalDocument(path)
	require.NoError(t, err)

	var out map[string]any
	_, err = doc.Load(ctx, &out)
	assert.Error(t, err)
}
