package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealFileSystem_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schemas: []\n"), 0o644))

	fs := NewRealFileSystem()
	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "schemas: []\n", string(data))

	assert.True(t, fs.Exists(path))
	assert.False(t, fs.Exists(filepath.Join(dir, "missing.yaml")))

	_, err = fs.ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestRealFileSystem_MaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"uuid":"0x1234"}`), 0o644))

	fs := NewRealFileSystem().WithMaxSize(4)
	_, err := fs.ReadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "larger than 4 bytes")

	fs = NewRealFileSystem().WithMaxSize(17)
	_, err = fs.ReadFile(path)
	assert.NoError(t, err)
}

func TestRealFileSystem_ModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schemas: []\n"), 0o644))

	want := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, want, want))

	fs := NewRealFileSystem()
	got, err := fs.ModTime(path)
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	_, err = fs.ModTime(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
