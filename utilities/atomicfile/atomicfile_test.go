package atomicfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/risolvipro/HEBitmap/utilities/atomicfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDir(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.heb")

	require.NoError(t, atomicfile.WriteFile(path, []byte{1, 2, 3}, 0o644))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, []string{"frame.heb"}, listDir(t, dir), "temporary file left behind")

	// Overwriting replaces the contents entirely.
	require.NoError(t, atomicfile.WriteFile(path, []byte{9}, 0o644))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, data)
}

func TestWriteFile__MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "frame.heb")
	assert.Error(t, atomicfile.WriteFile(path, []byte{1}, 0o644))
}

func TestWriteFile__RenameFailsCleansUp(t *testing.T) {
	dir := t.TempDir()
	// Renaming a file over a non-empty directory fails on every platform.
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))

	err := atomicfile.WriteFile(target, []byte{1}, 0o644)
	require.Error(t, err)
	assert.Equal(t, []string{"taken"}, listDir(t, dir), "temporary file left behind")
}

func TestDirectory__Commit(t *testing.T) {
	dir := t.TempDir()
	final := filepath.Join(dir, "frames")

	staged, err := atomicfile.NewDirectory(final)
	require.NoError(t, err)
	defer staged.Abort()

	require.NoError(t, os.WriteFile(staged.Path("a.png"), []byte{1}, 0o644))
	_, err = os.Stat(final)
	assert.True(t, os.IsNotExist(err), "directory visible before commit")

	require.NoError(t, staged.Commit())
	assert.Equal(t, []string{"a.png"}, listDir(t, final))
	assert.NoError(t, staged.Abort())
	assert.Equal(t, []string{"frames"}, listDir(t, dir))
}

func TestDirectory__Abort(t *testing.T) {
	dir := t.TempDir()

	staged, err := atomicfile.NewDirectory(filepath.Join(dir, "frames"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(staged.Path("a.png"), []byte{1}, 0o644))

	require.NoError(t, staged.Abort())
	assert.Empty(t, listDir(t, dir))
}
