package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/sweepgridgo/internal/fsutil"
)

func TestCollectFiles_SingleFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sweep.hcl")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	files, err := fsutil.CollectFiles(path, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestCollectFiles_DirectorySortedRecursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{"b.hcl", "a.hcl", "sub/c.hcl", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}

	files, err := fsutil.CollectFiles(dir, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "sub", "c.hcl"),
	}, files)
}

func TestCollectFiles_EmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := fsutil.CollectFiles(t.TempDir(), ".hcl")
	require.ErrorContains(t, err, "no .hcl files found")
}

func TestCollectFiles_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := fsutil.CollectFiles(filepath.Join(t.TempDir(), "nope"), ".hcl")
	require.Error(t, err)
}
