package filesystem_test

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/mclaunch/pkg/filesystem"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseFS(t *testing.T, fsys types.FS, root string) {
	dir := filepath.Join(root, "versions", "1.21.1")
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	require.NoError(t, fsys.MkdirAll(dir, 0755), "MkdirAll is idempotent")
	assert.True(t, filesystem.IsDir(fsys, dir))

	file := filepath.Join(dir, "1.21.1.json")
	assert.False(t, filesystem.Exists(fsys, file))
	require.NoError(t, fsys.WriteFile(file, []byte(`{"id":"1.21.1"}`), 0644))
	assert.True(t, filesystem.Exists(fsys, file))
	assert.False(t, filesystem.IsDir(fsys, file))

	data, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1.21.1"}`, string(data))

	_, err = fsys.ReadFile(dir)
	assert.Error(t, err, "reading a directory fails")

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.21.1.json", entries[0].Name())

	require.NoError(t, fsys.Remove(file))
	assert.False(t, filesystem.Exists(fsys, file))

	require.NoError(t, fsys.RemoveAll(filepath.Join(root, "versions")))
	assert.False(t, filesystem.Exists(fsys, dir))
}

func TestMemoryFS(t *testing.T) {
	exerciseFS(t, filesystem.NewMemory(), "/data")
}

func TestOSFS(t *testing.T) {
	exerciseFS(t, filesystem.NewOS(), t.TempDir())
}

func TestReadOnlyOS(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "distribution.json")
	require.NoError(t, filesystem.NewOS().WriteFile(file, []byte(`{}`), 0644))

	ro := filesystem.NewReadOnlyOS()

	data, err := ro.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))

	assert.Error(t, ro.WriteFile(file, []byte(`[]`), 0644))
	assert.Error(t, ro.MkdirAll(filepath.Join(root, "natives"), 0755))
	assert.Error(t, ro.RemoveAll(file))
	assert.True(t, filesystem.Exists(ro, file))
}
