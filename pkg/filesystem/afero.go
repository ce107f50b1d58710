package filesystem

import (
	stderrors "errors"
	"io/fs"

	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS on top of an afero filesystem
type aferoFS struct {
	fs afero.Fs
}

// NewOS returns the host filesystem
func NewOS() types.FS {
	return &aferoFS{fs: afero.NewOsFs()}
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() types.FS {
	return &aferoFS{fs: afero.NewMemMapFs()}
}

// NewReadOnlyOS returns the host filesystem with every write refused.
// Commands that only inspect a launch use it.
func NewReadOnlyOS() types.FS {
	return &aferoFS{fs: afero.NewReadOnlyFs(afero.NewOsFs())}
}

// NewAferoFS wraps an existing afero filesystem
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) ReadFile(name string) ([]byte, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
	}
	return afero.ReadFile(a.fs, name)
}

func (a *aferoFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return afero.WriteFile(a.fs, name, data, perm)
}

func (a *aferoFS) MkdirAll(path string, perm fs.FileMode) error {
	return a.fs.MkdirAll(path, perm)
}

func (a *aferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *aferoFS) RemoveAll(path string) error {
	return a.fs.RemoveAll(path)
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	dirEntries := make([]fs.DirEntry, len(entries))
	for i, entry := range entries {
		dirEntries[i] = fs.FileInfoToDirEntry(entry)
	}
	return dirEntries, nil
}

// Exists reports whether path exists. Errors other than not-exist count as existing.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil || !stderrors.Is(err, fs.ErrNotExist)
}

// IsDir reports whether path exists and is a directory
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
