package types

import (
	"io/fs"
)

// FS is the filesystem interface required for launcher operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
}

// Pather provides the directory layout used by a launch
type Pather interface {
	// DataDir returns the XDG data directory for the launcher
	DataDir() string

	// CommonDir returns the directory shared by all servers (libraries, versions, assets)
	CommonDir() string

	// InstancesDir returns the directory holding one game directory per server
	InstancesDir() string

	// LibrariesDir returns the shared library root
	LibrariesDir() string

	// AssetsDir returns the shared assets root
	AssetsDir() string

	// InstanceDir returns the game directory of a server
	InstanceDir(serverID string) string

	// VersionJarPath returns the client jar of a runtime version
	VersionJarPath(versionID string) string

	// VersionManifestPath returns the manifest file of a runtime version
	VersionManifestPath(versionID string) string
}
