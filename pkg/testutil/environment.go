// pkg/testutil/environment.go
// DEPENDENCIES: filesystem, paths
// PURPOSE: Orchestrate test environments with a seeded data directory

package testutil

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/mclaunch/pkg/filesystem"
	"github.com/arthur-debert/mclaunch/pkg/paths"
	"github.com/arthur-debert/mclaunch/pkg/types"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment provides a filesystem and directory layout for a test
type TestEnvironment struct {
	DataDir   string
	ConfigDir string

	FS    types.FS
	Paths paths.Paths

	Type EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		root := t.TempDir()
		env.DataDir = filepath.Join(root, "data")
		env.ConfigDir = filepath.Join(root, "config")
		env.FS = filesystem.NewOS()
	default:
		root := string(filepath.Separator) + "virtual"
		env.DataDir = filepath.Join(root, "data")
		env.ConfigDir = filepath.Join(root, "config")
		env.FS = filesystem.NewMemory()
	}

	p, err := paths.New(paths.Options{DataDir: env.DataDir, ConfigDir: env.ConfigDir})
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p

	for _, dir := range []string{p.CommonDir(), p.InstancesDir(), p.LibrariesDir(), env.ConfigDir} {
		if err := env.FS.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return env
}

// WriteFile writes content at path, creating parent directories
func (env *TestEnvironment) WriteFile(path string, content []byte) {
	env.t.Helper()
	if err := env.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		env.t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := env.FS.WriteFile(path, content, 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// WriteJSON writes v as JSON at path
func (env *TestEnvironment) WriteJSON(path string, v interface{}) {
	env.t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		env.t.Fatalf("Failed to marshal %s: %v", path, err)
	}
	env.WriteFile(path, data)
}

// WriteVersionManifest seeds versions/<id>/<id>.json
func (env *TestEnvironment) WriteVersionManifest(m *types.VersionManifest) string {
	env.t.Helper()
	path := env.Paths.VersionManifestPath(m.ID)
	env.WriteJSON(path, m)
	return path
}

// WriteDistribution writes a distribution index to the configured location
func (env *TestEnvironment) WriteDistribution(d *types.Distribution) string {
	env.t.Helper()
	path := env.Paths.DistributionPath()
	env.WriteJSON(path, d)
	return path
}

// LibraryPath returns the absolute path of a library-relative path
func (env *TestEnvironment) LibraryPath(rel string) string {
	return filepath.Join(env.Paths.LibrariesDir(), filepath.FromSlash(rel))
}
