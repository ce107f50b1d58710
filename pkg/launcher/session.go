package launcher

import (
	"github.com/arthur-debert/mclaunch/pkg/compiler"
	"github.com/arthur-debert/mclaunch/pkg/distribution"
	"github.com/arthur-debert/mclaunch/pkg/strategy"
	"github.com/arthur-debert/mclaunch/pkg/types"
)

// Session is the state of one launch
type Session struct {
	Server     *types.Server
	Runtime    *types.VersionManifest
	Loader     *distribution.LoaderManifest
	Credential types.Credential

	LibraryDir  string
	InstanceDir string
	NativesDir  string
	VersionJar  string

	// Mods are the user extensions enabled for this launch
	Mods      []*types.Module
	Classpath []string
	Strategy  strategy.Strategy

	Executable string
	Arguments  compiler.Arguments
	Detached   bool
}

// Argv returns the arguments passed to the executable
func (s *Session) Argv() []string {
	return s.Arguments.Argv()
}

// CommandLine returns the executable followed by its arguments
func (s *Session) CommandLine() []string {
	return append([]string{s.Executable}, s.Argv()...)
}

// VersionName is the version reported to the game: the loader's id when there is one
func (s *Session) VersionName() string {
	if s.Loader != nil && s.Loader.Manifest != nil {
		return s.Loader.Manifest.ID
	}
	return s.Runtime.ID
}
