package resolver

import (
	"path/filepath"

	"github.com/arthur-debert/mclaunch/pkg/logging"
	"github.com/arthur-debert/mclaunch/pkg/rules"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/rs/zerolog"
)

// ModFilter decides whether a user extension takes part in the launch
type ModFilter func(*types.Module) bool

// Options configures a Resolver
type Options struct {
	// LibraryRoot anchors the relative artifact paths of distribution modules
	LibraryRoot string
	// RuntimeLibraryRoot anchors runtime library paths; defaults to LibraryRoot
	RuntimeLibraryRoot string
	// Env filters runtime libraries by their rules
	Env rules.Env
	// ModFilter excludes disabled user extensions along with their sub-modules
	ModFilter ModFilter
}

// Resolver flattens module trees and runtime libraries
type Resolver struct {
	libraryRoot        string
	runtimeLibraryRoot string
	env                rules.Env
	modFilter          ModFilter
	logger             zerolog.Logger
}

// Result is the flattened view of a module tree
type Result struct {
	// Libraries maps module identity to absolute path
	Libraries *Mapping
	// Mods are the enabled user extensions, in traversal order
	Mods []*types.Module
}

// New creates a new Resolver
func New(opts Options) *Resolver {
	runtimeRoot := opts.RuntimeLibraryRoot
	if runtimeRoot == "" {
		runtimeRoot = opts.LibraryRoot
	}
	return &Resolver{
		libraryRoot:        opts.LibraryRoot,
		runtimeLibraryRoot: runtimeRoot,
		env:                opts.Env,
		modFilter:          opts.ModFilter,
		logger:             logging.GetLogger("resolver"),
	}
}

// ResolveModules walks tree depth first
func (r *Resolver) ResolveModules(tree []*types.Module) Result {
	res := Result{Libraries: NewMapping()}
	for _, m := range tree {
		r.walk(m, &res)
	}
	r.logger.Debug().
		Int("libraries", res.Libraries.Len()).
		Int("mods", len(res.Mods)).
		Msg("Resolved module tree")
	return res
}

func (r *Resolver) walk(m *types.Module, res *Result) {
	if m == nil {
		return
	}
	switch {
	case m.Type.IsLibrary():
		if m.HasArtifactPath() {
			res.Libraries.Set(m.ID, r.abs(r.libraryRoot, m.Artifact.Path))
		} else {
			r.logger.Debug().Str("module", m.ID).Msg("Skipping library without artifact path")
		}
	case m.Type.IsUserExtension():
		if r.modFilter != nil && !r.modFilter(m) {
			r.logger.Debug().Str("module", m.ID).Msg("Skipping disabled extension")
			return
		}
		res.Mods = append(res.Mods, m)
	}
	for _, sub := range m.SubModules {
		r.walk(sub, res)
	}
}

// ResolveRuntime maps the runtime manifest's libraries that apply to the host
func (r *Resolver) ResolveRuntime(manifest *types.VersionManifest) *Mapping {
	libs := NewMapping()
	if manifest == nil {
		return libs
	}
	for _, lib := range rules.FilterLibraries(manifest.Libraries, r.env) {
		rel := lib.ArtifactPath()
		if rel == "" {
			continue
		}
		libs.Set(lib.Name, r.abs(r.runtimeLibraryRoot, rel))
	}
	return libs
}

// ResolveCoordinates maps maven coordinates to absolute paths under the library root
func (r *Resolver) ResolveCoordinates(coordinates []string) ([]string, error) {
	out := make([]string, 0, len(coordinates))
	for _, c := range coordinates {
		rel, err := MavenPath(c)
		if err != nil {
			return nil, err
		}
		out = append(out, r.abs(r.libraryRoot, rel))
	}
	return out, nil
}

func (r *Resolver) abs(root, rel string) string {
	return filepath.Clean(filepath.Join(root, filepath.FromSlash(rel)))
}
