package distribution

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/logging"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a distribution index
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; anything but .yaml/.yml is JSON
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Options configures a Provider
type Options struct {
	FS    types.FS
	Paths types.Pather
}

// Provider reads manifests from the shared data directory
type Provider struct {
	fs     types.FS
	paths  types.Pather
	logger zerolog.Logger
}

// LoaderManifest pairs an extension loader module with its version manifest
type LoaderManifest struct {
	Module   *types.Module
	Manifest *types.VersionManifest
}

// New creates a new Provider
func New(opts Options) *Provider {
	return &Provider{
		fs:     opts.FS,
		paths:  opts.Paths,
		logger: logging.GetLogger("distribution"),
	}
}

// Parse decodes a distribution index and normalizes its module trees
func Parse(data []byte, format Format) (*types.Distribution, error) {
	var raw distributionNode
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "invalid YAML distribution")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrManifestParse, "invalid JSON distribution")
		}
	}

	dist := raw.normalize()
	seen := make(map[string]bool, len(dist.Servers))
	for i, s := range dist.Servers {
		if s.ID == "" {
			return nil, errors.Newf(errors.ErrManifestParse, "server #%d has no id", i)
		}
		if seen[s.ID] {
			return nil, errors.Newf(errors.ErrManifestParse, "duplicate server id %q", s.ID).
				WithDetail("server", s.ID)
		}
		seen[s.ID] = true
	}
	return dist, nil
}

// LoadDistribution reads and parses the distribution index at path
func (p *Provider) LoadDistribution(path string) (*types.Distribution, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read distribution %s", path).
			WithDetail("path", path)
	}
	dist, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, err
	}
	p.logger.Debug().
		Str("path", path).
		Int("servers", len(dist.Servers)).
		Msg("Loaded distribution")
	return dist, nil
}

// LoadVersionManifest reads versions/<id>/<id>.json from the shared directory
func (p *Provider) LoadVersionManifest(id string) (*types.VersionManifest, error) {
	if id == "" {
		return nil, errors.New(errors.ErrInvalidInput, "version id is empty")
	}
	return p.readVersionManifest(p.paths.VersionManifestPath(id))
}

// LoadLoaderManifest finds the extension loader of server and reads its
// version manifest. It returns nil when the server runs the bare runtime.
func (p *Provider) LoadLoaderManifest(server *types.Server) (*LoaderManifest, error) {
	loader := FindLoader(server)
	if loader == nil {
		return nil, nil
	}

	var vm *types.Module
	for _, sub := range loader.SubModules {
		if sub.Type == types.ModuleVersionManifest {
			vm = sub
			break
		}
	}
	if vm == nil || !vm.HasArtifactPath() {
		return nil, errors.Newf(errors.ErrManifestLoad, "loader %s declares no version manifest", loader.ID).
			WithDetail("module", loader.ID)
	}

	// Seeded manifests live under versions/<id>/<id>.json; fall back to the artifact path
	id := strings.TrimSuffix(filepath.Base(vm.Artifact.Path), filepath.Ext(vm.Artifact.Path))
	candidates := []string{
		p.paths.VersionManifestPath(id),
		filepath.Join(p.paths.CommonDir(), filepath.FromSlash(vm.Artifact.Path)),
	}

	var lastErr error
	for _, path := range candidates {
		manifest, err := p.readVersionManifest(path)
		if err == nil {
			p.logger.Debug().
				Str("loader", loader.ID).
				Str("manifest", manifest.ID).
				Str("path", path).
				Msg("Loaded loader manifest")
			return &LoaderManifest{Module: loader, Manifest: manifest}, nil
		}
		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			return nil, err
		}
		lastErr = err
	}
	return nil, errors.Wrapf(lastErr, errors.ErrManifestLoad, "no manifest found for loader %s", loader.ID).
		WithDetail("module", loader.ID)
}

// FindLoader returns the first top-level extension loader module of server
func FindLoader(server *types.Server) *types.Module {
	if server == nil {
		return nil
	}
	for _, m := range server.Modules {
		if m.Type.IsLoader() {
			return m
		}
	}
	return nil
}

func (p *Provider) readVersionManifest(path string) (*types.VersionManifest, error) {
	data, err := p.fs.ReadFile(path)
	if err != nil {
		code := errors.ErrManifestLoad
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.ErrNotFound
		}
		return nil, errors.Wrapf(err, code, "cannot read version manifest %s", path).
			WithDetail("path", path)
	}
	var manifest types.VersionManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "invalid version manifest %s", path).
			WithDetail("path", path)
	}
	if manifest.ID == "" {
		return nil, errors.Newf(errors.ErrManifestParse, "version manifest %s has no id", path).
			WithDetail("path", path)
	}
	return &manifest, nil
}
