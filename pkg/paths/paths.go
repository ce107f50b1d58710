package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/types"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for the launcher
	EnvDataDir = "MCLAUNCH_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for the launcher
	EnvConfigDir = "MCLAUNCH_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files. These mirror the layout the distribution
// manifest encodes its relative artifact paths against.
const (
	AppDirName = "mclaunch"

	CommonDirName     = "common"
	InstancesDirName  = "instances"
	LibrariesDirName  = "libraries"
	VersionsDirName   = "versions"
	AssetsDirName     = "assets"
	LogConfigsDirName = "log_configs"

	ConfigFileName       = "config.toml"
	DistributionFileName = "distribution.json"
)

// Options relocates parts of the layout. Empty fields keep the defaults.
type Options struct {
	DataDir      string
	ConfigDir    string
	CommonDir    string
	InstancesDir string
}

// Paths provides centralized path management for the launcher
type Paths interface {
	types.Pather
	ConfigDir() string
	ConfigFilePath() string
	DistributionPath() string
	VersionDir(versionID string) string
	NativesRoot(folder string) string
	LogConfigPath(fileID string) string
}

type paths struct {
	dataDir      string
	configDir    string
	commonDir    string
	instancesDir string
}

// New creates a new Paths instance. Directories come from opts first, then
// from the MCLAUNCH_* environment overrides, then from XDG defaults.
func New(opts Options) (Paths, error) {
	p := &paths{}

	p.dataDir = firstNonEmpty(opts.DataDir, os.Getenv(EnvDataDir))
	if p.dataDir == "" {
		p.dataDir = filepath.Join(xdg.DataHome, AppDirName)
	}
	p.configDir = firstNonEmpty(opts.ConfigDir, os.Getenv(EnvConfigDir))
	if p.configDir == "" {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	p.commonDir = opts.CommonDir
	if p.commonDir == "" {
		p.commonDir = filepath.Join(p.dataDir, CommonDirName)
	}
	p.instancesDir = opts.InstancesDir
	if p.instancesDir == "" {
		p.instancesDir = filepath.Join(p.dataDir, InstancesDirName)
	}

	for _, dir := range []*string{&p.dataDir, &p.configDir, &p.commonDir, &p.instancesDir} {
		abs, err := filepath.Abs(ExpandHome(*dir))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// ExpandHome expands ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// DataDir returns the XDG data directory for the launcher
func (p *paths) DataDir() string {
	return p.dataDir
}

// ConfigDir returns the XDG config directory for the launcher
func (p *paths) ConfigDir() string {
	return p.configDir
}

// ConfigFilePath returns the user configuration file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// DistributionPath returns the default location of the distribution index
func (p *paths) DistributionPath() string {
	return filepath.Join(p.dataDir, DistributionFileName)
}

func (p *paths) CommonDir() string {
	return p.commonDir
}

func (p *paths) InstancesDir() string {
	return p.instancesDir
}

func (p *paths) LibrariesDir() string {
	return filepath.Join(p.commonDir, LibrariesDirName)
}

func (p *paths) AssetsDir() string {
	return filepath.Join(p.commonDir, AssetsDirName)
}

func (p *paths) InstanceDir(serverID string) string {
	return filepath.Join(p.instancesDir, serverID)
}

// VersionDir returns <common>/versions/<id>
func (p *paths) VersionDir(versionID string) string {
	return filepath.Join(p.commonDir, VersionsDirName, versionID)
}

func (p *paths) VersionJarPath(versionID string) string {
	return filepath.Join(p.VersionDir(versionID), versionID+".jar")
}

func (p *paths) VersionManifestPath(versionID string) string {
	return filepath.Join(p.VersionDir(versionID), versionID+".json")
}

// NativesRoot returns the temporary folder holding per-launch natives directories
func (p *paths) NativesRoot(folder string) string {
	return filepath.Join(os.TempDir(), folder)
}

// LogConfigPath returns where a runtime's logger configuration file is kept
func (p *paths) LogConfigPath(fileID string) string {
	return filepath.Join(p.AssetsDir(), LogConfigsDirName, fileID)
}
