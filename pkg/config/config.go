package config

import (
	"github.com/arthur-debert/mclaunch/pkg/errors"
)

// Launcher identifies the launcher to the game (brand and version strings)
type Launcher struct {
	Name    string `koanf:"name" toml:"name"`
	Version string `koanf:"version" toml:"version"`
}

// Directories relocates the on-disk layout
type Directories struct {
	Data      string `koanf:"data" toml:"data"`
	Common    string `koanf:"common" toml:"common"`
	Instances string `koanf:"instances" toml:"instances"`
	// TempNatives is the folder name under the OS temp dir holding per-launch natives
	TempNatives string `koanf:"temp_natives" toml:"temp_natives"`
}

// Distribution locates the distribution index
type Distribution struct {
	Path string `koanf:"path" toml:"path"`
}

// Java holds the runtime executable and heap sizing defaults
type Java struct {
	Executable string `koanf:"executable" toml:"executable"`
	MinRAM     string `koanf:"min_ram" toml:"min_ram"`
	MaxRAM     string `koanf:"max_ram" toml:"max_ram"`
}

// Launch holds process supervision preferences
type Launch struct {
	Detached bool `koanf:"detached" toml:"detached"`
}

// Game holds in-game options that feed argument features
type Game struct {
	CustomResolution bool `koanf:"custom_resolution" toml:"custom_resolution"`
	ResolutionWidth  int  `koanf:"resolution_width" toml:"resolution_width"`
	ResolutionHeight int  `koanf:"resolution_height" toml:"resolution_height"`
	Autoconnect      bool `koanf:"autoconnect" toml:"autoconnect"`
}

// ModOverride enables or disables an optional mod
type ModOverride struct {
	ID      string `koanf:"id" toml:"id"`
	Enabled bool   `koanf:"enabled" toml:"enabled"`
}

// Server holds per-server overrides
type Server struct {
	JavaExecutable string        `koanf:"java_executable" toml:"java_executable,omitempty"`
	MinRAM         string        `koanf:"min_ram" toml:"min_ram,omitempty"`
	MaxRAM         string        `koanf:"max_ram" toml:"max_ram,omitempty"`
	Mods           []ModOverride `koanf:"mods" toml:"mods,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Launcher     Launcher          `koanf:"launcher" toml:"launcher"`
	Directories  Directories       `koanf:"directories" toml:"directories"`
	Distribution Distribution      `koanf:"distribution" toml:"distribution"`
	Java         Java              `koanf:"java" toml:"java"`
	Launch       Launch            `koanf:"launch" toml:"launch"`
	Game         Game              `koanf:"game" toml:"game"`
	Servers      map[string]Server `koanf:"servers" toml:"servers,omitempty"`
}

// JavaExecutable returns the runtime executable for a server
func (c *Config) JavaExecutable(serverID string) string {
	if s, ok := c.Servers[serverID]; ok && s.JavaExecutable != "" {
		return s.JavaExecutable
	}
	return c.Java.Executable
}

// MinRAM returns the initial heap size for a server, verbatim (e.g. "2G")
func (c *Config) MinRAM(serverID string) string {
	if s, ok := c.Servers[serverID]; ok && s.MinRAM != "" {
		return s.MinRAM
	}
	return c.Java.MinRAM
}

// MaxRAM returns the maximum heap size for a server, verbatim (e.g. "4G")
func (c *Config) MaxRAM(serverID string) string {
	if s, ok := c.Servers[serverID]; ok && s.MaxRAM != "" {
		return s.MaxRAM
	}
	return c.Java.MaxRAM
}

// ModEnabled returns the user's choice for an optional mod and whether one was made
func (c *Config) ModEnabled(serverID, moduleID string) (enabled bool, set bool) {
	s, ok := c.Servers[serverID]
	if !ok {
		return false, false
	}
	for _, m := range s.Mods {
		if m.ID == moduleID {
			return m.Enabled, true
		}
	}
	return false, false
}

// Validate checks values the rest of the launcher relies on
func (c *Config) Validate() error {
	if c.Java.Executable == "" {
		return errors.New(errors.ErrConfigParse, "java.executable must not be empty")
	}
	if c.Java.MinRAM == "" || c.Java.MaxRAM == "" {
		return errors.New(errors.ErrConfigParse, "java.min_ram and java.max_ram must not be empty")
	}
	if c.Directories.TempNatives == "" {
		return errors.New(errors.ErrConfigParse, "directories.temp_natives must not be empty")
	}
	if c.Game.ResolutionWidth <= 0 || c.Game.ResolutionHeight <= 0 {
		return errors.Newf(errors.ErrConfigParse, "invalid game resolution %dx%d",
			c.Game.ResolutionWidth, c.Game.ResolutionHeight)
	}
	for id, s := range c.Servers {
		for i, m := range s.Mods {
			if m.ID == "" {
				return errors.Newf(errors.ErrConfigParse, "servers.%s.mods[%d]: id must not be empty", id, i)
			}
		}
	}
	return nil
}
