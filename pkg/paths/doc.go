// Package paths provides centralized path handling for the launcher.
//
// This package follows the XDG Base Directory conventions for the
// launcher's own files and derives the game layout from it:
//
//   - Data: $XDG_DATA_HOME/mclaunch (distribution index, common and instance trees)
//   - Config: $XDG_CONFIG_HOME/mclaunch (config.toml)
//   - Common: <data>/common (libraries, versions, assets shared by all servers)
//   - Instances: <data>/instances/<server id> (per-server game directory)
//
// # Environment Variables
//
//   - MCLAUNCH_DATA_DIR: Override the data directory
//   - MCLAUNCH_CONFIG_DIR: Override the config directory
//
// Configuration may further relocate the common and instance trees; see
// Options.
package paths
