package compiler

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/types"
)

// Variables maps placeholder names to their values
type Variables map[string]string

// Values fixed for every launch
const (
	DefaultUserType    = "mojang"
	DefaultVersionType = "release"
	DefaultXUID        = "N/A"
	unavailable        = "null"
)

// Context carries the session values placeholders resolve to
type Context struct {
	Credential types.Credential

	VersionName      string
	VersionType      string
	GameDirectory    string
	AssetsRoot       string
	AssetsIndexName  string
	NativesDirectory string
	LibraryDirectory string

	LauncherName    string
	LauncherVersion string

	Classpath  []string
	ModulePath []string

	ResolutionWidth  int
	ResolutionHeight int

	// QuickPlayMultiplayer is the server address to join on start, if any
	QuickPlayMultiplayer string
}

// Variables builds the complete placeholder set for ctx
func (c Context) Variables() Variables {
	sep := string(filepath.ListSeparator)

	userType := c.Credential.UserType
	if userType == "" {
		userType = DefaultUserType
	}
	versionType := c.VersionType
	if versionType == "" {
		versionType = DefaultVersionType
	}
	quickPlayMP := c.QuickPlayMultiplayer
	if quickPlayMP == "" {
		quickPlayMP = unavailable
	}

	return Variables{
		"auth_player_name":  strings.TrimSpace(c.Credential.DisplayName),
		"auth_uuid":         c.Credential.UUID,
		"auth_access_token": c.Credential.AccessToken,
		"auth_session":      c.Credential.AccessToken,
		"auth_xuid":         DefaultXUID,
		"clientid":          c.LauncherName,
		"user_type":         userType,
		"user_properties":   "{}",

		"version_name":      c.VersionName,
		"version_type":      versionType,
		"game_directory":    c.GameDirectory,
		"assets_root":       c.AssetsRoot,
		"game_assets":       c.AssetsRoot,
		"assets_index_name": c.AssetsIndexName,
		"natives_directory": c.NativesDirectory,
		"library_directory": c.LibraryDirectory,

		"launcher_name":    c.LauncherName,
		"launcher_version": c.LauncherVersion,

		"classpath_separator": sep,
		"classpath":           strings.Join(c.Classpath, sep),
		"module_path":         strings.Join(c.ModulePath, sep),

		"resolution_width":  strconv.Itoa(c.ResolutionWidth),
		"resolution_height": strconv.Itoa(c.ResolutionHeight),

		"quickPlayPath":         unavailable,
		"quickPlaySingleplayer": unavailable,
		"quickPlayMultiplayer":  quickPlayMP,
		"quickPlayRealms":       unavailable,
	}
}
