package rules

import (
	"runtime"
)

// Platform names used by version manifests
const (
	OSWindows = "windows"
	OSMacOS   = "osx"
	OSLinux   = "linux"
)

// Feature flags understood by version manifests
const (
	FeatureDemoUser              = "is_demo_user"
	FeatureCustomResolution      = "has_custom_resolution"
	FeatureQuickPlaySupport      = "has_quick_plays_support"
	FeatureQuickPlaySingleplayer = "is_quick_play_singleplayer"
	FeatureQuickPlayMultiplayer  = "is_quick_play_multiplayer"
	FeatureQuickPlayRealms       = "is_quick_play_realms"
)

// Env describes the host a launch is evaluated against
type Env struct {
	OS        string
	Arch      string
	OSVersion string
	// Features holds the enabled feature flags; absent flags are false
	Features map[string]bool
}

// Host returns the environment of the running process
func Host() Env {
	return Env{
		OS:   OSName(runtime.GOOS),
		Arch: ArchName(runtime.GOARCH),
	}
}

// WithFeatures returns a copy of e with the given features set
func (e Env) WithFeatures(features map[string]bool) Env {
	merged := make(map[string]bool, len(e.Features)+len(features))
	for k, v := range e.Features {
		merged[k] = v
	}
	for k, v := range features {
		merged[k] = v
	}
	e.Features = merged
	return e
}

// OSName maps a GOOS value to its manifest name
func OSName(goos string) string {
	switch goos {
	case "windows":
		return OSWindows
	case "darwin":
		return OSMacOS
	default:
		return OSLinux
	}
}

// ArchName maps a GOARCH value to its manifest name
func ArchName(goarch string) string {
	switch goarch {
	case "386":
		return "x86"
	case "amd64":
		return "x86_64"
	default:
		return goarch
	}
}
