// Test Type: Unit Test
// Description: Tests for the config package - layered loading and per-server accessors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/mclaunch/pkg/config"
	"github.com/arthur-debert/mclaunch/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Helios", cfg.Launcher.Name)
	assert.Equal(t, "java", cfg.Java.Executable)
	assert.Equal(t, "2G", cfg.Java.MinRAM)
	assert.Equal(t, "4G", cfg.Java.MaxRAM)
	assert.Equal(t, "WCNatives", cfg.Directories.TempNatives)
	assert.True(t, cfg.Launch.Detached)
	assert.Equal(t, 928, cfg.Game.ResolutionWidth)
	assert.Equal(t, 522, cfg.Game.ResolutionHeight)
	assert.Empty(t, cfg.Servers)
}

func TestLoad_Layering(t *testing.T) {
	path := writeConfig(t, `
[java]
max_ram = "6G"

[launch]
detached = false

[servers.pixelmon]
java_executable = "/opt/java21/bin/java"
min_ram = "3G"

[[servers.pixelmon.mods]]
id = "local.mod:jei:1.0.0"
enabled = false
`)

	t.Run("file_overrides_defaults", func(t *testing.T) {
		cfg, err := config.Load(config.LoadOptions{FilePath: path})
		require.NoError(t, err)

		assert.Equal(t, "6G", cfg.Java.MaxRAM)
		assert.Equal(t, "2G", cfg.Java.MinRAM, "untouched keys keep their defaults")
		assert.False(t, cfg.Launch.Detached)
		require.Contains(t, cfg.Servers, "pixelmon")
		assert.Equal(t, "/opt/java21/bin/java", cfg.Servers["pixelmon"].JavaExecutable)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		t.Setenv("MCLAUNCH_JAVA__MAX_RAM", "8G")
		t.Setenv("MCLAUNCH_LAUNCH__DETACHED", "true")

		cfg, err := config.Load(config.LoadOptions{FilePath: path})
		require.NoError(t, err)
		assert.Equal(t, "8G", cfg.Java.MaxRAM)
		assert.True(t, cfg.Launch.Detached)
	})

	t.Run("overrides_win", func(t *testing.T) {
		t.Setenv("MCLAUNCH_JAVA__MAX_RAM", "8G")

		cfg, err := config.Load(config.LoadOptions{
			FilePath:  path,
			Overrides: map[string]interface{}{"java.max_ram": "10G"},
		})
		require.NoError(t, err)
		assert.Equal(t, "10G", cfg.Java.MaxRAM)
	})
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts func(t *testing.T) config.LoadOptions
		code errors.ErrorCode
	}{
		{
			name: "explicit_missing_file",
			opts: func(t *testing.T) config.LoadOptions {
				return config.LoadOptions{FilePath: filepath.Join(t.TempDir(), "nope.toml"), Explicit: true}
			},
			code: errors.ErrConfigLoad,
		},
		{
			name: "malformed_toml",
			opts: func(t *testing.T) config.LoadOptions {
				return config.LoadOptions{FilePath: writeConfig(t, "[java\nmax_ram=")}
			},
			code: errors.ErrConfigParse,
		},
		{
			name: "empty_heap",
			opts: func(t *testing.T) config.LoadOptions {
				return config.LoadOptions{FilePath: writeConfig(t, "[java]\nmin_ram = \"\"\n")}
			},
			code: errors.ErrConfigParse,
		},
		{
			name: "bad_resolution",
			opts: func(t *testing.T) config.LoadOptions {
				return config.LoadOptions{FilePath: writeConfig(t, "[game]\nresolution_width = 0\n")}
			},
			code: errors.ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.opts(t))
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestLoad_MissingImplicitFileIsFine(t *testing.T) {
	cfg, err := config.Load(config.LoadOptions{FilePath: filepath.Join(t.TempDir(), "config.toml")})
	require.NoError(t, err)
	assert.Equal(t, "4G", cfg.Java.MaxRAM)
}

func TestServerAccessors(t *testing.T) {
	cfg := config.Default()
	cfg.Servers = map[string]config.Server{
		"pixelmon": {
			MaxRAM: "6G",
			Mods: []config.ModOverride{
				{ID: "local.mod:jei:1.0.0", Enabled: false},
				{ID: "local.mod:map:2.1", Enabled: true},
			},
		},
	}

	assert.Equal(t, "6G", cfg.MaxRAM("pixelmon"))
	assert.Equal(t, "2G", cfg.MinRAM("pixelmon"))
	assert.Equal(t, "4G", cfg.MaxRAM("other"))
	assert.Equal(t, "java", cfg.JavaExecutable("pixelmon"))

	enabled, set := cfg.ModEnabled("pixelmon", "local.mod:jei:1.0.0")
	assert.True(t, set)
	assert.False(t, enabled)

	enabled, set = cfg.ModEnabled("pixelmon", "local.mod:map:2.1")
	assert.True(t, set)
	assert.True(t, enabled)

	_, set = cfg.ModEnabled("pixelmon", "local.mod:unknown:1")
	assert.False(t, set)
	_, set = cfg.ModEnabled("other", "local.mod:jei:1.0.0")
	assert.False(t, set)
}

func TestGenerateTOML(t *testing.T) {
	cfg := config.Default()
	cfg.Servers = map[string]config.Server{
		"pixelmon": {MaxRAM: "6G", Mods: []config.ModOverride{{ID: "local.mod:jei:1.0.0"}}},
	}

	out, err := config.GenerateTOML(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "# mclaunch configuration")

	// The output must load back through the same layering
	path := writeConfig(t, string(out))
	loaded, err := config.Load(config.LoadOptions{FilePath: path})
	require.NoError(t, err)
	assert.Equal(t, "6G", loaded.MaxRAM("pixelmon"))

	var raw map[string]interface{}
	require.NoError(t, toml.Unmarshal(out, &raw))
	assert.Contains(t, raw, "java")
}
