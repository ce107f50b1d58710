// pkg/launcher/launcher_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: testutil (memory and isolated environments)
// PURPOSE: Exercise the full resolve, compile, strategy and spawn pipeline

package launcher_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/mclaunch/pkg/config"
	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/filesystem"
	"github.com/arthur-debert/mclaunch/pkg/launcher"
	"github.com/arthur-debert/mclaunch/pkg/rules"
	"github.com/arthur-debert/mclaunch/pkg/strategy"
	"github.com/arthur-debert/mclaunch/pkg/supervisor"
	"github.com/arthur-debert/mclaunch/pkg/testutil"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linuxHost = rules.Env{OS: rules.OSLinux, Arch: "x86_64"}

func credential() types.Credential {
	return types.Credential{DisplayName: "Ash", UUID: "b50ad385829d3141a2167e7d7539ba7f", AccessToken: "token", UserType: "msa"}
}

func newLauncher(env *testutil.TestEnvironment, cfg *config.Config) *launcher.Launcher {
	host := linuxHost
	return launcher.New(launcher.Options{
		Config: cfg,
		Paths:  env.Paths,
		FS:     env.FS,
		Env:    &host,
		Sink:   supervisor.SinkFunc(func(supervisor.Stream, string) {}),
	})
}

func seeded(t *testing.T) *testutil.TestEnvironment {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.Seed()
	return env
}

func modIDs(mods []*types.Module) []string {
	var ids []string
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestPrepare_NeoForge(t *testing.T) {
	env := seeded(t)
	s, err := newLauncher(env, config.Default()).Prepare(testutil.NeoForgeServer(), credential())
	require.NoError(t, err)

	argv := s.Argv()
	testutil.AssertNoPlaceholders(t, argv)

	t.Run("modular_bootstrap", func(t *testing.T) {
		assert.Equal(t, "modular:neoforge-21.1", s.Strategy.Name())
		assert.Equal(t, testutil.NeoForgeMainClass, s.Arguments.MainClass)
		assert.Equal(t, 1, testutil.Count(argv, "-p"))
		assert.Equal(t, 1, testutil.Count(argv, "-cp"))
		assert.Equal(t, 1, testutil.Count(argv, "--launchTarget"))
		testutil.AssertSequence(t, s.Arguments.Game, "--launchTarget", "forgeclient")
		testutil.AssertSequence(t, s.Arguments.Game, "--fml.neoFormVersion", "20240808.144430")
		assert.Contains(t, s.Arguments.JVM, "-Dneoforge.version=21.1.219")
		assert.Contains(t, s.Arguments.JVM, "-DlibraryDirectory="+env.Paths.LibrariesDir())
	})

	t.Run("program_flags", func(t *testing.T) {
		testutil.AssertSequence(t, s.Arguments.Game, "--username", "Ash")
		testutil.AssertSequence(t, s.Arguments.Game, "--version", testutil.NeoForgeManifestID)
		testutil.AssertSequence(t, s.Arguments.Game, "--gameDir", env.Paths.InstanceDir("pixelmon"))
		testutil.AssertSequence(t, s.Arguments.Game, "--userType", "msa")
		testutil.AssertSequence(t, s.Arguments.Game, "--assetIndex", "17")
		assert.NotContains(t, s.Arguments.Game, "--demo")
		assert.NotContains(t, s.Arguments.Game, "--width")
		assert.NotContains(t, s.Arguments.Game, "--quickPlayMultiplayer", "server does not request autoconnect")
	})

	t.Run("runtime_flags", func(t *testing.T) {
		testutil.AssertSequence(t, s.Arguments.JVM, "-Xmx4G", "-Xms2G")
		assert.Contains(t, s.Arguments.JVM, "-Djava.library.path="+s.NativesDir)
		assert.Contains(t, s.Arguments.JVM, "-Dminecraft.launcher.brand=Helios")
		assert.NotContains(t, s.Arguments.JVM, "-XstartOnFirstThread")
	})

	t.Run("classpath", func(t *testing.T) {
		require.NotEmpty(t, s.Classpath)
		assert.Equal(t, env.Paths.VersionJarPath(testutil.MinecraftVersion), s.Classpath[0])
		assert.Contains(t, s.Classpath, env.LibraryPath("org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3-natives-linux.jar"))
		assert.NotContains(t, s.Classpath, env.LibraryPath("org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3-natives-macos.jar"))
		assert.Contains(t, s.Classpath, env.LibraryPath("net/neoforged/neoforge/21.1.219/neoforge-21.1.219-universal.jar"))
		assert.Less(t,
			indexOf(s.Classpath, env.LibraryPath("com/mojang/brigadier/1.3.10/brigadier-1.3.10.jar")),
			indexOf(s.Classpath, env.LibraryPath("org/ow2/asm/asm/9.7/asm-9.7.jar")),
			"runtime libraries come before distribution libraries")
	})

	t.Run("mods", func(t *testing.T) {
		assert.Equal(t, []string{"local:jei:19.21.0", "local:journeymap:6.0.0"}, modIDs(s.Mods))
	})

	assert.True(t, strings.HasPrefix(s.NativesDir, env.Paths.NativesRoot("WCNatives")))
	assert.Len(t, filepath.Base(s.NativesDir), 32)
	assert.Equal(t, "java", s.CommandLine()[0])
}

func TestPrepare_ModOverrides(t *testing.T) {
	env := seeded(t)
	cfg := config.Default()
	cfg.Servers = map[string]config.Server{
		"pixelmon": {Mods: []config.ModOverride{
			{ID: "local:journeymap:6.0.0", Enabled: false},
			{ID: "local:shaders:1.0.0", Enabled: true},
			{ID: "local:jei:19.21.0", Enabled: false},
		}},
	}

	s, err := newLauncher(env, cfg).Prepare(testutil.NeoForgeServer(), credential())
	require.NoError(t, err)
	assert.Equal(t, []string{"local:jei:19.21.0", "local:shaders:1.0.0"}, modIDs(s.Mods), "required mods cannot be disabled")
}

func TestPrepare_FabricAutoconnect(t *testing.T) {
	env := seeded(t)
	cfg := config.Default()
	cfg.Game.CustomResolution = true
	cfg.Servers = map[string]config.Server{"survival": {MaxRAM: "6G", JavaExecutable: "/opt/java21/bin/java"}}

	s, err := newLauncher(env, cfg).Prepare(testutil.FabricServer(), credential())
	require.NoError(t, err)

	assert.Equal(t, "flat", s.Strategy.Name())
	assert.Equal(t, testutil.FabricMainClass, s.Arguments.MainClass)
	assert.Equal(t, 1, testutil.Count(s.Argv(), testutil.FabricMainClass))
	assert.NotContains(t, s.Argv(), "-p")

	testutil.AssertSequence(t, s.Arguments.Game, "--quickPlayMultiplayer", "survival.example.net")
	assert.NotContains(t, s.Arguments.Game, "--server", "quick play replaces --server")
	testutil.AssertSequence(t, s.Arguments.Game, "--width", "928", "--height", "522")
	testutil.AssertSequence(t, s.Arguments.JVM, "-Xmx6G", "-Xms2G")
	assert.Equal(t, "/opt/java21/bin/java", s.Executable)
	testutil.AssertSequence(t, s.Arguments.Game, "--version", testutil.FabricManifestID)
}

func TestPrepare_LegacyRuntimeAutoconnect(t *testing.T) {
	env := seeded(t)
	server := testutil.VanillaServer()
	server.MinecraftVersion = "1.12.2"
	server.Autoconnect = true

	s, err := newLauncher(env, config.Default()).Prepare(server, credential())
	require.NoError(t, err)

	assert.Equal(t, testutil.VanillaMainClass, s.Arguments.MainClass)
	assert.Equal(t, []string{
		"-Djava.library.path=" + s.NativesDir,
		"-cp", strings.Join(s.Classpath, string(filepath.ListSeparator)),
		"-Xmx4G", "-Xms2G",
	}, s.Arguments.JVM)
	testutil.AssertSequence(t, s.Arguments.Game, "--version", "1.12.2")
	testutil.AssertSequence(t, s.Arguments.Game, "--server", "vanilla.example.net", "--port", "25565")
	assert.Equal(t, 2, len(s.Classpath))
	assert.Empty(t, s.Mods)
}

func TestPrepare_AutoconnectDisabledByConfig(t *testing.T) {
	env := seeded(t)
	cfg := config.Default()
	cfg.Game.Autoconnect = false

	s, err := newLauncher(env, cfg).Prepare(testutil.FabricServer(), credential())
	require.NoError(t, err)
	assert.NotContains(t, s.Arguments.Game, "--quickPlayMultiplayer")
	assert.NotContains(t, s.Arguments.Game, "--server")
}

func TestPrepare_StageErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup    func(env *testutil.TestEnvironment) *types.Server
		profiles []strategy.Profile
		stage    errors.ErrorCode
		detail   errors.ErrorCode
	}{
		{
			name: "missing_runtime_manifest",
			setup: func(env *testutil.TestEnvironment) *types.Server {
				s := testutil.VanillaServer()
				s.MinecraftVersion = "1.7.10"
				return s
			},
			stage:  errors.ErrResolve,
			detail: errors.ErrNotFound,
		},
		{
			name: "missing_loader_manifest",
			setup: func(env *testutil.TestEnvironment) *types.Server {
				s := testutil.NeoForgeServer()
				s.Modules[0].SubModules[0].Artifact.Path = "versions/neoforge-0.json"
				return s
			},
			stage:  errors.ErrResolve,
			detail: errors.ErrManifestLoad,
		},
		{
			name: "broken_modular_profile",
			setup: func(env *testutil.TestEnvironment) *types.Server {
				return testutil.NeoForgeServer()
			},
			profiles: func() []strategy.Profile {
				p := strategy.DefaultProfiles[0]
				p.ModulePath = []string{"not-a-coordinate"}
				return []strategy.Profile{p}
			}(),
			stage:  errors.ErrStrategy,
			detail: errors.ErrInvalidInput,
		},
		{
			name: "unknown_placeholder",
			setup: func(env *testutil.TestEnvironment) *types.Server {
				m := testutil.FabricManifest()
				m.Arguments.Game = types.Lit("--session", "${auth_session_id}")
				env.WriteVersionManifest(m)
				return testutil.FabricServer()
			},
			stage:  errors.ErrCompile,
			detail: errors.ErrUnresolvedPlaceholder,
		},
		{
			name: "no_server",
			setup: func(env *testutil.TestEnvironment) *types.Server {
				return nil
			},
			stage:  errors.ErrResolve,
			detail: errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := seeded(t)
			server := tt.setup(env)

			host := linuxHost
			l := launcher.New(launcher.Options{
				Config:   config.Default(),
				Paths:    env.Paths,
				FS:       env.FS,
				Env:      &host,
				Profiles: tt.profiles,
			})

			_, err := l.Prepare(server, credential())
			require.Error(t, err)
			assert.Equal(t, tt.stage, errors.GetErrorCode(err))
			assert.Equal(t, string(tt.stage), errors.GetStage(err))
			assert.True(t, errors.IsErrorCode(err, tt.detail), "got %v", err)
		})
	}
}

func TestPrepare_SubstitutedValuesAreOpaque(t *testing.T) {
	env := seeded(t)
	cfg := config.Default()
	cfg.Launcher.Name = "Launcher ${launcher_version}"
	cred := credential()
	cred.AccessToken = "eyJ${abc}"

	for _, server := range []*types.Server{testutil.VanillaServer(), testutil.NeoForgeServer()} {
		t.Run(server.ID, func(t *testing.T) {
			s, err := newLauncher(env, cfg).Prepare(server, cred)
			require.NoError(t, err)
			testutil.AssertSequence(t, s.Argv(), "--accessToken", "eyJ${abc}")
		})
	}
}

func TestPrepare_Deterministic(t *testing.T) {
	env := seeded(t)
	l := newLauncher(env, config.Default())

	first, err := l.Prepare(testutil.NeoForgeServer(), credential())
	require.NoError(t, err)
	second, err := l.Prepare(testutil.NeoForgeServer(), credential())
	require.NoError(t, err)

	assert.Equal(t, first.Classpath, second.Classpath)
	assert.NotEqual(t, first.NativesDir, second.NativesDir, "every launch gets its own natives directory")
}

func TestPrepare_LoggingConfiguration(t *testing.T) {
	t.Run("missing file leaves game logs plain", func(t *testing.T) {
		env := seeded(t)
		s, err := newLauncher(env, config.Default()).Prepare(testutil.VanillaServer(), credential())
		require.NoError(t, err)
		for _, arg := range s.Arguments.JVM {
			assert.NotContains(t, arg, "log4j.configurationFile")
		}
	})

	t.Run("present file is passed to the runtime", func(t *testing.T) {
		env := seeded(t)
		path := env.SeedLogConfig()

		for _, server := range []*types.Server{testutil.VanillaServer(), testutil.NeoForgeServer()} {
			s, err := newLauncher(env, config.Default()).Prepare(server, credential())
			require.NoError(t, err, server.ID)
			assert.Contains(t, s.Arguments.JVM, "-Dlog4j.configurationFile="+path, server.ID)
			testutil.AssertNoPlaceholders(t, s.Argv())
		}
	})
}

func TestLaunch_SpawnFailure(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.Seed()
	cfg := config.Default()
	cfg.Java.Executable = filepath.Join(t.TempDir(), "missing-java")
	cfg.Directories.TempNatives = "mclaunch-test-" + filepath.Base(t.TempDir())
	t.Cleanup(func() { _ = os.RemoveAll(env.Paths.NativesRoot(cfg.Directories.TempNatives)) })

	_, s, err := newLauncher(env, cfg).Launch(testutil.VanillaServer(), credential())
	require.Error(t, err)
	assert.Equal(t, string(errors.ErrSpawn), errors.GetStage(err))
	require.NotNil(t, s, "the prepared session is returned for diagnosis")
}

func TestLaunch_StartsProcess(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.Seed()
	cfg := config.Default()
	cfg.Java.Executable = os.Args[0]
	cfg.Launch.Detached = false
	cfg.Directories.TempNatives = "mclaunch-test-" + filepath.Base(t.TempDir())
	t.Cleanup(func() { _ = os.RemoveAll(env.Paths.NativesRoot(cfg.Directories.TempNatives)) })

	l := newLauncher(env, cfg)
	proc, s, err := l.Launch(testutil.VanillaServer(), credential())
	require.NoError(t, err)
	// The test binary rejects the game flags; only the spawn matters here
	_ = proc.Wait()

	assert.True(t, filesystem.IsDir(env.FS, s.InstanceDir))
	assert.True(t, filesystem.IsDir(env.FS, s.NativesDir))

	require.NoError(t, l.CleanNatives())
	assert.False(t, filesystem.Exists(env.FS, s.NativesDir))
}

func TestCleanNatives_Memory(t *testing.T) {
	env := seeded(t)
	cfg := config.Default()
	root := env.Paths.NativesRoot(cfg.Directories.TempNatives)
	env.WriteFile(filepath.Join(root, "abc", "lwjgl.so"), []byte("x"))

	require.NoError(t, newLauncher(env, cfg).CleanNatives())
	assert.False(t, filesystem.Exists(env.FS, root))
	require.NoError(t, newLauncher(env, cfg).CleanNatives(), "cleaning twice is fine")
}

func indexOf(items []string, want string) int {
	for i, it := range items {
		if it == want {
			return i
		}
	}
	return -1
}
