package launcher

import (
	"net"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/compiler"
	"github.com/arthur-debert/mclaunch/pkg/config"
	"github.com/arthur-debert/mclaunch/pkg/distribution"
	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/filesystem"
	"github.com/arthur-debert/mclaunch/pkg/logging"
	"github.com/arthur-debert/mclaunch/pkg/paths"
	"github.com/arthur-debert/mclaunch/pkg/resolver"
	"github.com/arthur-debert/mclaunch/pkg/rules"
	"github.com/arthur-debert/mclaunch/pkg/strategy"
	"github.com/arthur-debert/mclaunch/pkg/supervisor"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultServerPort is used when a server address carries no port
const DefaultServerPort = "25565"

// Options configures a Launcher
type Options struct {
	Config *config.Config
	Paths  paths.Paths
	FS     types.FS
	// Env overrides the host platform; features are filled in per launch
	Env *rules.Env
	// Profiles overrides the modular loader table
	Profiles []strategy.Profile
	// Sink receives game output; defaults to the "game" logger
	Sink supervisor.Sink
}

// Launcher builds and starts sessions
type Launcher struct {
	cfg      *config.Config
	paths    paths.Paths
	fs       types.FS
	env      rules.Env
	profiles []strategy.Profile
	sink     supervisor.Sink
	manifest *distribution.Provider
	logger   zerolog.Logger
}

// New creates a new Launcher
func New(opts Options) *Launcher {
	env := rules.Host()
	if opts.Env != nil {
		env = *opts.Env
	}
	return &Launcher{
		cfg:      opts.Config,
		paths:    opts.Paths,
		fs:       opts.FS,
		env:      env,
		profiles: opts.Profiles,
		sink:     opts.Sink,
		manifest: distribution.New(distribution.Options{FS: opts.FS, Paths: opts.Paths}),
		logger:   logging.GetLogger("launcher"),
	}
}

// Prepare runs resolution, compilation and the bootstrap strategy for server
func (l *Launcher) Prepare(server *types.Server, cred types.Credential) (*Session, error) {
	done := logging.LogOperationStart(l.logger, "prepare")
	defer done()

	if server == nil {
		return nil, errors.AtStage(errors.New(errors.ErrInvalidInput, "no server selected"), errors.ErrResolve, "resolution failed")
	}

	s := &Session{
		Server:      server,
		Credential:  cred,
		LibraryDir:  l.paths.LibrariesDir(),
		InstanceDir: l.paths.InstanceDir(server.ID),
		NativesDir:  filepath.Join(l.paths.NativesRoot(l.cfg.Directories.TempNatives), strings.ReplaceAll(uuid.NewString(), "-", "")),
		Executable:  l.cfg.JavaExecutable(server.ID),
		Detached:    l.cfg.Launch.Detached,
	}
	env := l.env.WithFeatures(l.features(server))

	if err := l.resolve(s, env); err != nil {
		return nil, errors.AtStage(err, errors.ErrResolve, "resolution failed").WithDetail("server", server.ID)
	}

	if err := l.selectStrategy(s); err != nil {
		return nil, errors.AtStage(err, errors.ErrStrategy, "strategy selection failed").WithDetail("server", server.ID)
	}

	args, err := l.compile(s, env)
	if err != nil {
		return nil, errors.AtStage(err, errors.ErrCompile, "argument compilation failed").WithDetail("server", server.ID)
	}
	s.Arguments = s.Strategy.Apply(args)

	l.logger.Info().
		Str("server", server.ID).
		Str("version", s.VersionName()).
		Str("strategy", s.Strategy.Name()).
		Int("classpath", len(s.Classpath)).
		Int("mods", len(s.Mods)).
		Msg("Session prepared")
	return s, nil
}

// Launch prepares a session and starts the game
func (l *Launcher) Launch(server *types.Server, cred types.Credential) (*supervisor.Process, *Session, error) {
	s, err := l.Prepare(server, cred)
	if err != nil {
		return nil, nil, err
	}
	proc, err := l.Spawn(s)
	if err != nil {
		return nil, s, err
	}
	return proc, s, nil
}

// Spawn starts a prepared session
func (l *Launcher) Spawn(s *Session) (*supervisor.Process, error) {
	if err := l.fs.MkdirAll(s.NativesDir, 0755); err != nil {
		return nil, errors.AtStage(
			errors.Wrapf(err, errors.ErrDirCreate, "cannot create natives directory %s", s.NativesDir),
			errors.ErrSpawn, "launch failed")
	}

	logging.LogCommand(s.Executable, s.Argv())
	proc, err := supervisor.Launch(supervisor.Options{
		Executable: s.Executable,
		Args:       s.Argv(),
		Dir:        s.InstanceDir,
		Detached:   s.Detached,
		Sink:       l.sink,
		FS:         l.fs,
	})
	if err != nil {
		return nil, errors.AtStage(err, errors.ErrSpawn, "launch failed").WithDetail("server", s.Server.ID)
	}
	return proc, nil
}

// CleanNatives removes every natives directory left by earlier launches
func (l *Launcher) CleanNatives() error {
	root := l.paths.NativesRoot(l.cfg.Directories.TempNatives)
	if err := l.fs.RemoveAll(root); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot remove %s", root).WithDetail("path", root)
	}
	l.logger.Debug().Str("path", root).Msg("Removed natives directory")
	return nil
}

// ModFilter returns the enablement rule for server's optional mods:
// required mods always load, then the user's choice, then the manifest default.
func (l *Launcher) ModFilter(server *types.Server) resolver.ModFilter {
	return func(m *types.Module) bool {
		if m.Required.Value {
			return true
		}
		if enabled, set := l.cfg.ModEnabled(server.ID, m.ID); set {
			return enabled
		}
		return m.Required.Def
	}
}

func (l *Launcher) features(server *types.Server) map[string]bool {
	return map[string]bool{
		rules.FeatureDemoUser:             false,
		rules.FeatureCustomResolution:     l.cfg.Game.CustomResolution,
		rules.FeatureQuickPlayMultiplayer: l.autoconnect(server),
	}
}

func (l *Launcher) autoconnect(server *types.Server) bool {
	return l.cfg.Game.Autoconnect && server.Autoconnect && server.Address != ""
}

func (l *Launcher) resolve(s *Session, env rules.Env) error {
	runtime, err := l.manifest.LoadVersionManifest(s.Server.MinecraftVersion)
	if err != nil {
		return err
	}
	s.Runtime = runtime
	s.VersionJar = l.paths.VersionJarPath(runtime.ID)

	loader, err := l.manifest.LoadLoaderManifest(s.Server)
	if err != nil {
		return err
	}
	s.Loader = loader
	if loader != nil && loader.Manifest.InheritsFrom != "" && loader.Manifest.InheritsFrom != runtime.ID {
		l.logger.Warn().
			Str("loader", loader.Manifest.ID).
			Str("inherits", loader.Manifest.InheritsFrom).
			Str("runtime", runtime.ID).
			Msg("Loader was built for a different runtime version")
	}

	r := resolver.New(resolver.Options{
		LibraryRoot: s.LibraryDir,
		Env:         env,
		ModFilter:   l.ModFilter(s.Server),
	})
	modules := r.ResolveModules(s.Server.Modules)
	s.Mods = modules.Mods
	s.Classpath = resolver.Classpath(s.VersionJar, r.ResolveRuntime(runtime), modules.Libraries)
	return nil
}

func (l *Launcher) selectStrategy(s *Session) error {
	var loader *strategy.Loader
	if s.Loader != nil {
		loader = &strategy.Loader{ModuleID: s.Loader.Module.ID, ManifestID: s.Loader.Manifest.ID}
	}
	st, err := strategy.Select(loader, strategy.Options{
		Profiles:         l.profiles,
		LibraryDirectory: s.LibraryDir,
		VersionJar:       s.VersionJar,
		LauncherName:     l.cfg.Launcher.Name,
	})
	if err != nil {
		return err
	}
	s.Strategy = st
	return nil
}

func (l *Launcher) compile(s *Session, env rules.Env) (compiler.Arguments, error) {
	in := compiler.Input{
		RuntimeJVM:  s.Runtime.JVMTemplates(),
		RuntimeGame: s.Runtime.GameTemplates(),
		MinRAM:      l.cfg.MinRAM(s.Server.ID),
		MaxRAM:      l.cfg.MaxRAM(s.Server.ID),
		MainClass:   s.Runtime.MainClass,
		Env:         env,
	}
	if s.Loader != nil {
		lm := s.Loader.Manifest
		if lm.Arguments == nil && lm.MinecraftArguments != "" {
			// Legacy loaders restate the complete program flags
			in.RuntimeGame = nil
			in.ExtensionGame = lm.GameTemplates()
		} else {
			in.ExtensionJVM = lm.JVMTemplates()
			in.ExtensionGame = lm.GameTemplates()
		}
		if lm.MainClass != "" {
			in.MainClass = lm.MainClass
		}
	}

	if arg, ok := l.loggingArgument(s.Runtime); ok {
		in.RuntimeJVM = append(append([]types.Argument(nil), in.RuntimeJVM...), types.Lit(arg)...)
	}

	ctx := compiler.Context{
		Credential:       s.Credential,
		VersionName:      s.VersionName(),
		VersionType:      s.Runtime.Type,
		GameDirectory:    s.InstanceDir,
		AssetsRoot:       l.paths.AssetsDir(),
		AssetsIndexName:  s.Runtime.Assets,
		NativesDirectory: s.NativesDir,
		LibraryDirectory: s.LibraryDir,
		LauncherName:     l.cfg.Launcher.Name,
		LauncherVersion:  l.cfg.Launcher.Version,
		Classpath:        s.Classpath,
		ModulePath:       s.Strategy.ModulePath(),
		ResolutionWidth:  l.cfg.Game.ResolutionWidth,
		ResolutionHeight: l.cfg.Game.ResolutionHeight,
	}

	if l.autoconnect(s.Server) {
		ctx.QuickPlayMultiplayer = s.Server.Address
		all := append(append([]types.Argument(nil), in.RuntimeGame...), in.ExtensionGame...)
		if !rules.UsesFeature(all, rules.FeatureQuickPlayMultiplayer) {
			host, port := splitAddress(s.Server.Address)
			in.ExtensionGame = append(append([]types.Argument(nil), in.ExtensionGame...), types.Lit("--server", host, "--port", port)...)
		}
	}

	return compiler.Compile(in, ctx.Variables())
}

// loggingArgument returns the runtime's logger configuration flag when its file is present.
// The game then writes log4j XML events, which the supervisor's default sink decodes.
func (l *Launcher) loggingArgument(runtime *types.VersionManifest) (string, bool) {
	c := runtime.ClientLogging()
	if c == nil {
		return "", false
	}
	path := l.paths.LogConfigPath(c.File.ID)
	if !filesystem.Exists(l.fs, path) {
		l.logger.Debug().Str("path", path).Msg("Logger configuration missing, game logs stay plain")
		return "", false
	}
	return strings.ReplaceAll(c.Argument, "${path}", path), true
}

func splitAddress(address string) (string, string) {
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return address, DefaultServerPort
	}
	return host, port
}
