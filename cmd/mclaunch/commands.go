package mclaunch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mclaunch/internal/version"
	"github.com/arthur-debert/mclaunch/pkg/auth"
	"github.com/arthur-debert/mclaunch/pkg/config"
	"github.com/arthur-debert/mclaunch/pkg/distribution"
	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/filesystem"
	"github.com/arthur-debert/mclaunch/pkg/launcher"
	"github.com/arthur-debert/mclaunch/pkg/logging"
	"github.com/arthur-debert/mclaunch/pkg/paths"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity        int
		configPath       string
		distributionPath string
	)

	rootCmd := &cobra.Command{
		Use:     "mclaunch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&distributionPath, "distribution", "", MsgFlagDistribution)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newLaunchCmd())
	rootCmd.AddCommand(newArgsCmd())
	rootCmd.AddCommand(newClasspathCmd())
	rootCmd.AddCommand(newServersCmd())
	rootCmd.AddCommand(newModulesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// workspace is everything a command needs: settings, layout and the filesystem
type workspace struct {
	cfg   *config.Config
	paths paths.Paths
	fs    types.FS
}

// initWorkspace loads the configuration and derives the directory layout from it
func initWorkspace(cmd *cobra.Command, overrides map[string]interface{}) (*workspace, error) {
	configPath, _ := cmd.Root().PersistentFlags().GetString("config")

	base, err := paths.New(paths.Options{})
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	opts := config.LoadOptions{FilePath: configPath, Explicit: configPath != "", Overrides: overrides}
	if configPath == "" {
		opts.FilePath = base.ConfigFilePath()
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(paths.Options{
		DataDir:      cfg.Directories.Data,
		ConfigDir:    base.ConfigDir(),
		CommonDir:    cfg.Directories.Common,
		InstancesDir: cfg.Directories.Instances,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	log.Debug().
		Str("config", opts.FilePath).
		Str("data_dir", p.DataDir()).
		Str("common_dir", p.CommonDir()).
		Msg("Workspace initialized")

	return &workspace{cfg: cfg, paths: p, fs: filesystem.NewOS()}, nil
}

// distributionPath picks the index: flag, then config, then the data directory
func (w *workspace) distributionPath(cmd *cobra.Command) string {
	if path, _ := cmd.Root().PersistentFlags().GetString("distribution"); path != "" {
		return paths.ExpandHome(path)
	}
	if w.cfg.Distribution.Path != "" {
		return paths.ExpandHome(w.cfg.Distribution.Path)
	}
	return w.paths.DistributionPath()
}

func (w *workspace) loadDistribution(cmd *cobra.Command) (*types.Distribution, error) {
	provider := distribution.New(distribution.Options{FS: w.fs, Paths: w.paths})
	dist, err := provider.LoadDistribution(w.distributionPath(cmd))
	if err != nil {
		return nil, fmt.Errorf(MsgErrDistribution, err)
	}
	return dist, nil
}

// server returns the server named by args, or the main server
func (w *workspace) server(cmd *cobra.Command, args []string) (*types.Server, error) {
	dist, err := w.loadDistribution(cmd)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		if s := dist.Server(args[0]); s != nil {
			return s, nil
		}
		return nil, errors.Newf(errors.ErrNotFound, MsgErrServerMissing, args[0]).WithDetail("server", args[0])
	}
	if s := dist.MainServer(); s != nil {
		return s, nil
	}
	return nil, errors.New(errors.ErrNotFound, MsgErrNoServer)
}

func (w *workspace) launcher() *launcher.Launcher {
	return launcher.New(launcher.Options{
		Config: w.cfg,
		Paths:  w.paths,
		FS:     w.fs,
	})
}

// serverCompletion completes server ids from the distribution index
func serverCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	w, err := initWorkspace(cmd, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	dist, err := w.loadDistribution(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var ids []string
	for _, s := range dist.Servers {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

// addSessionFlags registers the credential and runtime override flags shared by launch and args
func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("username", "u", DefaultUsername, MsgFlagUsername)
	cmd.Flags().String("uuid", "", MsgFlagUUID)
	cmd.Flags().String("access-token", "", MsgFlagAccessToken)
	cmd.Flags().String("user-type", "", MsgFlagUserType)
	cmd.Flags().String("java", "", MsgFlagJava)
	cmd.Flags().String("min-ram", "", MsgFlagMinRAM)
	cmd.Flags().String("max-ram", "", MsgFlagMaxRAM)
}

// sessionOverrides maps the runtime flags onto configuration keys
func sessionOverrides(cmd *cobra.Command) map[string]interface{} {
	keys := map[string]string{
		"java":    "java.executable",
		"min-ram": "java.min_ram",
		"max-ram": "java.max_ram",
	}
	overrides := map[string]interface{}{}
	for flag, key := range keys {
		if cmd.Flags().Changed(flag) {
			value, _ := cmd.Flags().GetString(flag)
			overrides[key] = value
		}
	}
	return overrides
}

func credentialFromFlags(cmd *cobra.Command) (types.Credential, error) {
	username, _ := cmd.Flags().GetString("username")
	id, _ := cmd.Flags().GetString("uuid")
	token, _ := cmd.Flags().GetString("access-token")
	userType, _ := cmd.Flags().GetString("user-type")

	var (
		cred types.Credential
		err  error
	)
	if id == "" && token == "" && userType == "" {
		cred, err = auth.Offline(username)
	} else {
		cred, err = auth.Explicit(username, id, token, userType)
	}
	if err != nil {
		return types.Credential{}, fmt.Errorf(MsgErrCredential, err)
	}
	return cred, nil
}

// prepareSession runs everything up to, but not including, the spawn.
// Inspection commands pass readOnly so nothing on disk can change.
func prepareSession(cmd *cobra.Command, args []string, readOnly bool) (*launcher.Launcher, *launcher.Session, error) {
	w, err := initWorkspace(cmd, sessionOverrides(cmd))
	if err != nil {
		return nil, nil, err
	}
	if readOnly {
		w.fs = filesystem.NewReadOnlyOS()
	}
	server, err := w.server(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	cred, err := credentialFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	l := w.launcher()
	s, err := l.Prepare(server, cred)
	if err != nil {
		return nil, nil, stageError(err)
	}
	return l, s, nil
}

// stageError names the failed launch stage in the message shown to the user
func stageError(err error) error {
	if stage := errors.GetStage(err); stage != "" {
		return fmt.Errorf(MsgErrLaunchStage, strings.ToLower(stage), err)
	}
	return err
}

func newLaunchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "launch [server]",
		Short:             MsgLaunchShort,
		Long:              MsgLaunchLong,
		Example:           MsgLaunchExample,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "core",
		ValidArgsFunction: serverCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			noWait, _ := cmd.Flags().GetBool("no-wait")

			l, s, err := prepareSession(cmd, args, false)
			if err != nil {
				return err
			}

			log.Info().
				Str("server", s.Server.ID).
				Str("strategy", s.Strategy.Name()).
				Bool("wait", !noWait).
				Msg("Launching")

			proc, err := l.Spawn(s)
			if err != nil {
				return stageError(err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgLaunched, s.Server.ID, s.VersionName(), proc.PID())

			if noWait {
				fmt.Fprintf(out, MsgDetachedNotice, logging.LogFilePath())
				return proc.Release()
			}
			if err := proc.Wait(); err != nil {
				return fmt.Errorf(MsgErrGameExited, err)
			}
			fmt.Fprint(out, MsgGameExited)
			return nil
		},
	}

	addSessionFlags(cmd)
	cmd.Flags().Bool("no-wait", false, MsgFlagNoWait)

	return cmd
}

func newArgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "args [server]",
		Short:             MsgArgsShort,
		Long:              MsgArgsLong,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "core",
		ValidArgsFunction: serverCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := prepareSession(cmd, args, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgStrategyComment, s.VersionName(), s.Strategy.Name())
			for _, arg := range s.CommandLine() {
				fmt.Fprintln(out, arg)
			}
			return nil
		},
	}

	addSessionFlags(cmd)

	return cmd
}

func newClasspathCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "classpath [server]",
		Short:             MsgClasspathShort,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "core",
		ValidArgsFunction: serverCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := prepareSession(cmd, args, true)
			if err != nil {
				return err
			}
			for _, entry := range s.Classpath {
				fmt.Fprintln(cmd.OutOrStdout(), entry)
			}
			return nil
		},
	}
}

func newServersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "servers",
		Short:   MsgServersShort,
		Long:    MsgServersLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := initWorkspace(cmd, nil)
			if err != nil {
				return err
			}
			dist, err := w.loadDistribution(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(dist.Servers) == 0 {
				fmt.Fprintln(out, MsgNoServers)
				return nil
			}

			mainServer := dist.MainServer()
			var rows [][]string
			for _, s := range dist.Servers {
				id := s.ID
				if s == mainServer {
					id += " *"
				}
				loader := "vanilla"
				if m := distribution.FindLoader(s); m != nil {
					loader = m.ID
				}
				rows = append(rows, []string{id, s.Name, s.MinecraftVersion, loader, s.Address})
			}
			fmt.Fprint(out, table([]string{"ID", "NAME", "MINECRAFT", "LOADER", "ADDRESS"}, rows))
			return nil
		},
	}
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "modules [server]",
		Short:             MsgModulesShort,
		Long:              MsgModulesLong,
		Args:              cobra.MaximumNArgs(1),
		GroupID:           "core",
		ValidArgsFunction: serverCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := initWorkspace(cmd, nil)
			if err != nil {
				return err
			}
			server, err := w.server(cmd, args)
			if err != nil {
				return err
			}

			enabled := w.launcher().ModFilter(server)
			var rows [][]string
			for _, root := range server.Modules {
				root.Walk(func(m *types.Module) {
					if !m.Type.IsUserExtension() {
						return
					}
					state := mutedStyle.Render("disabled")
					if enabled(m) {
						state = enabledStyle.Render("enabled")
					}
					kind := "optional"
					if m.Required.Value {
						kind = "required"
					}
					rows = append(rows, []string{m.ID, string(m.Type), kind, state})
				})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, MsgNoMods, server.ID)
				return nil
			}
			fmt.Fprint(out, table([]string{"MODULE", "TYPE", "REQUIRED", "STATE"}, rows))
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			w, err := initWorkspace(cmd, nil)
			if err != nil {
				return err
			}
			target := w.paths.ConfigFilePath()
			if configPath, _ := cmd.Root().PersistentFlags().GetString("config"); configPath != "" {
				target = configPath
			}
			if !force && filesystem.Exists(w.fs, target) {
				return fmt.Errorf(MsgErrConfigExists, target)
			}

			data, err := config.GenerateTOML(w.cfg)
			if err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			if err := w.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			if err := w.fs.WriteFile(target, data, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteConfig, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, MsgFlagForce)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := initWorkspace(cmd, nil)
			if err != nil {
				return err
			}
			data, err := config.GenerateTOML(w.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clean",
		Short:   MsgCleanShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := initWorkspace(cmd, nil)
			if err != nil {
				return err
			}
			if err := w.launcher().CleanNatives(); err != nil {
				return fmt.Errorf(MsgErrClean, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), MsgNativesCleaned)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func writeCompletion(root *cobra.Command, shell string, out io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(out, true)
	case "zsh":
		return root.GenZshCompletion(out)
	case "fish":
		return root.GenFishCompletion(out, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(out)
	}
	return fmt.Errorf("unknown shell: %s", shell)
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		Args:    cobra.NoArgs,
		Hidden:  true,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "MCLAUNCH",
				Section: "1",
				Source:  "mclaunch " + version.Version,
				Manual:  "mclaunch manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
