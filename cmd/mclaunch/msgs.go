package mclaunch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build and start modded Minecraft sessions"
	MsgLaunchShort     = "Start the game for a server"
	MsgArgsShort       = "Print the command line of a server without starting it"
	MsgClasspathShort  = "Print the resolved classpath of a server"
	MsgServersShort    = "List the servers of the distribution"
	MsgServersLong     = "Servers lists every server found in the distribution index. The main server is marked with *."
	MsgModulesShort    = "List the mods of a server and whether they load"
	MsgModulesLong     = "Modules lists the user-installable mods of a server. Optional mods can be toggled with [[servers.<id>.mods]] entries in the config file."
	MsgConfigShort     = "Write or print the configuration"
	MsgConfigInitShort = "Write the effective configuration to the config file"
	MsgConfigShowShort = "Print the effective configuration"
	MsgCleanShort      = "Remove natives directories left by earlier launches"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Status messages
	MsgLaunched        = "Launched %s (%s) with pid %d\n"
	MsgDetachedNotice  = "Not waiting for the game; output goes to %s\n"
	MsgGameExited      = "Game exited\n"
	MsgConfigWritten   = "Wrote configuration to %s\n"
	MsgNativesCleaned  = "Removed natives directories\n"
	MsgNoServers       = "No servers in distribution."
	MsgNoMods          = "Server '%s' has no mods.\n"
	MsgVersionFormat   = "mclaunch %s (commit %s, built %s)\n"
	MsgStrategyComment = "# %s, %s\n"

	// Error messages
	MsgErrInitPaths     = "failed to initialize paths: %w"
	MsgErrLoadConfig    = "failed to load configuration: %w"
	MsgErrDistribution  = "failed to load distribution: %w"
	MsgErrServerMissing = "server '%s' not found in distribution"
	MsgErrNoServer      = "distribution has no servers"
	MsgErrCredential    = "invalid credential: %w"
	MsgErrLaunchStage   = "launch failed during %s: %w"
	MsgErrGameExited    = "game exited with an error: %w"
	MsgErrConfigExists  = "config file %s already exists (use --force to overwrite)"
	MsgErrWriteConfig   = "failed to write configuration: %w"
	MsgErrClean         = "failed to clean natives: %w"

	// Flag descriptions
	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Config file (default is $XDG_CONFIG_HOME/mclaunch/config.toml)"
	MsgFlagDistribution = "Distribution index, JSON or YAML (default is <data dir>/distribution.json)"
	MsgFlagUsername     = "Player name"
	MsgFlagUUID         = "Player UUID (default is derived from the name)"
	MsgFlagAccessToken  = "Session access token (default is a random offline token)"
	MsgFlagUserType     = "Session user type (mojang, msa, legacy)"
	MsgFlagNoWait       = "Return as soon as the game has started"
	MsgFlagJava         = "Java executable for this launch"
	MsgFlagMinRAM       = "Initial heap size for this launch (e.g. 2G)"
	MsgFlagMaxRAM       = "Maximum heap size for this launch (e.g. 4G)"
	MsgFlagForce        = "Overwrite an existing config file"

	// DefaultUsername is used when --username is not given
	DefaultUsername = "Player"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/launch-long.txt
	msgLaunchLongRaw string
	MsgLaunchLong    = strings.TrimSpace(msgLaunchLongRaw)

	//go:embed msgs/launch-example.txt
	msgLaunchExampleRaw string
	MsgLaunchExample    = strings.TrimRight(msgLaunchExampleRaw, "\n")

	//go:embed msgs/args-long.txt
	msgArgsLongRaw string
	MsgArgsLong    = strings.TrimSpace(msgArgsLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
