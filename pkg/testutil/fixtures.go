// pkg/testutil/fixtures.go
// DEPENDENCIES: types
// PURPOSE: Build realistic version manifests and distribution trees

package testutil

import (
	"github.com/arthur-debert/mclaunch/pkg/types"
)

// Fixture identities shared by tests
const (
	MinecraftVersion   = "1.21.1"
	NeoForgeVersion    = "21.1.219"
	NeoForgeModuleID   = "net.neoforged:neoforge:" + NeoForgeVersion
	NeoForgeManifestID = "neoforge-" + NeoForgeVersion
	FabricModuleID     = "net.fabricmc:fabric-loader:0.16.5"
	FabricManifestID   = "fabric-loader-0.16.5-1.21.1"
	VanillaMainClass   = "net.minecraft.client.main.Main"
	FabricMainClass    = "net.fabricmc.loader.impl.launch.knot.KnotClient"
	NeoForgeMainClass  = "cpw.mods.bootstraplauncher.BootstrapLauncher"
	LogConfigID        = "client-1.12.xml"
)

func osRule(action types.RuleAction, name string) []types.Rule {
	return []types.Rule{{Action: action, OS: &types.OSConstraint{Name: name}}}
}

func featureRule(feature string) []types.Rule {
	return []types.Rule{{Action: types.RuleAllow, Features: map[string]bool{feature: true}}}
}

func library(name, path string, rules ...types.Rule) types.Library {
	return types.Library{
		Name:      name,
		Downloads: &types.LibraryDownloads{Artifact: &types.LibraryArtifact{Path: path}},
		Rules:     rules,
	}
}

// VanillaManifest returns a base runtime manifest shaped like the 1.21.1 client
func VanillaManifest() *types.VersionManifest {
	jvm := []types.Argument{
		{Rules: osRule(types.RuleAllow, "osx"), Value: types.StringList{"-XstartOnFirstThread"}},
		{Rules: osRule(types.RuleAllow, "windows"), Value: types.StringList{"-XX:HeapDumpPath=MojangTricksIntelDriversForPerformance_javaw.exe_minecraft.exe.heapdump"}},
		{Rules: []types.Rule{{Action: types.RuleAllow, OS: &types.OSConstraint{Arch: "x86"}}}, Value: types.StringList{"-Xss1M"}},
	}
	jvm = append(jvm, types.Lit(
		"-Djava.library.path=${natives_directory}",
		"-Djna.tmpdir=${natives_directory}",
		"-Dminecraft.launcher.brand=${launcher_name}",
		"-Dminecraft.launcher.version=${launcher_version}",
		"-cp",
		"${classpath}",
	)...)

	game := types.Lit(
		"--username", "${auth_player_name}",
		"--version", "${version_name}",
		"--gameDir", "${game_directory}",
		"--assetsDir", "${assets_root}",
		"--assetIndex", "${assets_index_name}",
		"--uuid", "${auth_uuid}",
		"--accessToken", "${auth_access_token}",
		"--clientId", "${clientid}",
		"--xuid", "${auth_xuid}",
		"--userType", "${user_type}",
		"--versionType", "${version_type}",
	)
	game = append(game,
		types.Argument{Rules: featureRule("is_demo_user"), Value: types.StringList{"--demo"}},
		types.Argument{Rules: featureRule("has_custom_resolution"), Value: types.StringList{"--width", "${resolution_width}", "--height", "${resolution_height}"}},
		types.Argument{Rules: featureRule("has_quick_plays_support"), Value: types.StringList{"--quickPlayPath", "${quickPlayPath}"}},
		types.Argument{Rules: featureRule("is_quick_play_singleplayer"), Value: types.StringList{"--quickPlaySingleplayer", "${quickPlaySingleplayer}"}},
		types.Argument{Rules: featureRule("is_quick_play_multiplayer"), Value: types.StringList{"--quickPlayMultiplayer", "${quickPlayMultiplayer}"}},
		types.Argument{Rules: featureRule("is_quick_play_realms"), Value: types.StringList{"--quickPlayRealms", "${quickPlayRealms}"}},
	)

	return &types.VersionManifest{
		ID:        MinecraftVersion,
		Type:      "release",
		MainClass: VanillaMainClass,
		Assets:    "17",
		Libraries: []types.Library{
			library("com.mojang:brigadier:1.3.10", "com/mojang/brigadier/1.3.10/brigadier-1.3.10.jar"),
			library("org.ow2.asm:asm:9.6", "org/ow2/asm/asm/9.6/asm-9.6.jar"),
			library("org.lwjgl:lwjgl:3.3.3:natives-macos", "org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3-natives-macos.jar", osRule(types.RuleAllow, "osx")...),
			library("org.lwjgl:lwjgl:3.3.3:natives-linux", "org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3-natives-linux.jar", osRule(types.RuleAllow, "linux")...),
			library("org.lwjgl:lwjgl:3.3.3:natives-windows", "org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3-natives-windows.jar", osRule(types.RuleAllow, "windows")...),
		},
		Arguments: &types.Arguments{JVM: jvm, Game: game},
		Logging: &types.Logging{Client: &types.LoggingConfig{
			Argument: "-Dlog4j.configurationFile=${path}",
			File:     types.LoggingFile{ID: LogConfigID, Size: 888},
			Type:     "log4j2-xml",
		}},
	}
}

// LegacyManifest returns a base runtime manifest that predates argument templates
func LegacyManifest() *types.VersionManifest {
	return &types.VersionManifest{
		ID:        "1.12.2",
		Type:      "release",
		MainClass: VanillaMainClass,
		Assets:    "1.12",
		Libraries: []types.Library{
			library("com.mojang:authlib:1.5.25", "com/mojang/authlib/1.5.25/authlib-1.5.25.jar"),
		},
		MinecraftArguments: "--username ${auth_player_name} --version ${version_name} --gameDir ${game_directory} " +
			"--assetsDir ${assets_root} --assetIndex ${assets_index_name} --uuid ${auth_uuid} " +
			"--accessToken ${auth_access_token} --userType ${user_type}",
	}
}

// NeoForgeManifest returns a loader manifest shaped like NeoForge 21.1
func NeoForgeManifest() *types.VersionManifest {
	return &types.VersionManifest{
		ID:           NeoForgeManifestID,
		InheritsFrom: MinecraftVersion,
		Type:         "release",
		MainClass:    NeoForgeMainClass,
		Arguments: &types.Arguments{
			JVM: types.Lit(
				"-Djava.net.preferIPv6Addresses=system",
				"-DignoreList=client-extra,${version_name}.jar",
				"-DlibraryDirectory=${library_directory}",
				"-p", "${library_directory}/cpw/mods/bootstraplauncher/2.0.2/bootstraplauncher-2.0.2.jar",
				"--add-modules", "ALL-MODULE-PATH",
				"--add-opens", "java.base/java.util.jar=cpw.mods.securejarhandler",
			),
			Game: types.Lit(
				"--fml.neoForgeVersion", NeoForgeVersion,
				"--fml.fmlVersion", "4.0.42",
				"--fml.mcVersion", MinecraftVersion,
				"--fml.neoFormVersion", "20240808.144430",
				"--launchTarget", "forgeclient",
			),
		},
	}
}

// FabricManifest returns a loader manifest shaped like Fabric 0.16
func FabricManifest() *types.VersionManifest {
	return &types.VersionManifest{
		ID:           FabricManifestID,
		InheritsFrom: MinecraftVersion,
		Type:         "release",
		MainClass:    FabricMainClass,
		Arguments: &types.Arguments{
			JVM:  types.Lit("-DFabricMcEmu= net.minecraft.client.main.Main "),
			Game: []types.Argument{},
		},
	}
}

// Module builds a distribution module
func Module(id string, typ types.ModuleType, path string, subs ...*types.Module) *types.Module {
	m := &types.Module{
		ID:         id,
		Type:       typ,
		Required:   types.Required{Value: true, Def: true},
		SubModules: subs,
	}
	if path != "" {
		m.Artifact = &types.Artifact{Path: path}
	}
	return m
}

// OptionalMod builds a user extension that can be toggled
func OptionalMod(id string, def bool) *types.Module {
	m := Module(id, types.ModuleForgeMod, "mods/"+id+".jar")
	m.Required = types.Required{Value: false, Def: def}
	return m
}

// NeoForgeServer returns a server running NeoForge with a few mods
func NeoForgeServer() *types.Server {
	return &types.Server{
		ID:               "pixelmon",
		Name:             "Pixelmon",
		Address:          "play.example.net:25566",
		MinecraftVersion: MinecraftVersion,
		MainServer:       true,
		Modules: []*types.Module{
			Module(NeoForgeModuleID, types.ModuleForgeHosted, "net/neoforged/neoforge/21.1.219/neoforge-21.1.219-universal.jar",
				Module(NeoForgeModuleID+":manifest", types.ModuleVersionManifest, "versions/"+NeoForgeManifestID+".json"),
				Module("net.neoforged.fancymodloader:loader:4.0.42", types.ModuleLibrary, "net/neoforged/fancymodloader/loader/4.0.42/loader-4.0.42.jar"),
				Module("org.ow2.asm:asm:9.7", types.ModuleLibrary, "org/ow2/asm/asm/9.7/asm-9.7.jar"),
			),
			Module("local:jei:19.21.0", types.ModuleForgeMod, "mods/jei.jar"),
			OptionalMod("local:journeymap:6.0.0", true),
			OptionalMod("local:shaders:1.0.0", false),
		},
	}
}

// FabricServer returns a server running Fabric
func FabricServer() *types.Server {
	return &types.Server{
		ID:               "survival",
		Name:             "Survival",
		Address:          "survival.example.net",
		MinecraftVersion: MinecraftVersion,
		Autoconnect:      true,
		Modules: []*types.Module{
			Module(FabricModuleID, types.ModuleFabric, "net/fabricmc/fabric-loader/0.16.5/fabric-loader-0.16.5.jar",
				Module(FabricModuleID+":manifest", types.ModuleVersionManifest, "versions/"+FabricManifestID+".json"),
				Module("net.fabricmc:intermediary:1.21.1", types.ModuleLibrary, "net/fabricmc/intermediary/1.21.1/intermediary-1.21.1.jar"),
			),
		},
	}
}

// VanillaServer returns a server without an extension loader
func VanillaServer() *types.Server {
	return &types.Server{
		ID:               "vanilla",
		Name:             "Vanilla",
		Address:          "vanilla.example.net:25565",
		MinecraftVersion: MinecraftVersion,
	}
}

// Distribution bundles servers into an index
func Distribution(servers ...*types.Server) *types.Distribution {
	return &types.Distribution{Version: "1.0.0", Servers: servers}
}

// Seed writes the runtime and loader manifests every fixture server needs
func (env *TestEnvironment) Seed() {
	env.t.Helper()
	env.WriteVersionManifest(VanillaManifest())
	env.WriteVersionManifest(LegacyManifest())
	env.WriteVersionManifest(NeoForgeManifest())
	env.WriteVersionManifest(FabricManifest())
}

// SeedLogConfig writes the runtime's logger configuration and returns its path
func (env *TestEnvironment) SeedLogConfig() string {
	env.t.Helper()
	path := env.Paths.LogConfigPath(LogConfigID)
	env.WriteFile(path, []byte(`<Configuration status="WARN"><Appenders><Console name="SysOut" target="SYSTEM_OUT"><XMLLayout/></Console></Appenders></Configuration>`))
	return path
}
