package strategy

// Profile describes the bootstrap requirements of one modular loader line.
//
// Properties and ProgramFlags may reference {loader_version},
// {minecraft_version}, {fml_version}, {launcher_name}, {game_main_class},
// {library_directory}, {minecraft_jar} and {ignore_list}.
type Profile struct {
	Name string
	// Signature is matched case-insensitively against the loader identity
	Signature string
	// MinVersion is inclusive, MaxVersion exclusive (semver, "v" prefix optional)
	MinVersion string
	MaxVersion string

	MinecraftVersion string
	FMLVersion       string

	BootstrapMainClass string
	GameMainClass      string

	// ModulePath lists maven coordinates resolved under the library directory
	ModulePath []string
	// IgnoreList names extra jar prefixes the bootstrap launcher skips on the classpath
	IgnoreList []string

	// Grants are appended to the runtime flags as they are, in pairs
	Grants []string
	// Properties are placed in front of the runtime flags
	Properties []string
	// TrailingProperties are appended after the grants
	TrailingProperties []string

	// StripProgramFlags are removed from the program flags with their value
	StripProgramFlags []string
	// ProgramFlags are appended to the program flags
	ProgramFlags []string
}

// templates returns every token the profile adds to a launch. They are
// substituted with {name} markers only, never with manifest placeholders.
func (p Profile) templates() []string {
	out := []string{p.BootstrapMainClass}
	for _, group := range [][]string{p.Grants, p.Properties, p.TrailingProperties, p.ProgramFlags} {
		out = append(out, group...)
	}
	return out
}

var neoforgeGrants = []string{
	"--add-modules", "ALL-MODULE-PATH",
	"--add-reads", "java.base=ALL-UNNAMED",
	"--add-reads", "cpw.mods.securejarhandler=ALL-UNNAMED",
	"--add-opens", "java.base/java.util.jar=cpw.mods.securejarhandler",
	"--add-opens", "java.base/java.lang.invoke=cpw.mods.securejarhandler",
	"--add-exports", "java.base/sun.security.util=cpw.mods.securejarhandler",
	"--add-exports", "jdk.naming.dns/com.sun.jndi.dns=java.naming",
}

var neoforgeProperties = []string{
	"-Dneoforge.version={loader_version}",
	"-Dminecraft.version={minecraft_version}",
	"-Dminecraft.launcher.brand={launcher_name}",
	"-Dlaunch.mainClass={game_main_class}",
	"-Dneo.subsystem.libraryDirectory={library_directory}",
	"-Dfml.minecraftJar={minecraft_jar}",
	"-Dbootstraplauncher.gamePath={minecraft_jar}",
	"-DignoreList={ignore_list}",
}

var neoforgeStripped = []string{
	"--launchTarget",
	"--fml.mcVersion",
	"--fml.neoForgeVersion",
	"--fml.fmlVersion",
}

var neoforgeProgramFlags = []string{
	"--fml.neoForgeVersion", "{loader_version}",
	"--fml.fmlVersion", "{fml_version}",
	"--fml.mcVersion", "{minecraft_version}",
	"--launchTarget", "forgeclient",
}

// DefaultProfiles is the built-in modular loader table
var DefaultProfiles = []Profile{
	{
		Name:               "neoforge-21.1",
		Signature:          "neoforge",
		MinVersion:         "v21.1.0",
		MaxVersion:         "v21.2.0",
		MinecraftVersion:   "1.21.1",
		FMLVersion:         "4.0.42",
		BootstrapMainClass: "cpw.mods.bootstraplauncher.BootstrapLauncher",
		GameMainClass:      "net.minecraft.client.main.Main",
		ModulePath: []string{
			"cpw.mods:bootstraplauncher:2.0.2",
			"cpw.mods:securejarhandler:3.0.8",
			"org.ow2.asm:asm-commons:9.7",
			"org.ow2.asm:asm-util:9.7",
			"org.ow2.asm:asm-analysis:9.7",
			"org.ow2.asm:asm-tree:9.7",
			"org.ow2.asm:asm:9.7",
			"net.neoforged:JarJarFileSystems:0.4.1",
		},
		IgnoreList:         []string{"client-extra"},
		Grants:             neoforgeGrants,
		Properties:         neoforgeProperties,
		TrailingProperties: []string{"-Dneoforge.main.serviceScan=true"},
		StripProgramFlags:  neoforgeStripped,
		ProgramFlags:       neoforgeProgramFlags,
	},
	{
		Name:               "neoforge-20.4",
		Signature:          "neoforge",
		MinVersion:         "v20.4.0",
		MaxVersion:         "v20.5.0",
		MinecraftVersion:   "1.20.4",
		FMLVersion:         "2.0.17",
		BootstrapMainClass: "cpw.mods.bootstraplauncher.BootstrapLauncher",
		GameMainClass:      "net.minecraft.client.main.Main",
		ModulePath: []string{
			"cpw.mods:bootstraplauncher:1.1.2",
			"cpw.mods:securejarhandler:2.1.24",
			"org.ow2.asm:asm-commons:9.5",
			"org.ow2.asm:asm-util:9.5",
			"org.ow2.asm:asm-analysis:9.5",
			"org.ow2.asm:asm-tree:9.5",
			"org.ow2.asm:asm:9.5",
			"net.neoforged:JarJarFileSystems:0.4.0",
		},
		IgnoreList:        []string{"client-extra"},
		Grants:            neoforgeGrants,
		Properties:        neoforgeProperties,
		StripProgramFlags: neoforgeStripped,
		ProgramFlags:      neoforgeProgramFlags,
	},
}
