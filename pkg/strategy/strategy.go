package strategy

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/compiler"
	"github.com/arthur-debert/mclaunch/pkg/errors"
	"github.com/arthur-debert/mclaunch/pkg/logging"
	"github.com/arthur-debert/mclaunch/pkg/resolver"
	"golang.org/x/mod/semver"
)

// Strategy post-processes compiled arguments for one bootstrap style
type Strategy interface {
	Name() string
	// ModulePath returns the absolute module path entries, empty for flat launches
	ModulePath() []string
	Apply(args compiler.Arguments) compiler.Arguments
}

// Loader identifies the extension loader of a launch
type Loader struct {
	// ModuleID is the distribution module identity, e.g. net.neoforged:neoforge:21.1.219
	ModuleID string
	// ManifestID is the loader's version manifest id, e.g. neoforge-21.1.219
	ManifestID string
}

// Options holds what the modular strategy needs from the session
type Options struct {
	Profiles         []Profile
	LibraryDirectory string
	VersionJar       string
	LauncherName     string
}

// Select picks the strategy for loader. A nil loader, or one without a
// modular signature, launches flat. A modular loader always launches modular:
// when no profile range covers its version the closest profile is used.
func Select(loader *Loader, opts Options) (Strategy, error) {
	logger := logging.GetLogger("strategy")

	profiles := opts.Profiles
	if profiles == nil {
		profiles = DefaultProfiles
	}
	if loader == nil {
		return Flat{}, nil
	}

	identity := strings.ToLower(loader.ModuleID + " " + loader.ManifestID)
	var family []Profile
	for _, p := range profiles {
		if p.Signature != "" && strings.Contains(identity, strings.ToLower(p.Signature)) {
			family = append(family, p)
		}
	}
	if len(family) == 0 {
		logger.Debug().Str("loader", loader.ModuleID).Msg("Using flat strategy")
		return Flat{}, nil
	}

	version := LoaderVersion(loader, family[0].Signature)
	profile, ok := matchProfile(family, version)
	if !ok {
		profile = closestProfile(family, version)
		logger.Warn().
			Str("loader", loader.ModuleID).
			Str("version", version).
			Str("profile", profile.Name).
			Msg("No bootstrap profile covers this loader version, using the closest one")
	}

	if err := compiler.Validate(profile.templates(), nil); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "profile %s carries a manifest placeholder", profile.Name)
	}

	modulePath, err := resolver.New(resolver.Options{LibraryRoot: opts.LibraryDirectory}).
		ResolveCoordinates(profile.ModulePath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "profile %s has an invalid module path", profile.Name)
	}

	logger.Debug().
		Str("loader", loader.ModuleID).
		Str("profile", profile.Name).
		Str("version", version).
		Msg("Using modular strategy")

	return &Modular{
		profile:       profile,
		loaderVersion: version,
		modulePath:    modulePath,
		libraryDir:    opts.LibraryDirectory,
		versionJar:    opts.VersionJar,
		launcherName:  opts.LauncherName,
	}, nil
}

// LoaderVersion extracts the loader release from its identity:
// net.neoforged:neoforge:21.1.219 and neoforge-21.1.219 both give 21.1.219.
func LoaderVersion(loader *Loader, signature string) string {
	id := loader.ModuleID
	if id == "" {
		id = loader.ManifestID
	}
	if i := strings.LastIndex(id, ":"); i >= 0 {
		id = id[i+1:]
	}
	return strings.TrimPrefix(id, strings.ToLower(signature)+"-")
}

func matchProfile(profiles []Profile, version string) (Profile, bool) {
	v := canonical(version)
	if v == "" {
		return Profile{}, false
	}
	for _, p := range profiles {
		if semver.Compare(v, canonical(p.MinVersion)) >= 0 && semver.Compare(v, canonical(p.MaxVersion)) < 0 {
			return p, true
		}
	}
	return Profile{}, false
}

// closestProfile returns the newest profile starting at or below version, or
// the newest profile overall when version predates them all or is unreadable.
func closestProfile(profiles []Profile, version string) Profile {
	v := canonical(version)
	newest, lower := -1, -1
	for i, p := range profiles {
		start := canonical(p.MinVersion)
		if newest < 0 || semver.Compare(start, canonical(profiles[newest].MinVersion)) > 0 {
			newest = i
		}
		if v != "" && semver.Compare(start, v) <= 0 &&
			(lower < 0 || semver.Compare(start, canonical(profiles[lower].MinVersion)) > 0) {
			lower = i
		}
	}
	if lower >= 0 {
		return profiles[lower]
	}
	return profiles[newest]
}

// canonical normalizes a version to semver, ignoring pre-release tags
func canonical(version string) string {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return ""
	}
	v := semver.Canonical(version)
	if pre := semver.Prerelease(v); pre != "" {
		v = strings.TrimSuffix(v, pre)
	}
	return v
}

// Flat launches the loader's own main class from the classpath
type Flat struct{}

func (Flat) Name() string { return "flat" }

func (Flat) ModulePath() []string { return nil }

func (Flat) Apply(args compiler.Arguments) compiler.Arguments { return args.Clone() }

// Modular launches through a bootstrap launcher with a module path
type Modular struct {
	profile       Profile
	loaderVersion string
	modulePath    []string
	libraryDir    string
	versionJar    string
	launcherName  string
}

func (m *Modular) Name() string { return "modular:" + m.profile.Name }

func (m *Modular) ModulePath() []string { return append([]string(nil), m.modulePath...) }

// Profile returns the matched loader profile
func (m *Modular) Profile() Profile { return m.profile }

// Apply rebuilds both segments around the bootstrap entry point
func (m *Modular) Apply(args compiler.Arguments) compiler.Arguments {
	r := m.replacer()

	// Properties and grants this strategy owns replace any copies in the templates
	owned := make(map[string]bool)
	for _, p := range append(append([]string(nil), m.profile.Properties...), m.profile.TrailingProperties...) {
		owned[propertyKey(p)] = true
	}
	pre := make([]string, 0, len(args.JVM))
	for i := 0; i < len(args.JVM); i++ {
		tok := args.JVM[i]
		switch {
		case tok == "-p" || tok == "--module-path":
			i++
			continue
		case strings.HasPrefix(tok, "--module-path="):
			continue
		case owned[propertyKey(tok)]:
			continue
		}
		pre = append(pre, tok)
	}
	pre = removePairs(pre, m.profile.Grants)

	jvm := make([]string, 0, len(pre)+len(m.profile.Properties)+len(m.profile.Grants)+4)
	for _, p := range m.profile.Properties {
		jvm = append(jvm, r.Replace(p))
	}
	jvm = append(jvm, pre...)
	jvm = append(jvm, "-p", resolver.Join(m.modulePath))
	jvm = append(jvm, m.profile.Grants...)
	for _, p := range m.profile.TrailingProperties {
		jvm = append(jvm, r.Replace(p))
	}

	strip := make(map[string]bool, len(m.profile.StripProgramFlags))
	for _, f := range m.profile.StripProgramFlags {
		strip[f] = true
	}
	game := make([]string, 0, len(args.Game)+len(m.profile.ProgramFlags))
	for i := 0; i < len(args.Game); i++ {
		if strip[args.Game[i]] {
			i++
			continue
		}
		game = append(game, args.Game[i])
	}
	for _, f := range m.profile.ProgramFlags {
		game = append(game, r.Replace(f))
	}

	return compiler.Arguments{
		JVM:       jvm,
		MainClass: m.profile.BootstrapMainClass,
		Game:      game,
	}
}

func (m *Modular) replacer() *strings.Replacer {
	return strings.NewReplacer(
		"{loader_version}", m.loaderVersion,
		"{minecraft_version}", m.profile.MinecraftVersion,
		"{fml_version}", m.profile.FMLVersion,
		"{launcher_name}", m.launcherName,
		"{game_main_class}", m.profile.GameMainClass,
		"{library_directory}", m.libraryDir,
		"{minecraft_jar}", m.versionJar,
		"{ignore_list}", m.ignoreList(),
	)
}

func (m *Modular) ignoreList() string {
	names := make([]string, 0, len(m.modulePath)+len(m.profile.IgnoreList)+1)
	for _, p := range m.modulePath {
		names = append(names, filepath.Base(p))
	}
	names = append(names, m.profile.IgnoreList...)
	if m.versionJar != "" {
		names = append(names, filepath.Base(m.versionJar))
	}
	return strings.Join(names, ",")
}

// propertyKey returns "-Dname=" for a system property token, "" otherwise
func propertyKey(tok string) string {
	if !strings.HasPrefix(tok, "-D") {
		return ""
	}
	if i := strings.Index(tok, "="); i > 0 {
		return tok[:i+1]
	}
	return ""
}

// removePairs drops every adjacent (flag, value) pair of tokens found in pairs
func removePairs(tokens, pairs []string) []string {
	want := make(map[[2]string]bool, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		want[[2]string{pairs[i], pairs[i+1]}] = true
	}
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) && want[[2]string{tokens[i], tokens[i+1]}] {
			i++
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}
