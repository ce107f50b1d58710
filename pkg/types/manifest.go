package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RuleAction is the effect of a matching rule
type RuleAction string

const (
	RuleAllow    RuleAction = "allow"
	RuleDisallow RuleAction = "disallow"
)

// OSConstraint scopes a rule to a platform
type OSConstraint struct {
	Name    string `json:"name,omitempty"`
	Arch    string `json:"arch,omitempty"`
	Version string `json:"version,omitempty"`
}

// Rule is one allow/disallow condition of a conditional argument or library
type Rule struct {
	Action   RuleAction      `json:"action"`
	OS       *OSConstraint   `json:"os,omitempty"`
	Features map[string]bool `json:"features,omitempty"`
}

// StringList is a value that decodes from either a string or a list of strings
type StringList []string

// UnmarshalJSON accepts "x" as well as ["x", "y"]
func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("value must be a string or a list of strings: %w", err)
	}
	*s = many
	return nil
}

// Argument is one entry of an argument template: a literal token, or a
// conditional value gated by rules.
type Argument struct {
	Literal string
	Rules   []Rule
	Value   StringList
}

// IsConditional reports whether the argument carries rules
func (a Argument) IsConditional() bool {
	return a.Literal == "" && a.Value != nil
}

// UnmarshalJSON decodes both argument shapes
func (a *Argument) UnmarshalJSON(data []byte) error {
	var literal string
	if err := json.Unmarshal(data, &literal); err == nil {
		*a = Argument{Literal: literal}
		return nil
	}
	var conditional struct {
		Rules []Rule     `json:"rules"`
		Value StringList `json:"value"`
	}
	if err := json.Unmarshal(data, &conditional); err != nil {
		return fmt.Errorf("invalid argument entry: %w", err)
	}
	if conditional.Value == nil {
		conditional.Value = StringList{}
	}
	*a = Argument{Rules: conditional.Rules, Value: conditional.Value}
	return nil
}

// MarshalJSON writes the argument back in its source shape
func (a Argument) MarshalJSON() ([]byte, error) {
	if !a.IsConditional() {
		return json.Marshal(a.Literal)
	}
	return json.Marshal(struct {
		Rules []Rule     `json:"rules"`
		Value StringList `json:"value"`
	}{a.Rules, a.Value})
}

// Lit builds literal arguments
func Lit(tokens ...string) []Argument {
	args := make([]Argument, 0, len(tokens))
	for _, t := range tokens {
		args = append(args, Argument{Literal: t})
	}
	return args
}

// Arguments holds the two template lists of a version manifest
type Arguments struct {
	JVM  []Argument `json:"jvm,omitempty"`
	Game []Argument `json:"game,omitempty"`
}

// LibraryArtifact is the per-platform download descriptor of a library
type LibraryArtifact struct {
	Path string `json:"path"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// LibraryDownloads groups the downloadable files of a library
type LibraryDownloads struct {
	Artifact *LibraryArtifact `json:"artifact,omitempty"`
}

// Library is one declared runtime library
type Library struct {
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
}

// ArtifactPath returns the relative on-disk path of the library, if any
func (l Library) ArtifactPath() string {
	if l.Downloads == nil || l.Downloads.Artifact == nil {
		return ""
	}
	return l.Downloads.Artifact.Path
}

// VersionManifest describes one concrete runtime version, either the base
// game or a loader layered on top of it.
type VersionManifest struct {
	ID                 string     `json:"id"`
	Type               string     `json:"type,omitempty"`
	InheritsFrom       string     `json:"inheritsFrom,omitempty"`
	MainClass          string     `json:"mainClass,omitempty"`
	Assets             string     `json:"assets,omitempty"`
	Libraries          []Library  `json:"libraries,omitempty"`
	Arguments          *Arguments `json:"arguments,omitempty"`
	MinecraftArguments string     `json:"minecraftArguments,omitempty"`
	Logging            *Logging   `json:"logging,omitempty"`
}

// Logging groups the logger configurations of a runtime by side
type Logging struct {
	Client *LoggingConfig `json:"client,omitempty"`
}

// LoggingConfig is a logger configuration file and the flag that loads it.
// Argument carries a ${path} placeholder for the file location.
type LoggingConfig struct {
	Argument string      `json:"argument"`
	File     LoggingFile `json:"file"`
	Type     string      `json:"type,omitempty"`
}

// LoggingFile describes the configuration file itself
type LoggingFile struct {
	ID   string `json:"id"`
	SHA1 string `json:"sha1,omitempty"`
	Size int64  `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// ClientLogging returns the client logging config, or nil when the runtime ships none
func (v *VersionManifest) ClientLogging() *LoggingConfig {
	if v == nil || v.Logging == nil || v.Logging.Client == nil {
		return nil
	}
	c := v.Logging.Client
	if c.Argument == "" || c.File.ID == "" {
		return nil
	}
	return c
}

// legacyJVMArguments are used for manifests that predate argument templates
var legacyJVMArguments = []string{"-Djava.library.path=${natives_directory}", "-cp", "${classpath}"}

// JVMTemplates returns the runtime flag templates of the manifest
func (v *VersionManifest) JVMTemplates() []Argument {
	if v == nil {
		return nil
	}
	if v.Arguments != nil {
		return v.Arguments.JVM
	}
	if v.MinecraftArguments != "" {
		return Lit(legacyJVMArguments...)
	}
	return nil
}

// GameTemplates returns the program flag templates of the manifest
func (v *VersionManifest) GameTemplates() []Argument {
	if v == nil {
		return nil
	}
	if v.Arguments != nil {
		return v.Arguments.Game
	}
	return Lit(strings.Fields(v.MinecraftArguments)...)
}
