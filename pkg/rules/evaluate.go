package rules

import (
	"regexp"

	"github.com/arthur-debert/mclaunch/pkg/types"
)

// Evaluate decides whether an entry guarded by rules is included in env
func Evaluate(rules []types.Rule, env Env) bool {
	if len(rules) == 0 {
		return true
	}
	allowed := false
	for _, rule := range rules {
		if Applies(rule, env) {
			allowed = rule.Action == types.RuleAllow
		}
	}
	return allowed
}

// Applies reports whether every constraint of rule matches env
func Applies(rule types.Rule, env Env) bool {
	if rule.OS != nil {
		if rule.OS.Name != "" && rule.OS.Name != env.OS {
			return false
		}
		if rule.OS.Arch != "" && rule.OS.Arch != env.Arch {
			return false
		}
		if rule.OS.Version != "" {
			re, err := regexp.Compile(rule.OS.Version)
			if err != nil || env.OSVersion == "" || !re.MatchString(env.OSVersion) {
				return false
			}
		}
	}
	for name, want := range rule.Features {
		if env.Features[name] != want {
			return false
		}
	}
	return true
}

// Expand returns the tokens an argument contributes in env
func Expand(arg types.Argument, env Env) []string {
	if !arg.IsConditional() {
		return []string{arg.Literal}
	}
	if !Evaluate(arg.Rules, env) {
		return nil
	}
	return append([]string(nil), arg.Value...)
}

// ExpandAll expands args in order, flattening list values in place
func ExpandAll(args []types.Argument, env Env) []string {
	var tokens []string
	for _, arg := range args {
		tokens = append(tokens, Expand(arg, env)...)
	}
	return tokens
}

// FilterLibraries keeps the libraries whose rules include env
func FilterLibraries(libs []types.Library, env Env) []types.Library {
	var kept []types.Library
	for _, lib := range libs {
		if Evaluate(lib.Rules, env) {
			kept = append(kept, lib)
		}
	}
	return kept
}

// UsesFeature reports whether any conditional argument is gated on feature
func UsesFeature(args []types.Argument, feature string) bool {
	for _, arg := range args {
		for _, rule := range arg.Rules {
			if _, ok := rule.Features[feature]; ok {
				return true
			}
		}
	}
	return false
}
