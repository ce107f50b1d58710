package rules_test

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/arthur-debert/mclaunch/pkg/rules"
	"github.com/arthur-debert/mclaunch/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linux = rules.Env{OS: rules.OSLinux, Arch: "x86_64"}

func allow() types.Rule { return types.Rule{Action: types.RuleAllow} }

func disallow() types.Rule { return types.Rule{Action: types.RuleDisallow} }

func onOS(action types.RuleAction, name string) types.Rule {
	return types.Rule{Action: action, OS: &types.OSConstraint{Name: name}}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		rules []types.Rule
		env   rules.Env
		want  bool
	}{
		{"empty_list_included", nil, linux, true},
		{"unconditional_allow", []types.Rule{allow()}, linux, true},
		{"unconditional_disallow", []types.Rule{disallow()}, linux, false},
		{"other_platform_only", []types.Rule{onOS(types.RuleAllow, rules.OSMacOS)}, linux, false},
		{"host_platform_allow", []types.Rule{onOS(types.RuleAllow, rules.OSLinux)}, linux, true},
		{
			name:  "later_platform_rule_overrides_allow",
			rules: []types.Rule{allow(), onOS(types.RuleDisallow, rules.OSLinux)},
			env:   linux,
			want:  false,
		},
		{
			name:  "later_unconditional_overrides_platform_rule",
			rules: []types.Rule{onOS(types.RuleDisallow, rules.OSLinux), allow()},
			env:   linux,
			want:  true,
		},
		{
			name:  "non_matching_last_rule_keeps_earlier_result",
			rules: []types.Rule{allow(), onOS(types.RuleDisallow, rules.OSMacOS)},
			env:   linux,
			want:  true,
		},
		{
			name:  "arch_constraint",
			rules: []types.Rule{{Action: types.RuleAllow, OS: &types.OSConstraint{Arch: "x86"}}},
			env:   linux,
			want:  false,
		},
		{
			name:  "version_pattern_matches",
			rules: []types.Rule{{Action: types.RuleAllow, OS: &types.OSConstraint{Name: rules.OSWindows, Version: "^10\\."}}},
			env:   rules.Env{OS: rules.OSWindows, OSVersion: "10.0.19045"},
			want:  true,
		},
		{
			name:  "version_pattern_unknown_host_version",
			rules: []types.Rule{{Action: types.RuleAllow, OS: &types.OSConstraint{Name: rules.OSWindows, Version: "^10\\."}}},
			env:   rules.Env{OS: rules.OSWindows},
			want:  false,
		},
		{
			name:  "feature_enabled",
			rules: []types.Rule{{Action: types.RuleAllow, Features: map[string]bool{rules.FeatureCustomResolution: true}}},
			env:   linux.WithFeatures(map[string]bool{rules.FeatureCustomResolution: true}),
			want:  true,
		},
		{
			name:  "feature_absent_is_false",
			rules: []types.Rule{{Action: types.RuleAllow, Features: map[string]bool{rules.FeatureDemoUser: true}}},
			env:   linux,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.Evaluate(tt.rules, tt.env))
		})
	}
}

// Without platform-scoped rules the result is decided by the last rule alone
func TestEvaluate_UnscopedRulesFollowLastRule(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		n := rng.Intn(6)
		list := make([]types.Rule, n)
		for j := range list {
			if rng.Intn(2) == 0 {
				list[j] = allow()
			} else {
				list[j] = disallow()
			}
		}
		want := n == 0 || list[n-1].Action == types.RuleAllow
		require.Equal(t, want, rules.Evaluate(list, linux), "rules %+v", list)
	}
}

func TestExpand(t *testing.T) {
	var args []types.Argument
	require.NoError(t, json.Unmarshal([]byte(`[
		"--username", "${auth_player_name}",
		{"rules":[{"action":"allow","os":{"name":"osx"}}], "value":"-XstartOnFirstThread"},
		{"rules":[{"action":"allow","os":{"name":"linux"}}], "value":["-Xss1M","-Dlinux=true"]},
		{"rules":[{"action":"allow","features":{"has_custom_resolution":true}}], "value":["--width","${resolution_width}"]}
	]`), &args))

	t.Run("host_linux", func(t *testing.T) {
		assert.Equal(t,
			[]string{"--username", "${auth_player_name}", "-Xss1M", "-Dlinux=true"},
			rules.ExpandAll(args, linux))
	})

	t.Run("host_osx_with_resolution", func(t *testing.T) {
		env := rules.Env{OS: rules.OSMacOS}.WithFeatures(map[string]bool{rules.FeatureCustomResolution: true})
		assert.Equal(t,
			[]string{"--username", "${auth_player_name}", "-XstartOnFirstThread", "--width", "${resolution_width}"},
			rules.ExpandAll(args, env))
	})

	assert.True(t, rules.UsesFeature(args, rules.FeatureCustomResolution))
	assert.False(t, rules.UsesFeature(args, rules.FeatureQuickPlayMultiplayer))
}

func TestFilterLibraries(t *testing.T) {
	libs := []types.Library{
		{Name: "common"},
		{Name: "mac-only", Rules: []types.Rule{onOS(types.RuleAllow, rules.OSMacOS)}},
		{Name: "not-mac", Rules: []types.Rule{allow(), onOS(types.RuleDisallow, rules.OSMacOS)}},
	}

	var names []string
	for _, lib := range rules.FilterLibraries(libs, linux) {
		names = append(names, lib.Name)
	}
	assert.Equal(t, []string{"common", "not-mac"}, names)
}

func TestPlatformNames(t *testing.T) {
	assert.Equal(t, rules.OSWindows, rules.OSName("windows"))
	assert.Equal(t, rules.OSMacOS, rules.OSName("darwin"))
	assert.Equal(t, rules.OSLinux, rules.OSName("linux"))
	assert.Equal(t, rules.OSLinux, rules.OSName("freebsd"))
	assert.Equal(t, "x86", rules.ArchName("386"))
	assert.Equal(t, "x86_64", rules.ArchName("amd64"))
	assert.Equal(t, "arm64", rules.ArchName("arm64"))
}
