package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgument_JSON(t *testing.T) {
	raw := `[
		"--username",
		{"rules":[{"action":"allow","os":{"name":"osx"}}],"value":"-XstartOnFirstThread"},
		{"rules":[{"action":"allow","features":{"has_custom_resolution":true}}],"value":["--width","${resolution_width}"]},
		{"rules":[{"action":"allow"}]}
	]`

	var args []Argument
	require.NoError(t, json.Unmarshal([]byte(raw), &args))
	require.Len(t, args, 4)

	assert.False(t, args[0].IsConditional())
	assert.Equal(t, "--username", args[0].Literal)

	assert.True(t, args[1].IsConditional())
	assert.Equal(t, StringList{"-XstartOnFirstThread"}, args[1].Value)
	assert.Equal(t, "osx", args[1].Rules[0].OS.Name)

	assert.Equal(t, StringList{"--width", "${resolution_width}"}, args[2].Value)
	assert.True(t, args[2].Rules[0].Features["has_custom_resolution"])

	assert.True(t, args[3].IsConditional(), "a rule entry without value is still conditional")
	assert.Empty(t, args[3].Value)

	out, err := json.Marshal(args[:3])
	require.NoError(t, err)
	var again []Argument
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, args[:3], again)
}

func TestArgument_InvalidJSON(t *testing.T) {
	var arg Argument
	assert.Error(t, json.Unmarshal([]byte(`42`), &arg))

	var list StringList
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &list))
}

func TestVersionManifest_Templates(t *testing.T) {
	t.Run("modern", func(t *testing.T) {
		m := &VersionManifest{Arguments: &Arguments{JVM: Lit("-cp", "${classpath}"), Game: Lit("--demo")}}
		assert.Equal(t, Lit("-cp", "${classpath}"), m.JVMTemplates())
		assert.Equal(t, Lit("--demo"), m.GameTemplates())
	})

	t.Run("legacy", func(t *testing.T) {
		m := &VersionManifest{MinecraftArguments: "--username ${auth_player_name}  --version ${version_name}"}
		assert.Equal(t, Lit("-Djava.library.path=${natives_directory}", "-cp", "${classpath}"), m.JVMTemplates())
		assert.Equal(t, Lit("--username", "${auth_player_name}", "--version", "${version_name}"), m.GameTemplates())
	})

	t.Run("nil", func(t *testing.T) {
		var m *VersionManifest
		assert.Nil(t, m.JVMTemplates())
		assert.Nil(t, m.GameTemplates())
	})
}

func TestModuleType(t *testing.T) {
	tests := []struct {
		typ       ModuleType
		library   bool
		loader    bool
		extension bool
	}{
		{ModuleLibrary, true, false, false},
		{ModuleForgeHosted, true, true, false},
		{ModuleForge, true, true, false},
		{ModuleFabric, true, true, false},
		{ModuleForgeMod, false, false, true},
		{ModuleFabricMod, false, false, true},
		{ModuleLiteMod, false, false, true},
		{ModuleVersionManifest, false, false, false},
		{ModuleFile, false, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.library, tt.typ.IsLibrary())
			assert.Equal(t, tt.loader, tt.typ.IsLoader())
			assert.Equal(t, tt.extension, tt.typ.IsUserExtension())
		})
	}
}

func TestModule(t *testing.T) {
	tree := &Module{
		ID:       "net.neoforged:neoforge:21.1.219",
		Artifact: &Artifact{Path: "a.jar"},
		SubModules: []*Module{
			{ID: "child", SubModules: []*Module{{ID: "grandchild"}}},
			nil,
			{ID: "sibling"},
		},
	}

	var visited []string
	tree.Walk(func(m *Module) { visited = append(visited, m.ID) })
	assert.Equal(t, []string{"net.neoforged:neoforge:21.1.219", "child", "grandchild", "sibling"}, visited)

	assert.Equal(t, "21.1.219", tree.Version())
	assert.Equal(t, "child", tree.SubModules[0].Version())
	assert.True(t, tree.HasArtifactPath())
	assert.False(t, tree.SubModules[0].HasArtifactPath())
}

func TestDistribution_Lookup(t *testing.T) {
	d := &Distribution{Servers: []*Server{{ID: "a"}, {ID: "b", MainServer: true}}}
	assert.Equal(t, "b", d.MainServer().ID)
	assert.Equal(t, "a", d.Server("a").ID)
	assert.Nil(t, d.Server("c"))
	assert.Nil(t, (&Distribution{}).MainServer())
}

func TestLibrary_ArtifactPath(t *testing.T) {
	assert.Equal(t, "", Library{}.ArtifactPath())
	assert.Equal(t, "x.jar", Library{Downloads: &LibraryDownloads{Artifact: &LibraryArtifact{Path: "x.jar"}}}.ArtifactPath())
}
