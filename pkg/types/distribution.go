package types

// ModuleType tags the role of a module in the distribution tree
type ModuleType string

const (
	// ModuleLibrary is a plain library placed on the classpath
	ModuleLibrary ModuleType = "Library"
	// ModuleForgeHosted is a hosted loader jar (Forge / NeoForge universal)
	ModuleForgeHosted ModuleType = "ForgeHosted"
	// ModuleForge is a legacy, unhosted Forge loader
	ModuleForge ModuleType = "Forge"
	// ModuleFabric is a Fabric loader
	ModuleFabric ModuleType = "Fabric"
	// ModuleForgeMod is a user-installable Forge mod
	ModuleForgeMod ModuleType = "ForgeMod"
	// ModuleFabricMod is a user-installable Fabric mod
	ModuleFabricMod ModuleType = "FabricMod"
	// ModuleLiteMod is a user-installable LiteLoader mod
	ModuleLiteMod ModuleType = "LiteMod"
	// ModuleVersionManifest points at the version manifest of a loader
	ModuleVersionManifest ModuleType = "VersionManifest"
	// ModuleFile is an arbitrary file dropped into the instance
	ModuleFile ModuleType = "File"
)

// IsLibrary reports whether modules of this type belong on the classpath
func (t ModuleType) IsLibrary() bool {
	switch t {
	case ModuleLibrary, ModuleForgeHosted, ModuleForge, ModuleFabric:
		return true
	}
	return false
}

// IsLoader reports whether modules of this type are extension loaders
func (t ModuleType) IsLoader() bool {
	switch t {
	case ModuleForgeHosted, ModuleForge, ModuleFabric:
		return true
	}
	return false
}

// IsUserExtension reports whether modules of this type are user mods
func (t ModuleType) IsUserExtension() bool {
	switch t {
	case ModuleForgeMod, ModuleFabricMod, ModuleLiteMod:
		return true
	}
	return false
}

// Distribution is the root of the distribution manifest
type Distribution struct {
	Version string    `json:"version" yaml:"version"`
	Servers []*Server `json:"servers" yaml:"servers"`
}

// Server returns the server with the given id, or nil
func (d *Distribution) Server(id string) *Server {
	for _, s := range d.Servers {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// MainServer returns the server flagged as main, falling back to the first one
func (d *Distribution) MainServer() *Server {
	for _, s := range d.Servers {
		if s.MainServer {
			return s
		}
	}
	if len(d.Servers) > 0 {
		return d.Servers[0]
	}
	return nil
}

// JavaOptions describes the runtime a server expects
type JavaOptions struct {
	SuggestedMajor int    `json:"suggestedMajor,omitempty" yaml:"suggestedMajor,omitempty"`
	Supported      string `json:"supported,omitempty" yaml:"supported,omitempty"`
}

// Server is one launchable server definition
type Server struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Description      string       `json:"description,omitempty" yaml:"description,omitempty"`
	Icon             string       `json:"icon,omitempty" yaml:"icon,omitempty"`
	Version          string       `json:"version,omitempty" yaml:"version,omitempty"`
	Address          string       `json:"address" yaml:"address"`
	MinecraftVersion string       `json:"minecraftVersion" yaml:"minecraftVersion"`
	MainServer       bool         `json:"mainServer,omitempty" yaml:"mainServer,omitempty"`
	Autoconnect      bool         `json:"autoconnect,omitempty" yaml:"autoconnect,omitempty"`
	JavaOptions      *JavaOptions `json:"javaOptions,omitempty" yaml:"javaOptions,omitempty"`
	Modules          []*Module    `json:"modules" yaml:"modules"`
}

// Required is the required/default-enabled flag pair of a module
type Required struct {
	Value bool `json:"value" yaml:"value"`
	Def   bool `json:"def" yaml:"def"`
}

// Artifact describes the on-disk file of a module
type Artifact struct {
	Size int64  `json:"size" yaml:"size"`
	MD5  string `json:"MD5,omitempty" yaml:"MD5,omitempty"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Module is a node of the distribution tree
type Module struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Type       ModuleType `json:"type" yaml:"type"`
	Required   Required   `json:"required" yaml:"required"`
	Artifact   *Artifact  `json:"artifact,omitempty" yaml:"artifact,omitempty"`
	SubModules []*Module  `json:"subModules,omitempty" yaml:"subModules,omitempty"`
}

// HasArtifactPath reports whether the module declares an on-disk path
func (m *Module) HasArtifactPath() bool {
	return m.Artifact != nil && m.Artifact.Path != ""
}

// Version returns the last segment of a group:artifact:version identity
func (m *Module) Version() string {
	return lastSegment(m.ID)
}

// Walk visits the module and all its sub-modules depth first
func (m *Module) Walk(fn func(*Module)) {
	fn(m)
	for _, sub := range m.SubModules {
		if sub != nil {
			sub.Walk(fn)
		}
	}
}

func lastSegment(id string) string {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == ':' {
			return id[i+1:]
		}
	}
	return id
}
