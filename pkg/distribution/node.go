package distribution

import (
	"strings"

	"github.com/arthur-debert/mclaunch/pkg/types"
)

type requiredNode struct {
	Value *bool `json:"value" yaml:"value"`
	Def   *bool `json:"def" yaml:"def"`
}

type moduleNode struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Type       string          `json:"type" yaml:"type"`
	Required   *requiredNode   `json:"required" yaml:"required"`
	Artifact   *types.Artifact `json:"artifact" yaml:"artifact"`
	SubModules []*moduleNode   `json:"subModules" yaml:"subModules"`
	RawModule  *moduleNode     `json:"rawModule" yaml:"rawModule"`
}

type serverNode struct {
	ID               string             `json:"id" yaml:"id"`
	Name             string             `json:"name" yaml:"name"`
	Description      string             `json:"description" yaml:"description"`
	Icon             string             `json:"icon" yaml:"icon"`
	Version          string             `json:"version" yaml:"version"`
	Address          string             `json:"address" yaml:"address"`
	MinecraftVersion string             `json:"minecraftVersion" yaml:"minecraftVersion"`
	MainServer       bool               `json:"mainServer" yaml:"mainServer"`
	Autoconnect      bool               `json:"autoconnect" yaml:"autoconnect"`
	JavaOptions      *types.JavaOptions `json:"javaOptions" yaml:"javaOptions"`
	Modules          []*moduleNode      `json:"modules" yaml:"modules"`
}

type distributionNode struct {
	Version string        `json:"version" yaml:"version"`
	Servers []*serverNode `json:"servers" yaml:"servers"`
}

func (d *distributionNode) normalize() *types.Distribution {
	dist := &types.Distribution{Version: d.Version}
	for _, sn := range d.Servers {
		if sn == nil {
			continue
		}
		dist.Servers = append(dist.Servers, &types.Server{
			ID:               strings.TrimSpace(sn.ID),
			Name:             sn.Name,
			Description:      sn.Description,
			Icon:             sn.Icon,
			Version:          sn.Version,
			Address:          sn.Address,
			MinecraftVersion: sn.MinecraftVersion,
			MainServer:       sn.MainServer,
			Autoconnect:      sn.Autoconnect,
			JavaOptions:      sn.JavaOptions,
			Modules:          normalizeModules(sn.Modules),
		})
	}
	return dist
}

func normalizeModules(nodes []*moduleNode) []*types.Module {
	if len(nodes) == 0 {
		return nil
	}
	modules := make([]*types.Module, 0, len(nodes))
	for _, n := range nodes {
		if m := n.normalize(); m != nil {
			modules = append(modules, m)
		}
	}
	return modules
}

// normalize unwraps rawModule. The wrapper's own subModules win over the inner ones.
func (n *moduleNode) normalize() *types.Module {
	if n == nil {
		return nil
	}
	body := n
	if n.RawModule != nil {
		body = n.RawModule
	}
	children := n.SubModules
	if children == nil {
		children = body.SubModules
	}

	m := &types.Module{
		ID:         strings.TrimSpace(body.ID),
		Name:       body.Name,
		Type:       types.ModuleType(body.Type),
		Required:   body.Required.resolve(),
		Artifact:   body.Artifact,
		SubModules: normalizeModules(children),
	}
	return m
}

// resolve applies the manifest defaults: a module is required and enabled
// unless it says otherwise.
func (r *requiredNode) resolve() types.Required {
	req := types.Required{Value: true, Def: true}
	if r == nil {
		return req
	}
	if r.Value != nil {
		req.Value = *r.Value
	}
	if r.Def != nil {
		req.Def = *r.Def
	}
	return req
}
