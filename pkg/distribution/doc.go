// Package distribution loads the manifests a launch consumes: the distribution
// index (JSON or YAML) listing servers and their module trees, and the version
// manifests of the base runtime and its extension loader.
//
// Module nodes are normalized here. A node may arrive either as a plain module
// or wrapped as {"rawModule": {...}, "subModules": [...]}; both become a single
// types.Module so that resolution code never inspects node shapes.
package distribution
