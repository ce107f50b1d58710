// Package rules evaluates the platform rules attached to library entries and
// conditional arguments of a version manifest.
//
// # Evaluation
//
// Rules are scanned in order with a running allowed flag that starts false.
// Every rule that applies to the environment sets the flag to its own action,
// so the last applicable rule wins:
//
//	[{"action":"allow"}, {"action":"disallow","os":{"name":"osx"}}]
//
// is included everywhere except on macOS, while
//
//	[{"action":"disallow","os":{"name":"osx"}}, {"action":"allow"}]
//
// is included everywhere. An empty rule list is always included.
//
// A rule applies when its os constraint (name, arch, version pattern) and its
// feature constraints all match. A rule without constraints applies to every
// environment.
package rules
