// Package strategy chooses how the compiled arguments bootstrap the game.
//
// The flat strategy launches the loader's main class with everything on the
// classpath. The modular strategy is used for loaders that start through a
// bootstrap launcher building a module layer first: it replaces the entry
// point, adds a module path and access grants, and re-derives the loader's
// version flags.
//
// Modular loaders are described by Profile values in a table keyed by loader
// family and version range. Supporting another loader release means adding a
// row, not code.
package strategy
