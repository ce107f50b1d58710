// Package testutil provides test environments and manifest fixtures.
//
// A TestEnvironment bundles a filesystem (in-memory or a real temp dir) with
// a matching directory layout, and knows how to seed the files a launch reads:
// version manifests, library jars and distribution indexes.
package testutil
