// Package resolver flattens module trees and runtime library lists into
// ordered identity-to-path mappings and merges them into a classpath.
//
// Mappings keep first-insertion order while letting a later write for the
// same identity replace the path. The classpath is the runtime client jar,
// then runtime libraries, then distribution libraries, deduplicated by
// normalized path with the first occurrence kept.
package resolver
