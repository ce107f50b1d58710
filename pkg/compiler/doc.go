// Package compiler turns argument templates into a launch argument vector.
//
// Compilation keeps two segments apart: runtime flags (everything before the
// entry-point class) and program flags (everything after it). The entry point
// is held as its own value, so later transformations never search for it.
//
// Placeholders have the form ${name}. Only the names in Variables are known;
// a template that references any other name fails to compile instead of
// reaching the child process half-substituted. Substituted values are
// inserted literally and never rescanned.
package compiler
