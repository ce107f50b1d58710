// Package types defines the data model shared by the launcher packages.
// This includes the distribution manifest (servers and their module trees),
// the version manifest consumed as the runtime launch template, the
// credential record and the FS interface used for filesystem access.
package types
