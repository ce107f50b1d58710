// Package launcher prepares and starts a game session.
//
// A launch runs through four stages, and every failure is reported with the
// stage it happened in (see errors.GetStage):
//
//   - resolve:  load the runtime and loader manifests, flatten the module
//     tree and build the classpath
//   - strategy: choose the flat or modular bootstrap and post-process the
//     compiled arguments
//   - compile:  expand argument templates and substitute placeholders
//   - spawn:    create the session directories and start the process
//
// A Session is built fresh for every launch and owns all of its state.
package launcher
