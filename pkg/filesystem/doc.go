// Package filesystem provides types.FS implementations backed by afero:
// the host filesystem for real launches and an in-memory one for tests.
package filesystem
