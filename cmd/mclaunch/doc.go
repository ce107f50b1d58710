// Package mclaunch implements the mclaunch command line.
//
// Commands load the configuration and the distribution index, pick a server
// and hand it to pkg/launcher. Only presentation lives here: argument
// parsing, credential flags, tables and error rendering.
package mclaunch
