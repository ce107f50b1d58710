// Package supervisor spawns the game process and forwards its output.
//
// Each output stream gets its own reader goroutine that splits on lines and
// hands trimmed, non-empty lines to a Sink. Readers only consume; a reader
// that fails drains its stream so the child never blocks on a full pipe.
package supervisor
