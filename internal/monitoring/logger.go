// Package monitoring holds the package-level diagnostic logger used across
// the ingestion pipeline. Recoverable conditions (dropped corrupt ticks,
// unresolved orientation) are reported here rather than through errors.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf
// but may be replaced by SetLogger. Tests can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var debug bool

// SetLogger replaces the package logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug toggles debug-level logging.
func SetDebug(enabled bool) {
	debug = enabled
}

// Debugf logs through Logf only when debug logging is enabled. Use it for
// per-record noise that would swamp normal runs.
func Debugf(format string, v ...interface{}) {
	if debug {
		Logf(format, v...)
	}
}
