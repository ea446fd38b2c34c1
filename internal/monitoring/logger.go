package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// Verbose gates per-sample trace output from the sampling pipeline. Off by
// default; the -v flag turns it on.
var Verbose = false

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Tracef logs only when Verbose is set. Intended for per-probe diagnostics
// that would swamp the log in normal operation.
func Tracef(format string, v ...interface{}) {
	if Verbose {
		Logf(format, v...)
	}
}
