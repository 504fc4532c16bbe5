package monitoring

import "log"

// Logf is the package-level progress logger for the report pipeline.
// It defaults to log.Printf; SetLogger can redirect or mute it (the
// -quiet CLI flag installs a no-op).
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
