package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of AI controllers. Checking
// an atomic is cheaper than asking slog for the level on every tick.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging toggles AI debug logs. Called once from main after the
// log level is known.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether AI debug logs are on. Guard noisy calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("threat scan", "threats", len(d.Threats()))
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
