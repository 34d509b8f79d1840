package ai

import "sync/atomic"

// debugLoggingEnabled gates the per-tick debug logs of the brain (state
// transitions, patrol points, window open/close). Checked instead of the
// slog level because brains tick at frame rate.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging turns brain debug logs on or off.
// Called from main after the config is loaded and on config reload.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled reports whether brain debug logs are on:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("brain state changed", "from", prev, "to", next)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
