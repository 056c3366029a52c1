package core

import (
	"time"
)

// TimeoutConfig configures timeouts for live sessions.
type TimeoutConfig struct {
	// ComponentMount bounds Mount calls.
	ComponentMount time.Duration

	// ComponentEvent bounds a single HandleEvent call.
	ComponentEvent time.Duration

	// WebSocketRead is how long a connection may stay silent.
	// Clients heartbeat well inside it.
	WebSocketRead time.Duration

	// WebSocketWrite bounds a single frame write.
	WebSocketWrite time.Duration

	// SessionCleanup is the interval for sweeping idle sockets.
	SessionCleanup time.Duration
}

// DefaultTimeoutConfig returns the default timeouts.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		ComponentMount: 5 * time.Second,
		ComponentEvent: 3 * time.Second,
		WebSocketRead:  60 * time.Second,
		WebSocketWrite: 10 * time.Second,
		SessionCleanup: 5 * time.Minute,
	}
}

// Validate fills zero values with defaults.
func (tc *TimeoutConfig) Validate() {
	defaults := DefaultTimeoutConfig()

	if tc.ComponentMount <= 0 {
		tc.ComponentMount = defaults.ComponentMount
	}
	if tc.ComponentEvent <= 0 {
		tc.ComponentEvent = defaults.ComponentEvent
	}
	if tc.WebSocketRead <= 0 {
		tc.WebSocketRead = defaults.WebSocketRead
	}
	if tc.WebSocketWrite <= 0 {
		tc.WebSocketWrite = defaults.WebSocketWrite
	}
	if tc.SessionCleanup <= 0 {
		tc.SessionCleanup = defaults.SessionCleanup
	}
}
