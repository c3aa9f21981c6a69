package tui

import "time"

const (
	// tickInterval bounds how long the loop sleeps between reconciliations.
	tickInterval = 100 * time.Millisecond

	// connectionTimeout is how long an attempt may sit without a result,
	// a notification, or the polled state turning over.
	connectionTimeout = 60 * time.Second

	// scanSettleDelay is the wait between requesting a survey and reading
	// its results.
	scanSettleDelay = 2 * time.Second

	disconnectSettleTimeout = 5 * time.Second
	disconnectPollInterval  = 100 * time.Millisecond

	burstRefreshInterval  = 1 * time.Second
	idleRefreshInterval   = 10 * time.Second
	searchRefreshInterval = 15 * time.Second

	// interactionCooldown holds refreshes while the user is actively
	// navigating, so the list does not reorder under the cursor.
	interactionCooldown = 1 * time.Second

	// manualRefreshDebounce stops a held-down refresh key from queueing
	// scans faster than they complete.
	manualRefreshDebounce = 500 * time.Millisecond

	startupBurst    = 5
	connectBurst    = 15
	disconnectBurst = 5
)

// refreshSchedule decides when the background list refresh fires. It runs a
// burst of fast refreshes after anything changes connection state, then
// relaxes to a slow cadence.
type refreshSchedule struct {
	lastRefresh     time.Time
	lastInteraction time.Time
	lastManual      time.Time
	burst           int
}

func (s *refreshSchedule) interval(searching bool) time.Duration {
	switch {
	case s.burst > 0:
		return burstRefreshInterval
	case searching:
		// While the user is filtering, churn in the list is more annoying
		// than a slightly stale signal reading.
		return searchRefreshInterval
	default:
		return idleRefreshInterval
	}
}

// Due reports whether a refresh should fire now.
func (s *refreshSchedule) Due(now time.Time, searching bool) bool {
	if now.Sub(s.lastInteraction) < interactionCooldown {
		return false
	}
	return now.Sub(s.lastRefresh) >= s.interval(searching)
}

// Fired records that a refresh was dispatched.
func (s *refreshSchedule) Fired(now time.Time) {
	s.lastRefresh = now
	if s.burst > 0 {
		s.burst--
	}
}

// Boost raises the remaining burst count, never lowers it.
func (s *refreshSchedule) Boost(n int) {
	if n > s.burst {
		s.burst = n
	}
}

// Touch records user interaction, delaying the next automatic refresh.
func (s *refreshSchedule) Touch(now time.Time) {
	s.lastInteraction = now
}

// ManualAllowed debounces user-initiated rescans and records the attempt.
func (s *refreshSchedule) ManualAllowed(now time.Time) bool {
	if now.Sub(s.lastManual) < manualRefreshDebounce {
		return false
	}
	s.lastManual = now
	return true
}
