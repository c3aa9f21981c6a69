package tui

import (
	"testing"
	"time"
)

func TestRefreshScheduleBurstThenIdle(t *testing.T) {
	var s refreshSchedule
	now := time.Now()
	s.Boost(2)
	s.Fired(now)

	// Within the burst, the fast interval applies.
	if s.Due(now.Add(500*time.Millisecond), false) {
		t.Error("due before the burst interval elapsed")
	}
	if !s.Due(now.Add(burstRefreshInterval), false) {
		t.Error("not due after the burst interval")
	}

	// Burn through the burst.
	s.Fired(now.Add(1 * time.Second))
	if s.burst != 0 {
		t.Fatalf("burst = %d, want 0", s.burst)
	}

	// Back to the idle cadence.
	last := now.Add(1 * time.Second)
	if s.Due(last.Add(5*time.Second), false) {
		t.Error("due before the idle interval elapsed")
	}
	if !s.Due(last.Add(idleRefreshInterval), false) {
		t.Error("not due after the idle interval")
	}
}

func TestRefreshScheduleSearchInterval(t *testing.T) {
	var s refreshSchedule
	now := time.Now()
	s.Fired(now)

	if s.Due(now.Add(idleRefreshInterval), true) {
		t.Error("searching should stretch the interval")
	}
	if !s.Due(now.Add(searchRefreshInterval), true) {
		t.Error("not due after the search interval")
	}
}

func TestRefreshScheduleInteractionCooldown(t *testing.T) {
	var s refreshSchedule
	now := time.Now()
	s.Fired(now.Add(-time.Minute)) // long overdue

	s.Touch(now)
	if s.Due(now.Add(500*time.Millisecond), false) {
		t.Error("due during the interaction cooldown")
	}
	if !s.Due(now.Add(interactionCooldown), false) {
		t.Error("not due after the cooldown passed")
	}
}

func TestRefreshScheduleBoostNeverLowers(t *testing.T) {
	var s refreshSchedule
	s.Boost(connectBurst)
	s.Boost(disconnectBurst)
	if s.burst != connectBurst {
		t.Errorf("burst = %d, want %d", s.burst, connectBurst)
	}
}

func TestManualRefreshDebounce(t *testing.T) {
	var s refreshSchedule
	now := time.Now()

	if !s.ManualAllowed(now) {
		t.Fatal("first manual refresh should be allowed")
	}
	if s.ManualAllowed(now.Add(100 * time.Millisecond)) {
		t.Error("second refresh within the debounce window should be rejected")
	}
	if !s.ManualAllowed(now.Add(manualRefreshDebounce)) {
		t.Error("refresh after the debounce window should be allowed")
	}
}
