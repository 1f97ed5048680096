package clock

import (
	"errors"
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestClock() (*Clock, *ManualSource) {
	src := NewManualSource(epoch)
	return New(src, DefaultLimits(), nil), src
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStartBeginsAtZero(t *testing.T) {
	c, src := newTestClock()

	if err := c.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if got := c.CurrentGameSeconds(); got != 0 {
		t.Errorf("CurrentGameSeconds() after Start = %v, expected 0", got)
	}

	src.Advance(10 * time.Second)
	if got := c.CurrentGameSeconds(); !approx(got, 10) {
		t.Errorf("CurrentGameSeconds() = %v, expected 10", got)
	}
}

func TestStartTwiceFails(t *testing.T) {
	c, _ := newTestClock()
	if err := c.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := c.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() = %v, expected ErrAlreadyStarted", err)
	}
}

func TestUnstartedClockDoesNotAccrue(t *testing.T) {
	c, src := newTestClock()
	src.Advance(time.Hour)
	if got := c.CurrentGameSeconds(); got != 0 {
		t.Errorf("unstarted clock reported %v seconds", got)
	}
}

func TestPauseFreezesTime(t *testing.T) {
	c, src := newTestClock()
	c.Start()

	src.Advance(5 * time.Second)
	if !c.Pause() {
		t.Fatal("Pause() should report a change")
	}
	if c.Pause() {
		t.Error("second Pause() should be a no-op")
	}

	src.Advance(time.Minute)
	if got := c.CurrentGameSeconds(); !approx(got, 5) {
		t.Errorf("paused clock = %v, expected 5", got)
	}

	if !c.Resume() {
		t.Fatal("Resume() should report a change")
	}
	if c.Resume() {
		t.Error("second Resume() should be a no-op")
	}
	src.Advance(2 * time.Second)
	if got := c.CurrentGameSeconds(); !approx(got, 7) {
		t.Errorf("after resume = %v, expected 7", got)
	}
	if got := c.TotalPaused(); got != time.Minute {
		t.Errorf("TotalPaused() = %v, expected 1m", got)
	}
}

func TestSpeedChangeAccruesAtOldSpeed(t *testing.T) {
	c, src := newTestClock()
	c.Start()

	src.Advance(10 * time.Second) // 10s at 1x
	c.SetSpeed(4)
	src.Advance(10 * time.Second) // 40s at 4x
	c.SetSpeed(300)
	src.Advance(1 * time.Second) // 300s at 300x

	if got := c.CurrentGameSeconds(); !approx(got, 350) {
		t.Errorf("CurrentGameSeconds() = %v, expected 350", got)
	}
}

func TestSetSpeedClamps(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0.1},
		{in: -5, want: 0.1},
		{in: 8, want: 8},
		{in: 1000, want: 300},
		{in: math.NaN(), want: 1},
	}

	for _, tt := range tests {
		c, _ := newTestClock()
		if got := c.SetSpeed(tt.in); got != tt.want {
			t.Errorf("SetSpeed(%v) = %v, expected %v", tt.in, got, tt.want)
		}
		if c.Speed() != tt.want {
			t.Errorf("Speed() after SetSpeed(%v) = %v, expected %v", tt.in, c.Speed(), tt.want)
		}
	}
}

func TestGameTimeMonotonicAcrossSpeedChanges(t *testing.T) {
	c, src := newTestClock()
	c.Start()

	speeds := []float64{1, 2, 16, 0.1, 300, 4, 1, 8}
	last := c.CurrentGameSeconds()
	for i, s := range speeds {
		src.Advance(time.Duration(i+1) * 250 * time.Millisecond)
		c.SetSpeed(s)
		now := c.CurrentGameSeconds()
		if now < last {
			t.Fatalf("game time went backwards at step %d: %v -> %v", i, last, now)
		}
		last = now
	}
}

func TestBackwardsWallClockDoesNotRewind(t *testing.T) {
	c, src := newTestClock()
	c.Start()
	src.Advance(10 * time.Second)
	before := c.CurrentGameSeconds()

	src.Advance(-5 * time.Second)
	if got := c.CurrentGameSeconds(); got < before {
		t.Errorf("game time rewound from %v to %v", before, got)
	}
}

func TestRestoreDoesNotCreditDowntime(t *testing.T) {
	c, src := newTestClock()
	c.Start()
	src.Advance(10 * time.Second)
	snap := c.Snapshot()

	// Simulate the process being unloaded for an hour.
	src.Advance(time.Hour)
	restored := New(src, DefaultLimits(), nil)
	restored.Restore(snap)

	if got := restored.CurrentGameSeconds(); !approx(got, 10) {
		t.Errorf("CurrentGameSeconds() after restore = %v, expected 10", got)
	}

	src.Advance(3 * time.Second)
	if got := restored.CurrentGameSeconds(); !approx(got, 13) {
		t.Errorf("CurrentGameSeconds() after restore+3s = %v, expected 13", got)
	}
}

func TestRestorePausedSnapshot(t *testing.T) {
	c, src := newTestClock()
	c.Start()
	c.SetSpeed(2)
	src.Advance(5 * time.Second)
	c.Pause()
	snap := c.Snapshot()

	if !snap.IsPaused || snap.SpeedMultiplier != 2 {
		t.Fatalf("snapshot = %+v, expected paused at 2x", snap)
	}

	src.Advance(time.Hour)
	restored := New(src, DefaultLimits(), nil)
	restored.Restore(snap)

	if !restored.IsPaused() {
		t.Error("restored clock should be paused")
	}
	src.Advance(time.Minute)
	if got := restored.CurrentGameSeconds(); !approx(got, 10) {
		t.Errorf("paused restored clock = %v, expected 10", got)
	}

	restored.Resume()
	src.Advance(time.Second)
	if got := restored.CurrentGameSeconds(); !approx(got, 12) {
		t.Errorf("after resume = %v, expected 12", got)
	}
}

func TestRestoreUnstartedSnapshot(t *testing.T) {
	c, _ := newTestClock()
	c.Restore(Snapshot{})

	if c.IsStarted() {
		t.Error("clock restored from empty snapshot should not be started")
	}
	if c.Speed() != 1 {
		t.Errorf("Speed() = %v, expected default 1", c.Speed())
	}
}

func TestResetClearsEverything(t *testing.T) {
	c, src := newTestClock()
	c.Start()
	c.SetSpeed(16)
	src.Advance(time.Minute)
	c.Pause()

	c.Reset()

	if c.IsStarted() || c.IsPaused() {
		t.Error("Reset() should leave clock unstarted and unpaused")
	}
	if c.Speed() != 1 {
		t.Errorf("Speed() after Reset = %v, expected 1", c.Speed())
	}
	if c.CurrentGameSeconds() != 0 {
		t.Error("CurrentGameSeconds() after Reset should be 0")
	}
	if c.TotalPaused() != 0 {
		t.Error("TotalPaused() after Reset should be 0")
	}
}

func TestEventsPublished(t *testing.T) {
	c, src := newTestClock()

	var kinds []EventKind
	var speed float64
	c.Events().Subscribe(func(e Event) {
		kinds = append(kinds, e.Kind)
		if e.Kind == EventSpeedChanged {
			speed = e.Speed
		}
	})

	c.Start()
	c.Pause()
	c.Pause() // no event
	src.Advance(time.Second)
	c.Resume()
	c.SetSpeed(2000)
	c.Reset()

	want := []EventKind{EventStarted, EventPaused, EventResumed, EventSpeedChanged, EventReset}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, expected %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event[%d] = %s, expected %s", i, kinds[i], want[i])
		}
	}
	if speed != 300 {
		t.Errorf("speedChanged payload = %v, expected clamped 300", speed)
	}
}

func TestFormatGameTime(t *testing.T) {
	tests := []struct {
		secs float64
		want string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{61, "1:01"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatGameTime(tt.secs); got != tt.want {
			t.Errorf("FormatGameTime(%v) = %q, expected %q", tt.secs, got, tt.want)
		}
	}
}
