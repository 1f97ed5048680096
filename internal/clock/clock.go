// Package clock tracks simulated game time under a variable speed multiplier.
//
// Game time only advances while the clock is started and not paused. Each
// accrual adds (now - lastAccrual) * speed exactly once and moves lastAccrual
// to now. Pausing, resuming and speed changes accrue at the old speed first.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/events"
)

// ErrAlreadyStarted is returned by Start on a clock that is already running.
var ErrAlreadyStarted = errors.New("clock: already started")

// EventKind identifies a clock lifecycle event.
type EventKind string

const (
	EventStarted      EventKind = "started"
	EventPaused       EventKind = "paused"
	EventResumed      EventKind = "resumed"
	EventSpeedChanged EventKind = "speedChanged"
	EventReset        EventKind = "reset"
)

// Event is published on every clock lifecycle change.
type Event struct {
	Kind  EventKind
	Speed float64 // set for EventSpeedChanged
}

// Limits bounds the speed multiplier.
type Limits struct {
	Min     float64
	Max     float64
	Default float64
}

// DefaultLimits returns the stock speed range [0.1, 300] with 1x default.
func DefaultLimits() Limits {
	return Limits{Min: 0.1, Max: 300, Default: 1}
}

// Clamp restricts v to the limits. NaN maps to the default speed.
func (l Limits) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return l.Default
	}
	return math.Max(l.Min, math.Min(l.Max, v))
}

// Clock is the game time tracker.
type Clock struct {
	src    Source
	limits Limits
	events *events.Bus[Event]

	startedAt   time.Time
	accumulated float64 // game seconds
	lastAccrual time.Time
	speed       float64
	paused      bool
	pausedAt    time.Time
	totalPaused time.Duration
}

// New creates an unstarted clock at the default speed.
func New(src Source, limits Limits, onFailure events.FailureFunc) *Clock {
	if src == nil {
		src = SystemSource{}
	}
	return &Clock{
		src:    src,
		limits: limits,
		events: events.NewBus[Event](onFailure),
		speed:  limits.Clamp(limits.Default),
	}
}

// Events returns the bus clock events are published on.
func (c *Clock) Events() *events.Bus[Event] {
	return c.events
}

// Start begins counting game time from zero.
func (c *Clock) Start() error {
	if c.IsStarted() {
		return ErrAlreadyStarted
	}
	now := c.src.Now()
	c.startedAt = now
	c.lastAccrual = now
	c.accumulated = 0
	c.paused = false
	c.pausedAt = time.Time{}
	c.events.Publish(Event{Kind: EventStarted})
	return nil
}

// IsStarted reports whether Start has been called since the last Reset.
func (c *Clock) IsStarted() bool {
	return !c.startedAt.IsZero()
}

// IsPaused reports whether game time is frozen.
func (c *Clock) IsPaused() bool {
	return c.paused
}

// Speed returns the current multiplier.
func (c *Clock) Speed() float64 {
	return c.speed
}

// Limits returns the configured speed range.
func (c *Clock) Limits() Limits {
	return c.limits
}

// accrue folds wall time elapsed since the last accrual into the total.
func (c *Clock) accrue(now time.Time) {
	if c.paused || !c.IsStarted() {
		return
	}
	elapsed := now.Sub(c.lastAccrual).Seconds()
	if elapsed > 0 {
		c.accumulated += elapsed * c.speed
	}
	// A backwards wall clock must not rewind game time.
	if now.After(c.lastAccrual) {
		c.lastAccrual = now
	}
}

// Pause freezes game time. It returns false if nothing changed.
func (c *Clock) Pause() bool {
	if c.paused || !c.IsStarted() {
		return false
	}
	now := c.src.Now()
	c.accrue(now)
	c.paused = true
	c.pausedAt = now
	c.events.Publish(Event{Kind: EventPaused})
	return true
}

// Resume unfreezes game time. It returns false if the clock was not paused.
func (c *Clock) Resume() bool {
	if !c.paused {
		return false
	}
	now := c.src.Now()
	if !c.pausedAt.IsZero() && now.After(c.pausedAt) {
		c.totalPaused += now.Sub(c.pausedAt)
	}
	c.pausedAt = time.Time{}
	c.lastAccrual = now
	c.paused = false
	c.events.Publish(Event{Kind: EventResumed})
	return true
}

// SetSpeed changes the multiplier, clamping out-of-range input, and returns
// the value actually applied.
func (c *Clock) SetSpeed(v float64) float64 {
	clamped := c.limits.Clamp(v)
	c.accrue(c.src.Now())
	c.speed = clamped
	c.events.Publish(Event{Kind: EventSpeedChanged, Speed: clamped})
	return clamped
}

// CurrentGameSeconds returns the accumulated game time, accruing first when running.
func (c *Clock) CurrentGameSeconds() float64 {
	c.accrue(c.src.Now())
	return c.accumulated
}

// Reset returns the clock to its unstarted state at default speed.
func (c *Clock) Reset() {
	c.startedAt = time.Time{}
	c.accumulated = 0
	c.lastAccrual = time.Time{}
	c.speed = c.limits.Clamp(c.limits.Default)
	c.paused = false
	c.pausedAt = time.Time{}
	c.totalPaused = 0
	c.events.Publish(Event{Kind: EventReset})
}

// TotalPaused returns the wall time spent paused, including an ongoing pause.
func (c *Clock) TotalPaused() time.Duration {
	total := c.totalPaused
	if c.paused && !c.pausedAt.IsZero() {
		total += c.src.Now().Sub(c.pausedAt)
	}
	return total
}

// Snapshot is the persisted form of the clock.
type Snapshot struct {
	StartedAtWallTime       int64   `json:"startedAtWallTime"`
	AccumulatedGameSeconds  float64 `json:"accumulatedGameSeconds"`
	LastAccrualWallTime     int64   `json:"lastAccrualWallTime"`
	SpeedMultiplier         float64 `json:"speedMultiplier"`
	IsPaused                bool    `json:"isPaused"`
	TotalPausedWallDuration float64 `json:"totalPausedWallDuration"` // seconds
}

// Snapshot captures the clock state after accruing pending time.
func (c *Clock) Snapshot() Snapshot {
	c.accrue(c.src.Now())
	return Snapshot{
		StartedAtWallTime:       ToMillis(c.startedAt),
		AccumulatedGameSeconds:  c.accumulated,
		LastAccrualWallTime:     ToMillis(c.lastAccrual),
		SpeedMultiplier:         c.speed,
		IsPaused:                c.paused,
		TotalPausedWallDuration: c.TotalPaused().Seconds(),
	}
}

// Restore loads a persisted snapshot. The persisted lastAccrual is ignored
// and replaced with now, so wall time that passed while the game was not
// running is never credited.
func (c *Clock) Restore(s Snapshot) {
	now := c.src.Now()

	c.startedAt = FromMillis(s.StartedAtWallTime)
	c.accumulated = math.Max(0, s.AccumulatedGameSeconds)
	c.speed = c.limits.Clamp(s.SpeedMultiplier)
	if s.SpeedMultiplier == 0 {
		c.speed = c.limits.Clamp(c.limits.Default)
	}
	c.totalPaused = time.Duration(s.TotalPausedWallDuration * float64(time.Second))
	c.pausedAt = time.Time{}
	c.paused = false
	c.lastAccrual = time.Time{}

	if !c.IsStarted() {
		c.accumulated = 0
		return
	}
	c.lastAccrual = now
	if s.IsPaused {
		c.paused = true
		c.pausedAt = now
	}
}

// Info is a display-oriented summary of the clock.
type Info struct {
	GameSeconds   float64
	Formatted     string
	Speed         float64
	Paused        bool
	PausedSeconds float64
}

// Info returns the current time display values.
func (c *Clock) Info() Info {
	secs := c.CurrentGameSeconds()
	return Info{
		GameSeconds:   secs,
		Formatted:     FormatGameTime(secs),
		Speed:         c.speed,
		Paused:        c.paused,
		PausedSeconds: c.TotalPaused().Seconds(),
	}
}

// FormatGameTime renders seconds as H:MM:SS, or M:SS under an hour.
func FormatGameTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
