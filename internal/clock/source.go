package clock

import "time"

// Source abstracts wall time so tests can drive the clock deterministically.
type Source interface {
	Now() time.Time
}

// SystemSource reads the system clock.
type SystemSource struct{}

// Now returns time.Now().
func (SystemSource) Now() time.Time {
	return time.Now()
}

// ToMillis converts t to Unix milliseconds, mapping the zero time to 0.
func ToMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// FromMillis is the inverse of ToMillis.
func FromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// ManualSource is a Source whose time only moves when told to.
type ManualSource struct {
	now time.Time
}

// NewManualSource creates a manual source starting at t.
func NewManualSource(t time.Time) *ManualSource {
	return &ManualSource{now: t}
}

// Now returns the current manual time.
func (m *ManualSource) Now() time.Time {
	return m.now
}

// Advance moves the manual time forward by d.
func (m *ManualSource) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set jumps to t.
func (m *ManualSource) Set(t time.Time) {
	m.now = t
}
