package game

// TimerKind identifies one of the coordinator's periodic timers.
type TimerKind int

const (
	TimerTick     TimerKind = iota // simulation step, while Playing
	TimerDisplay                   // time display refresh, while Playing
	TimerAutosave                  // full flush, always
	timerKinds
)

// String returns a human-readable name for the timer kind.
func (k TimerKind) String() string {
	switch k {
	case TimerTick:
		return "tick"
	case TimerDisplay:
		return "display"
	case TimerAutosave:
		return "autosave"
	default:
		return "unknown"
	}
}

// TimerHandle identifies one arming of a timer. A fire carrying a handle
// whose generation is no longer current is stale and must be ignored.
type TimerHandle struct {
	Kind TimerKind
	Gen  uint64
}

// Timers tracks the live generation of each timer kind.
// Arming always invalidates the previous handle of the same kind, so a
// timer can never run twice concurrently.
type Timers struct {
	gen    [timerKinds]uint64
	active [timerKinds]bool
}

// Arm cancels any prior handle of kind and returns a fresh one.
func (t *Timers) Arm(kind TimerKind) TimerHandle {
	t.gen[kind]++
	t.active[kind] = true
	return TimerHandle{Kind: kind, Gen: t.gen[kind]}
}

// Disarm cancels the current handle of kind. It is idempotent.
func (t *Timers) Disarm(kind TimerKind) {
	if !t.active[kind] {
		return
	}
	t.gen[kind]++
	t.active[kind] = false
}

// DisarmAll cancels every timer.
func (t *Timers) DisarmAll() {
	for k := TimerKind(0); k < timerKinds; k++ {
		t.Disarm(k)
	}
}

// Active reports whether kind currently has a live handle.
func (t *Timers) Active(kind TimerKind) bool {
	return kind >= 0 && kind < timerKinds && t.active[kind]
}

// Live reports whether h is the current handle of its kind.
func (t *Timers) Live(h TimerHandle) bool {
	return t.Active(h.Kind) && t.gen[h.Kind] == h.Gen
}
