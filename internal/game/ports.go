package game

import (
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

// Display receives the UI callbacks. Implementations must not call back
// into the Coordinator synchronously.
type Display interface {
	UpdateStats(hunger, life float64, coins int)
	UpdateTime(info clock.Info)
	EvolutionOccurred(stage pet.Stage, adult pet.AdultType)
	Died()
	FeedEnabledChanged(enabled bool)
	StateChanged(from, to state.State)
}

// Scheduler delivers h back to Coordinator.HandleTimer after the delay.
// Cancellation is by generation: stale handles are simply ignored.
type Scheduler interface {
	Schedule(h TimerHandle, after time.Duration)
}

// Journal records notable game events. *storage.Store satisfies it.
type Journal interface {
	AppendJournal(saveKey, kind, detail string, gameSeconds float64) (int64, error)
}

// Journal entry kinds.
const (
	JournalHatched  = "hatched"
	JournalFed      = "fed"
	JournalEvolved  = "evolved"
	JournalDied     = "died"
	JournalSpeed    = "speed"
	JournalReset    = "reset"
	JournalRestored = "restored"
)
