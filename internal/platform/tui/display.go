package tui

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

// bannerDuration is how long an event banner stays on screen.
const bannerDuration = 4 * time.Second

// Screen caches the values pushed by the coordinator for rendering.
// It implements game.Display.
type Screen struct {
	Hunger      float64
	Life        float64
	Coins       int
	Time        clock.Info
	FeedEnabled bool
	State       state.State

	banner      string
	bannerUntil time.Time
	now         func() time.Time
}

// NewScreen creates an empty display cache.
func NewScreen(now func() time.Time) *Screen {
	if now == nil {
		now = time.Now
	}
	return &Screen{State: state.Menu, now: now}
}

// UpdateStats implements game.Display.
func (s *Screen) UpdateStats(hunger, life float64, coins int) {
	s.Hunger, s.Life, s.Coins = hunger, life, coins
}

// UpdateTime implements game.Display.
func (s *Screen) UpdateTime(info clock.Info) {
	s.Time = info
}

// EvolutionOccurred implements game.Display.
func (s *Screen) EvolutionOccurred(stage pet.Stage, adult pet.AdultType) {
	if stage == pet.StageAdult && adult != pet.AdultNone {
		s.flash(fmt.Sprintf("Your pet grew into a %s!", adult.Title()))
		return
	}
	s.flash(fmt.Sprintf("Your pet evolved: %s", stageTitle(stage)))
}

// Died implements game.Display.
func (s *Screen) Died() {
	s.flash("Your pet has died. Press r to start over.")
}

// FeedEnabledChanged implements game.Display.
func (s *Screen) FeedEnabledChanged(enabled bool) {
	s.FeedEnabled = enabled
}

// StateChanged implements game.Display.
func (s *Screen) StateChanged(_, to state.State) {
	s.State = to
}

// flash shows msg in the banner line for a few seconds.
func (s *Screen) flash(msg string) {
	s.banner = msg
	s.bannerUntil = s.now().Add(bannerDuration)
}

// Banner returns the current banner, or empty once it has expired.
func (s *Screen) Banner() string {
	if s.banner == "" || s.now().After(s.bannerUntil) {
		return ""
	}
	return s.banner
}

func stageTitle(stage pet.Stage) string {
	switch stage {
	case pet.StageEgg:
		return "Egg"
	case pet.StageBaby:
		return "Baby"
	case pet.StageAdult:
		return "Adult"
	default:
		return string(stage)
	}
}
