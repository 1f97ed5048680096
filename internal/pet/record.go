// Package pet holds the creature record and the simulation that advances it.
//
// The decay, penalty and evolution math lives in pure functions (Step, Evolve,
// PickAdultType) so it can be tested without a clock or a save backend.
// Simulation wraps them with wall-time bookkeeping; persisting the result is
// the caller's job.
package pet

import (
	"math"
	"time"
)

// Stage is the creature's lifecycle phase. It only ever moves forward.
type Stage string

const (
	StageEgg   Stage = "EGG"
	StageBaby  Stage = "BABY"
	StageAdult Stage = "ADULT"
)

// Rank orders stages so monotonicity can be checked.
func (s Stage) Rank() int {
	switch s {
	case StageEgg:
		return 0
	case StageBaby:
		return 1
	case StageAdult:
		return 2
	default:
		return -1
	}
}

// AdultType is the variant chosen at the Baby to Adult transition.
type AdultType string

const (
	AdultNone    AdultType = ""
	AdultChicken AdultType = "CHICKEN"
	AdultPeacock AdultType = "PEACOCK"
	AdultPhoenix AdultType = "PHOENIX"
)

// Title returns a display name for the adult type.
func (a AdultType) Title() string {
	switch a {
	case AdultChicken:
		return "Chicken"
	case AdultPeacock:
		return "Peacock"
	case AdultPhoenix:
		return "Phoenix"
	default:
		return ""
	}
}

// Record is the persisted creature.
type Record struct {
	Hunger                   float64   `json:"hunger"`
	Life                     float64   `json:"life"`
	Coins                    int       `json:"coins"`
	IsAlive                  bool      `json:"isAlive"`
	EvolutionStage           Stage     `json:"evolutionStage"`
	AdultType                AdultType `json:"adultType,omitempty"`
	BirthWallTime            int64     `json:"birthTime"`
	LastEvolutionGameSeconds float64   `json:"lastEvolutionGameSeconds"`
	LastCoinGameSeconds      float64   `json:"lastCoinGameSeconds"`
	CurrentAppearance        string    `json:"currentAppearance"`
}

// NewRecord returns a freshly hatched egg.
func NewRecord(rates Rates, born time.Time) Record {
	r := Record{
		Hunger:         rates.MaxHunger,
		Life:           rates.MaxLife,
		Coins:          rates.InitialCoins,
		IsAlive:        true,
		EvolutionStage: StageEgg,
	}
	if !born.IsZero() {
		r.BirthWallTime = born.UnixMilli()
	}
	r.CurrentAppearance = Appearance(r.EvolutionStage, r.AdultType)
	return r.Clamp(rates)
}

// Appearance is the display key for a stage and adult type.
func Appearance(stage Stage, adult AdultType) string {
	if stage == StageAdult && adult != AdultNone {
		return string(adult)
	}
	return string(stage)
}

// Clamp forces every resource into its range and enforces the dead-creature
// and adult-type invariants.
func (r Record) Clamp(rates Rates) Record {
	r.Hunger = clampF(r.Hunger, 0, rates.MaxHunger)
	r.Life = clampF(r.Life, 0, rates.MaxLife)
	r.Coins = clampI(r.Coins, 0, rates.MaxCoins)
	if !r.IsAlive {
		r.Life = 0
	}
	if r.EvolutionStage.Rank() < 0 {
		r.EvolutionStage = StageEgg
	}
	if r.EvolutionStage != StageAdult {
		r.AdultType = AdultNone
	}
	r.CurrentAppearance = Appearance(r.EvolutionStage, r.AdultType)
	return r
}

func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampI(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
