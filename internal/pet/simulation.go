package pet

import (
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
)

// GameClock is the part of the game clock the simulation reads.
type GameClock interface {
	CurrentGameSeconds() float64
	Speed() float64
	IsPaused() bool
}

// Feed failure reasons.
const (
	ReasonInsufficientCoins = "insufficient_coins"
	ReasonDead              = "pet_dead"
)

// FeedResult is the structured outcome of Feed.
type FeedResult struct {
	Success   bool
	Reason    string
	OldHunger float64
	NewHunger float64
	OldCoins  int
	NewCoins  int
}

// TickResult is what Simulation.Tick reports to the coordinator.
type TickResult struct {
	StepResult
	Primed bool // first tick after (re)start; no decay applied
}

// Simulation owns the in-memory creature record.
type Simulation struct {
	rates  Rates
	clock  GameClock
	src    clock.Source
	draw   func() float64
	record Record

	lastUpdate time.Time
	primed     bool
}

// NewSimulation creates a simulation holding a fresh record.
func NewSimulation(rates Rates, gc GameClock, src clock.Source, draw func() float64) *Simulation {
	if src == nil {
		src = clock.SystemSource{}
	}
	return &Simulation{
		rates:  rates,
		clock:  gc,
		src:    src,
		draw:   draw,
		record: NewRecord(rates, time.Time{}),
	}
}

// Rates returns the simulation tuning.
func (s *Simulation) Rates() Rates {
	return s.rates
}

// Record returns a copy of the current record.
func (s *Simulation) Record() Record {
	return s.record
}

// Load replaces the record (e.g. from a save) and re-primes hunger tracking.
func (s *Simulation) Load(r Record) {
	s.record = r.Clamp(s.rates)
	s.primed = false
}

// Hatch replaces the record with a fresh egg born now.
func (s *Simulation) Hatch() Record {
	s.record = NewRecord(s.rates, s.src.Now())
	s.primed = false
	return s.record
}

// Prime makes the next Tick only record the wall time without decaying.
// Call it whenever play (re)starts.
func (s *Simulation) Prime() {
	s.primed = false
}

// Tick runs one simulation step using wall time elapsed since the last tick.
func (s *Simulation) Tick() TickResult {
	now := s.src.Now()

	var elapsed time.Duration
	first := !s.primed
	if first {
		s.primed = true
	} else {
		elapsed = now.Sub(s.lastUpdate)
	}
	s.lastUpdate = now

	res := Step(s.record, StepInput{
		Elapsed:     elapsed,
		Speed:       s.clock.Speed(),
		GameSeconds: s.clock.CurrentGameSeconds(),
		Paused:      s.clock.IsPaused(),
		Draw:        s.draw,
	}, s.rates)
	s.record = res.Record

	return TickResult{StepResult: res, Primed: first}
}

// CanFeed reports whether a feed would currently succeed.
func (s *Simulation) CanFeed() bool {
	return s.record.IsAlive && s.record.Coins >= s.rates.FeedCost
}

// Feed spends FeedCost coins for FeedAmount hunger.
func (s *Simulation) Feed() FeedResult {
	r := s.record
	res := FeedResult{
		OldHunger: r.Hunger,
		NewHunger: r.Hunger,
		OldCoins:  r.Coins,
		NewCoins:  r.Coins,
	}

	if !r.IsAlive {
		res.Reason = ReasonDead
		return res
	}
	if r.Coins < s.rates.FeedCost {
		res.Reason = ReasonInsufficientCoins
		return res
	}

	r.Hunger = min(s.rates.MaxHunger, r.Hunger+s.rates.FeedAmount)
	r.Coins = max(0, r.Coins-s.rates.FeedCost)
	s.record = r.Clamp(s.rates)

	res.Success = true
	res.NewHunger = s.record.Hunger
	res.NewCoins = s.record.Coins
	return res
}

// AddCoins credits n coins, clamped to the maximum. n must be positive.
func (s *Simulation) AddCoins(n int) bool {
	if n <= 0 {
		return false
	}
	s.record.Coins = clampI(s.record.Coins+n, 0, s.rates.MaxCoins)
	return true
}

// SpendCoins debits n coins. It refuses partial spends.
func (s *Simulation) SpendCoins(n int) bool {
	if n <= 0 || s.record.Coins < n {
		return false
	}
	s.record.Coins = clampI(s.record.Coins-n, 0, s.rates.MaxCoins)
	return true
}
