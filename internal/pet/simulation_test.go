package pet

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
)

type stubClock struct {
	secs   float64
	speed  float64
	paused bool
}

func (c *stubClock) CurrentGameSeconds() float64 { return c.secs }
func (c *stubClock) Speed() float64              { return c.speed }
func (c *stubClock) IsPaused() bool              { return c.paused }

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestSimulation() (*Simulation, *stubClock, *clock.ManualSource) {
	gc := &stubClock{speed: 1}
	src := clock.NewManualSource(epoch)
	return NewSimulation(DefaultRates(), gc, src, constDraw(0.5)), gc, src
}

func TestFeedEconomics(t *testing.T) {
	sim, _, _ := newTestSimulation()
	r := sim.Record()
	r.Hunger = 50
	r.Coins = 1
	sim.Load(r)

	res := sim.Feed()
	if !res.Success {
		t.Fatalf("first feed failed: %+v", res)
	}
	if res.OldHunger != 50 || res.NewHunger != 55 || res.OldCoins != 1 || res.NewCoins != 0 {
		t.Errorf("feed result = %+v", res)
	}
	if got := sim.Record(); got.Hunger != 55 || got.Coins != 0 {
		t.Errorf("record after feed = hunger %v coins %d", got.Hunger, got.Coins)
	}

	res = sim.Feed()
	if res.Success || res.Reason != ReasonInsufficientCoins {
		t.Errorf("second feed = %+v, expected insufficient_coins", res)
	}
	if got := sim.Record(); got.Hunger != 55 || got.Coins != 0 {
		t.Errorf("failed feed mutated record: hunger %v coins %d", got.Hunger, got.Coins)
	}
	if sim.CanFeed() {
		t.Error("CanFeed() should be false with no coins")
	}
}

func TestFeedCapsHunger(t *testing.T) {
	sim, _, _ := newTestSimulation()
	r := sim.Record()
	r.Hunger = 98
	sim.Load(r)

	res := sim.Feed()
	if !res.Success || res.NewHunger != 100 {
		t.Errorf("feed at 98 = %+v, expected hunger capped at 100", res)
	}
}

func TestFeedDeadPet(t *testing.T) {
	sim, _, _ := newTestSimulation()
	r := sim.Record()
	r.IsAlive = false
	sim.Load(r)

	res := sim.Feed()
	if res.Success || res.Reason != ReasonDead {
		t.Errorf("feeding dead pet = %+v", res)
	}
}

func TestAddAndSpendCoins(t *testing.T) {
	sim, _, _ := newTestSimulation()

	if sim.AddCoins(0) || sim.AddCoins(-3) {
		t.Error("AddCoins should reject non-positive amounts")
	}
	if !sim.AddCoins(5) || sim.Record().Coins != 15 {
		t.Errorf("coins after AddCoins(5) = %d, expected 15", sim.Record().Coins)
	}
	if !sim.AddCoins(100000) || sim.Record().Coins != 9999 {
		t.Errorf("coins = %d, expected clamp at 9999", sim.Record().Coins)
	}

	if sim.SpendCoins(0) {
		t.Error("SpendCoins(0) should be rejected")
	}
	if !sim.SpendCoins(9000) || sim.Record().Coins != 999 {
		t.Errorf("coins after SpendCoins(9000) = %d, expected 999", sim.Record().Coins)
	}
	if sim.SpendCoins(1000) {
		t.Error("SpendCoins beyond balance should be rejected")
	}
	if sim.Record().Coins != 999 {
		t.Errorf("rejected spend changed coins to %d", sim.Record().Coins)
	}
}

func TestFirstTickOnlyPrimes(t *testing.T) {
	sim, _, src := newTestSimulation()

	// A large gap before the first tick must not decay anything.
	src.Advance(6 * time.Hour)
	res := sim.Tick()
	if !res.Primed {
		t.Error("first tick should report Primed")
	}
	if sim.Record().Hunger != 100 {
		t.Errorf("hunger after priming tick = %v, expected 100", sim.Record().Hunger)
	}

	src.Advance(time.Minute)
	res = sim.Tick()
	if res.Primed {
		t.Error("second tick should not be a priming tick")
	}
	if sim.Record().Hunger != 98 {
		t.Errorf("hunger after 1 minute = %v, expected 98", sim.Record().Hunger)
	}

	sim.Prime()
	src.Advance(time.Hour)
	sim.Tick()
	if sim.Record().Hunger != 98 {
		t.Errorf("re-primed tick decayed hunger to %v", sim.Record().Hunger)
	}
}

func TestTickUsesClockSpeed(t *testing.T) {
	sim, gc, src := newTestSimulation()
	gc.speed = 8

	sim.Tick()
	src.Advance(15 * time.Second)
	sim.Tick()

	// 2/min * 8 * 0.25min = 4
	if got := sim.Record().Hunger; got != 96 {
		t.Errorf("hunger = %v, expected 96", got)
	}
}

func TestTickEvolvesFromClock(t *testing.T) {
	sim, gc, src := newTestSimulation()

	sim.Tick()
	gc.secs = 1799
	src.Advance(time.Second)
	if res := sim.Tick(); res.Evolved {
		t.Fatal("evolved before threshold")
	}

	gc.secs = 1800
	src.Advance(time.Second)
	res := sim.Tick()
	if !res.Evolved || sim.Record().EvolutionStage != StageBaby {
		t.Fatalf("expected evolution to BABY, got %+v", sim.Record())
	}

	gc.secs = 1801
	src.Advance(time.Second)
	if res := sim.Tick(); res.Evolved {
		t.Error("evolution fired twice")
	}
}

func TestHatchResetsRecord(t *testing.T) {
	sim, _, src := newTestSimulation()
	r := sim.Record()
	r.IsAlive = false
	r.EvolutionStage = StageAdult
	r.AdultType = AdultChicken
	sim.Load(r)

	fresh := sim.Hatch()
	if !fresh.IsAlive || fresh.EvolutionStage != StageEgg {
		t.Errorf("hatched record = %+v", fresh)
	}
	if fresh.BirthWallTime != src.Now().UnixMilli() {
		t.Errorf("birth time = %d, expected %d", fresh.BirthWallTime, src.Now().UnixMilli())
	}
}
