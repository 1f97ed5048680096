// Package config provides YAML-based configuration loading for the
// tamagotchi: speed limits, loop intervals, creature tuning and storage.
package config

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
)

// Config is the full application configuration.
type Config struct {
	Time      TimeConfig      `yaml:"time"`
	Loop      LoopConfig      `yaml:"loop"`
	Pet       PetConfig       `yaml:"pet"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
}

// TimeConfig defines the game clock speed range.
type TimeConfig struct {
	DefaultSpeed float64   `yaml:"default_speed"`
	MinSpeed     float64   `yaml:"min_speed"`
	MaxSpeed     float64   `yaml:"max_speed"`
	Presets      []float64 `yaml:"presets"`
}

// LoopConfig defines timer intervals.
type LoopConfig struct {
	Tick     time.Duration `yaml:"tick"`
	Display  time.Duration `yaml:"display"`
	Autosave time.Duration `yaml:"autosave"`
}

// PetConfig defines creature stat bounds and rates.
type PetConfig struct {
	MaxHunger              float64 `yaml:"max_hunger"`
	MaxLife                float64 `yaml:"max_life"`
	MaxCoins               int     `yaml:"max_coins"`
	InitialCoins           int     `yaml:"initial_coins"`
	HungerDecayPerMin      float64 `yaml:"hunger_decay_per_min"`
	LifePenaltyPerMin      float64 `yaml:"life_penalty_per_min"`
	HungerPenaltyThreshold float64 `yaml:"hunger_penalty_threshold"`
	FeedAmount             float64 `yaml:"feed_amount"`
	FeedCost               int     `yaml:"feed_cost"`
	CoinIntervalSeconds    float64 `yaml:"coin_interval_seconds"`
}

// EvolutionConfig defines stage thresholds in game seconds.
type EvolutionConfig struct {
	EggToBabySeconds   float64      `yaml:"egg_to_baby_seconds"`
	BabyToAdultSeconds float64      `yaml:"baby_to_adult_seconds"`
	AdultWeights       AdultWeights `yaml:"adult_weights"`
}

// AdultWeights are the relative odds of each adult type.
type AdultWeights struct {
	Phoenix float64 `yaml:"phoenix"`
	Peacock float64 `yaml:"peacock"`
	Chicken float64 `yaml:"chicken"`
}

// StorageConfig locates the save database.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	SaveKey string `yaml:"save_key"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Validate normalizes out-of-range values in place and returns a note for
// each correction made.
func (c *Config) Validate() []string {
	def := DefaultConfig()
	var notes []string
	fix := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf(format, args...))
	}

	t := &c.Time
	if t.MinSpeed <= 0 {
		fix("time.min_speed %v must be positive, using %v", t.MinSpeed, def.Time.MinSpeed)
		t.MinSpeed = def.Time.MinSpeed
	}
	if t.MaxSpeed < t.MinSpeed {
		fix("time.max_speed %v below min_speed, using %v", t.MaxSpeed, t.MinSpeed)
		t.MaxSpeed = t.MinSpeed
	}
	if d := clampF(t.DefaultSpeed, t.MinSpeed, t.MaxSpeed); d != t.DefaultSpeed {
		fix("time.default_speed %v outside [%v, %v], using %v", t.DefaultSpeed, t.MinSpeed, t.MaxSpeed, d)
		t.DefaultSpeed = d
	}
	presets := t.Presets[:0:0]
	for _, p := range t.Presets {
		if p < t.MinSpeed || p > t.MaxSpeed {
			fix("time.presets: dropping %v outside [%v, %v]", p, t.MinSpeed, t.MaxSpeed)
			continue
		}
		presets = append(presets, p)
	}
	slices.Sort(presets)
	t.Presets = slices.Compact(presets)
	if len(t.Presets) == 0 {
		t.Presets = []float64{t.DefaultSpeed}
	}

	l := &c.Loop
	if l.Tick <= 0 {
		fix("loop.tick must be positive, using %s", def.Loop.Tick)
		l.Tick = def.Loop.Tick
	}
	if l.Display <= 0 {
		fix("loop.display must be positive, using %s", def.Loop.Display)
		l.Display = def.Loop.Display
	}
	if l.Autosave <= 0 {
		fix("loop.autosave must be positive, using %s", def.Loop.Autosave)
		l.Autosave = def.Loop.Autosave
	}

	p := &c.Pet
	if p.MaxHunger <= 0 {
		p.MaxHunger = def.Pet.MaxHunger
		fix("pet.max_hunger must be positive, using %v", p.MaxHunger)
	}
	if p.MaxLife <= 0 {
		p.MaxLife = def.Pet.MaxLife
		fix("pet.max_life must be positive, using %v", p.MaxLife)
	}
	if p.MaxCoins <= 0 {
		p.MaxCoins = def.Pet.MaxCoins
		fix("pet.max_coins must be positive, using %d", p.MaxCoins)
	}
	p.InitialCoins = clampI(p.InitialCoins, 0, p.MaxCoins)
	p.HungerDecayPerMin = math.Max(0, p.HungerDecayPerMin)
	p.LifePenaltyPerMin = math.Max(0, p.LifePenaltyPerMin)
	p.HungerPenaltyThreshold = clampF(p.HungerPenaltyThreshold, 0, p.MaxHunger)
	p.FeedAmount = math.Max(0, p.FeedAmount)
	if p.FeedCost < 1 {
		fix("pet.feed_cost must be at least 1, using 1")
		p.FeedCost = 1
	}
	p.CoinIntervalSeconds = math.Max(0, p.CoinIntervalSeconds)

	e := &c.Evolution
	e.EggToBabySeconds = math.Max(0, e.EggToBabySeconds)
	e.BabyToAdultSeconds = math.Max(0, e.BabyToAdultSeconds)
	w := &e.AdultWeights
	w.Phoenix, w.Peacock, w.Chicken = math.Max(0, w.Phoenix), math.Max(0, w.Peacock), math.Max(0, w.Chicken)
	sum := w.Phoenix + w.Peacock + w.Chicken
	switch {
	case sum == 0:
		fix("evolution.adult_weights are all zero, using defaults")
		*w = def.Evolution.AdultWeights
	case math.Abs(sum-1) > 1e-9:
		fix("evolution.adult_weights sum to %v, normalizing", sum)
		w.Phoenix /= sum
		w.Peacock /= sum
		w.Chicken /= sum
	}

	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}
	if c.Storage.SaveKey == "" {
		c.Storage.SaveKey = def.Storage.SaveKey
	}
	if c.Server.Address == "" {
		c.Server.Address = def.Server.Address
	}
	if c.Server.IdleTimeout <= 0 {
		c.Server.IdleTimeout = def.Server.IdleTimeout
	}

	return notes
}

// Limits returns the clock speed limits.
func (c Config) Limits() clock.Limits {
	return clock.Limits{
		Min:     c.Time.MinSpeed,
		Max:     c.Time.MaxSpeed,
		Default: c.Time.DefaultSpeed,
	}
}

// Rates returns the creature simulation tuning.
// Adult weights are ordered rarest first for the cumulative draw.
func (c Config) Rates() pet.Rates {
	p, e := c.Pet, c.Evolution
	return pet.Rates{
		MaxHunger:              p.MaxHunger,
		MaxLife:                p.MaxLife,
		MaxCoins:               p.MaxCoins,
		InitialCoins:           p.InitialCoins,
		HungerDecayPerMin:      p.HungerDecayPerMin,
		LifePenaltyPerMin:      p.LifePenaltyPerMin,
		HungerPenaltyThreshold: p.HungerPenaltyThreshold,
		FeedAmount:             p.FeedAmount,
		FeedCost:               p.FeedCost,
		CoinIntervalSeconds:    p.CoinIntervalSeconds,
		EggToBabySeconds:       e.EggToBabySeconds,
		BabyToAdultSeconds:     e.BabyToAdultSeconds,
		AdultWeights: []pet.AdultWeight{
			{Type: pet.AdultPhoenix, Weight: e.AdultWeights.Phoenix},
			{Type: pet.AdultPeacock, Weight: e.AdultWeights.Peacock},
			{Type: pet.AdultChicken, Weight: e.AdultWeights.Chicken},
		},
	}
}

func clampI(val, lo, hi int) int {
	return max(lo, min(hi, val))
}
