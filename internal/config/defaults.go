package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tamagotchi.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It matches defaults/tamagotchi.yaml and is used if the embed cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Time: TimeConfig{
			DefaultSpeed: 1,
			MinSpeed:     0.1,
			MaxSpeed:     300,
			Presets:      []float64{1, 2, 4, 8, 16, 300},
		},
		Loop: LoopConfig{
			Tick:     time.Second,
			Display:  100 * time.Millisecond,
			Autosave: 30 * time.Second,
		},
		Pet: PetConfig{
			MaxHunger:              100,
			MaxLife:                100,
			MaxCoins:               9999,
			InitialCoins:           10,
			HungerDecayPerMin:      2,
			LifePenaltyPerMin:      1,
			HungerPenaltyThreshold: 50,
			FeedAmount:             5,
			FeedCost:               1,
			CoinIntervalSeconds:    300,
		},
		Evolution: EvolutionConfig{
			EggToBabySeconds:   1800,
			BabyToAdultSeconds: 3600,
			AdultWeights: AdultWeights{
				Phoenix: 0.10,
				Peacock: 0.30,
				Chicken: 0.60,
			},
		},
		Storage: StorageConfig{
			DBPath:  "~/.tamagotchi/save.db",
			SaveKey: "tamagotchi_save_data",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
