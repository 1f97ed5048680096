// Package save defines the persisted save blob and the gateway that reads
// and writes it through a key/value backend.
package save

import (
	"time"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

// Version is written into every blob's metadata.
const Version = "1.0.0"

// DefaultKey is the fixed save identifier.
const DefaultKey = "tamagotchi_save_data"

// KeyFor scopes base to one user. An empty user keeps base unchanged.
func KeyFor(base, user string) string {
	if base == "" {
		base = DefaultKey
	}
	if user == "" {
		return base
	}
	return base + ":" + user
}

// Category names a top-level section of the blob.
type Category string

const (
	CategoryTamagotchi Category = "tamagotchi"
	CategoryTime       Category = "time"
	CategoryGameState  Category = "gameState"
	CategoryStatistics Category = "statistics"
	CategoryMetadata   Category = "metadata"
)

// Categories lists every category in blob order.
var Categories = []Category{
	CategoryTamagotchi,
	CategoryTime,
	CategoryGameState,
	CategoryStatistics,
	CategoryMetadata,
}

// GameState is the session record mirrored from the state machine.
type GameState struct {
	CurrentState    state.State `json:"currentState"`
	HasPlayedBefore bool        `json:"hasPlayedBefore"`
	LastStateChange int64       `json:"lastStateChange"` // unix ms
}

// Statistics are lifetime counters for one save.
type Statistics struct {
	TotalPlaySeconds float64 `json:"totalPlayTime"` // wall seconds spent in Playing
	FeedCount        int     `json:"feedCount"`
	GamesPlayed      int     `json:"gamesPlayed"`
	Evolutions       int     `json:"evolutions"`
	Deaths           int     `json:"deaths"`
	CoinsEarned      int     `json:"coinsEarned"`
}

// Metadata stamps the blob.
type Metadata struct {
	Version     string `json:"version"`
	CreatedAt   int64  `json:"createdAt"`   // unix ms
	LastSavedAt int64  `json:"lastSavedAt"` // unix ms
}

// Data is the full save blob.
type Data struct {
	Tamagotchi pet.Record     `json:"tamagotchi"`
	Time       clock.Snapshot `json:"time"`
	GameState  GameState      `json:"gameState"`
	Statistics Statistics     `json:"statistics"`
	Metadata   Metadata       `json:"metadata"`
}

// Default returns the blob of a game that has never been played.
func Default(rates pet.Rates, now time.Time) Data {
	return Data{
		Tamagotchi: pet.NewRecord(rates, time.Time{}),
		Time:       clock.Snapshot{SpeedMultiplier: 1},
		GameState:  GameState{CurrentState: state.Menu},
		Metadata: Metadata{
			Version:   Version,
			CreatedAt: clock.ToMillis(now),
		},
	}
}
