package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
)

// ErrUnknownCategory is returned by UpdateCategory for names outside Categories.
var ErrUnknownCategory = errors.New("save: unknown category")

// Backend is a key/value blob store. *storage.Store satisfies it.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// Gateway keeps an in-memory mirror of one save blob and writes it through
// to the backend. Write errors are returned but the mirror is updated
// regardless, so play can continue on a failing backend.
type Gateway struct {
	backend Backend
	key     string
	rates   pet.Rates
	src     clock.Source
	logger  *log.Logger
	data    Data
}

// NewGateway creates a gateway for key. The mirror starts at defaults until Load.
func NewGateway(backend Backend, key string, rates pet.Rates, src clock.Source, logger *log.Logger) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	if src == nil {
		src = clock.SystemSource{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Gateway{
		backend: backend,
		key:     key,
		rates:   rates,
		src:     src,
		logger:  logger,
		data:    Default(rates, src.Now()),
	}
}

// Key returns the save identifier.
func (g *Gateway) Key() string {
	return g.key
}

// Data returns a copy of the in-memory blob.
func (g *Gateway) Data() Data {
	return g.data
}

// Load reads the blob from the backend. A missing blob yields defaults.
// Fields absent from a stored blob keep their default values. On a read or
// decode error the mirror is reset to defaults and the error is returned.
func (g *Gateway) Load() (Data, error) {
	def := Default(g.rates, g.src.Now())

	raw, ok, err := g.backend.Get(g.key)
	if err != nil {
		g.data = def
		return g.data, fmt.Errorf("save: load %q: %w", g.key, err)
	}
	if !ok {
		g.data = def
		return g.data, nil
	}

	loaded := def
	if err := json.Unmarshal(raw, &loaded); err != nil {
		g.data = def
		return g.data, fmt.Errorf("save: decode %q: %w", g.key, err)
	}
	loaded.Tamagotchi = loaded.Tamagotchi.Clamp(g.rates)
	if loaded.Metadata.Version == "" {
		loaded.Metadata.Version = Version
	}

	g.data = loaded
	g.logger.Debug("save loaded", "key", g.key, "version", loaded.Metadata.Version)
	return g.data, nil
}

// Exists reports whether a blob is stored under the key.
func (g *Gateway) Exists() (bool, error) {
	_, ok, err := g.backend.Get(g.key)
	if err != nil {
		return false, fmt.Errorf("save: exists %q: %w", g.key, err)
	}
	return ok, nil
}

// UpdateCategory merges partial into one category and writes the blob.
// partial may be the category struct itself or a map holding a subset of its
// JSON fields; fields not present in partial are left unchanged.
func (g *Gateway) UpdateCategory(cat Category, partial any) error {
	// Merge into a copy so a bad payload leaves the mirror untouched.
	next := g.data
	target, err := next.categoryPtr(cat)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("save: encode %s: %w", cat, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("save: merge %s: %w", cat, err)
	}
	next.Tamagotchi = next.Tamagotchi.Clamp(g.rates)

	g.data = next
	return g.Flush()
}

// SaveCreature replaces the tamagotchi category.
func (g *Gateway) SaveCreature(r pet.Record) error {
	g.data.Tamagotchi = r
	return g.Flush()
}

// SaveTime replaces the time category.
func (g *Gateway) SaveTime(s clock.Snapshot) error {
	g.data.Time = s
	return g.Flush()
}

// SaveGameState replaces the gameState category.
func (g *Gateway) SaveGameState(gs GameState) error {
	g.data.GameState = gs
	return g.Flush()
}

// SaveStatistics replaces the statistics category.
func (g *Gateway) SaveStatistics(st Statistics) error {
	g.data.Statistics = st
	return g.Flush()
}

// Save replaces the whole blob, keeping its creation stamp.
func (g *Gateway) Save(d Data) error {
	if d.Metadata.CreatedAt == 0 {
		d.Metadata.CreatedAt = g.data.Metadata.CreatedAt
	}
	g.data = d
	return g.Flush()
}

// Flush writes the mirror to the backend, stamping lastSavedAt.
func (g *Gateway) Flush() error {
	g.data.Metadata.Version = Version
	g.data.Metadata.LastSavedAt = clock.ToMillis(g.src.Now())

	raw, err := json.Marshal(g.data)
	if err != nil {
		return fmt.Errorf("save: encode %q: %w", g.key, err)
	}
	if err := g.backend.Set(g.key, raw); err != nil {
		return fmt.Errorf("save: write %q: %w", g.key, err)
	}
	return nil
}

// ResetToDefaults removes the stored blob and resets the mirror.
func (g *Gateway) ResetToDefaults() error {
	g.data = Default(g.rates, g.src.Now())
	if err := g.backend.Remove(g.key); err != nil {
		return fmt.Errorf("save: reset %q: %w", g.key, err)
	}
	g.logger.Info("save reset", "key", g.key)
	return nil
}

// categoryPtr returns a pointer to the named section of d.
func (d *Data) categoryPtr(cat Category) (any, error) {
	switch cat {
	case CategoryTamagotchi:
		return &d.Tamagotchi, nil
	case CategoryTime:
		return &d.Time, nil
	case CategoryGameState:
		return &d.GameState, nil
	case CategoryStatistics:
		return &d.Statistics, nil
	case CategoryMetadata:
		return &d.Metadata, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
}
