package save

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := clock.NewManualSource(epoch)
	from := NewGateway(newMemBackend(), "a", pet.DefaultRates(), src, nil)
	from.Load()

	d := from.Data()
	d.Tamagotchi.Hunger = 42
	d.Tamagotchi.Coins = 7
	d.GameState.HasPlayedBefore = true
	d.Statistics.FeedCount = 3
	if err := from.Save(d); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	raw, err := from.Export()
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if !strings.Contains(string(raw), "\n  \"tamagotchi\"") {
		t.Errorf("Export() should be indented, got %s", raw)
	}

	backend := newMemBackend()
	to := NewGateway(backend, "b", pet.DefaultRates(), src, nil)
	got, err := to.Import(raw)
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if got.Tamagotchi.Hunger != 42 || got.Tamagotchi.Coins != 7 || got.Statistics.FeedCount != 3 || !got.GameState.HasPlayedBefore {
		t.Errorf("imported data = %+v", got)
	}
	if _, ok := backend.blobs["b"]; !ok {
		t.Error("Import() did not write the backend")
	}
}

func TestImportClampsValues(t *testing.T) {
	g := NewGateway(newMemBackend(), "k", pet.DefaultRates(), clock.NewManualSource(epoch), nil)

	got, err := g.Import([]byte(`{"tamagotchi":{"hunger":250,"life":-5,"coins":-3,"isAlive":true},"metadata":{"version":"1.0.0"}}`))
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if got.Tamagotchi.Hunger != 100 || got.Tamagotchi.Life != 0 || got.Tamagotchi.Coins != 0 {
		t.Errorf("imported creature = %+v, expected clamped values", got.Tamagotchi)
	}
	if got.GameState.CurrentState != state.Menu {
		t.Errorf("missing gameState = %s, expected default %s", got.GameState.CurrentState, state.Menu)
	}
}

func TestImportRejectsIncompleteBackup(t *testing.T) {
	tests := map[string]string{
		"not json":         `hello`,
		"no tamagotchi":    `{"metadata":{"version":"1.0.0"}}`,
		"no metadata":      `{"tamagotchi":{"hunger":50}}`,
		"null tamagotchi":  `{"tamagotchi":null,"metadata":{}}`,
		"array at the top": `[1,2,3]`,
	}
	for name, raw := range tests {
		backend := newMemBackend()
		g := NewGateway(backend, "k", pet.DefaultRates(), clock.NewManualSource(epoch), nil)
		if _, err := g.Import([]byte(raw)); !errors.Is(err, ErrInvalidBackup) {
			t.Errorf("%s: Import() error = %v, expected ErrInvalidBackup", name, err)
		}
		if len(backend.blobs) != 0 {
			t.Errorf("%s: rejected backup was written", name)
		}
	}
}
