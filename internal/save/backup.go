package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidBackup is returned by Import for blobs without a tamagotchi or
// metadata section.
var ErrInvalidBackup = errors.New("save: invalid backup")

// Export returns the mirror as indented JSON, the format Import reads back.
func (g *Gateway) Export() ([]byte, error) {
	raw, err := json.MarshalIndent(g.data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("save: encode backup: %w", err)
	}
	return raw, nil
}

// Import replaces the stored blob with a backup and reloads it, so
// out-of-range values are clamped the same way a normal load clamps them.
// Sections missing from the backup take their default values.
func (g *Gateway) Import(raw []byte) (Data, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return g.data, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for _, name := range []Category{CategoryTamagotchi, CategoryMetadata} {
		if s, ok := sections[string(name)]; !ok || bytes.Equal(bytes.TrimSpace(s), []byte("null")) {
			return g.data, fmt.Errorf("%w: missing %s", ErrInvalidBackup, name)
		}
	}

	d := Default(g.rates, g.src.Now())
	if err := json.Unmarshal(raw, &d); err != nil {
		return g.data, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if err := g.Save(d); err != nil {
		return g.data, err
	}
	g.logger.Info("backup imported", "key", g.key, "version", d.Metadata.Version)
	return g.Load()
}
