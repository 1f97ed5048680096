package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the configuration.
// Search order: customPath -> ~/.tamagotchi/config.yaml -> ./configs/tamagotchi.yaml -> embedded default.
// The first file found is overlaid on the embedded defaults, so it only
// needs the keys it changes. The result is validated; notes lists any
// values that were corrected.
func Load(customPath string) (cfg Config, source string, notes []string, err error) {
	cfg = embeddedDefault()
	source = "embedded"

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, source, nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, source, nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		notes = cfg.Validate()
		return cfg, customPath, notes, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "tamagotchi.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		overlay := cfg
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			notes = append(notes, fmt.Sprintf("ignoring %s: %v", path, err))
			continue
		}
		cfg, source = overlay, path
		break
	}

	notes = append(notes, cfg.Validate()...)
	return cfg, source, notes, nil
}

// embeddedDefault parses the embedded YAML, falling back to DefaultConfig.
func embeddedDefault() Config {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tamagotchi", filename)
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}
