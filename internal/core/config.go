package core

// RuntimeConfig contains per-session settings passed to the UI at startup.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for the adult-type draw (0 = time based)
	User    string // SSH user name, empty for local play
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// MinScreenW and MinScreenH are the smallest usable terminal size.
const (
	MinScreenW = 40
	MinScreenH = 16
)

// Fits reports whether the configured screen is large enough to draw the game.
func (c RuntimeConfig) Fits() bool {
	return c.ScreenW >= MinScreenW && c.ScreenH >= MinScreenH
}
