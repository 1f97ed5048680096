package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
)

// Shared palette
const (
	colorDim   = lipgloss.Color("240")
	colorMuted = lipgloss.Color("245")
	colorText  = lipgloss.Color("252")
	colorGold  = lipgloss.Color("220")
	colorGood  = lipgloss.Color("46")
	colorWarn  = lipgloss.Color("214")
	colorLow   = lipgloss.Color("196")
)

// Theme contains the visual styles for the pet screen.
type Theme struct {
	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Badge    lipgloss.Style

	// Stats
	Label    lipgloss.Style
	Value    lipgloss.Style
	BarGood  lipgloss.Style
	BarWarn  lipgloss.Style
	BarLow   lipgloss.Style
	BarEmpty lipgloss.Style
	Coins    lipgloss.Style
	Clock    lipgloss.Style

	// Pet box and per-appearance sprite colors
	PetFrame lipgloss.Style
	Sprites  map[string]lipgloss.Style
	Dead     lipgloss.Style

	// Messages
	Banner lipgloss.Style
	Notice lipgloss.Style
	Help   lipgloss.Style

	// Dialogs
	DialogBorder lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogText   lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("213")).Padding(0, 1),

		Label:    lipgloss.NewStyle().Foreground(colorMuted).Width(8),
		Value:    lipgloss.NewStyle().Foreground(colorText),
		BarGood:  lipgloss.NewStyle().Foreground(colorGood),
		BarWarn:  lipgloss.NewStyle().Foreground(colorWarn),
		BarLow:   lipgloss.NewStyle().Foreground(colorLow),
		BarEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
		Coins:    lipgloss.NewStyle().Foreground(colorGold).Bold(true),
		Clock:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),

		PetFrame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 2).
			Width(24).
			Align(lipgloss.Center),
		Sprites: map[string]lipgloss.Style{
			string(pet.StageEgg):     lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
			string(pet.StageBaby):    lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
			string(pet.AdultChicken): lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
			string(pet.AdultPeacock): lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
			string(pet.AdultPhoenix): lipgloss.NewStyle().Foreground(lipgloss.Color("202")).Bold(true),
		},
		Dead: lipgloss.NewStyle().Foreground(colorDim),

		Banner: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Notice: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Help:   lipgloss.NewStyle().Foreground(colorMuted),

		DialogBorder: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("213")).
			Padding(1, 3).
			Align(lipgloss.Center),
		DialogTitle: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		DialogText:  lipgloss.NewStyle().Foreground(colorText),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without color.
func MonochromeTheme() Theme {
	t := DefaultTheme()
	gray := lipgloss.NewStyle().Foreground(colorText)
	for k := range t.Sprites {
		t.Sprites[k] = gray
	}
	t.BarGood = gray
	t.BarWarn = gray
	t.BarLow = gray.Bold(true)
	t.Coins = gray.Bold(true)
	t.Clock = gray
	t.Title = gray.Bold(true)
	return t
}

// sprite returns the style for an appearance key.
func (t Theme) sprite(appearance string) lipgloss.Style {
	if s, ok := t.Sprites[appearance]; ok {
		return s
	}
	return t.Value
}

// styles is the theme in use. Set it before starting a program.
var styles = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	styles = theme
}

// CurrentTheme returns the global theme.
func CurrentTheme() Theme {
	return styles
}
