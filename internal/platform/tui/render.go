package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tamagotchi/internal/core"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

const barWidth = 20

// sprites maps an appearance key to its ASCII art.
var sprites = map[string][]string{
	string(pet.StageEgg): {
		"  ____  ",
		" /    \\ ",
		"| .  . |",
		"|  ..  |",
		" \\____/ ",
	},
	string(pet.StageBaby): {
		" (\\__/) ",
		" ( o.o )",
		" / >  \\ ",
		"  U  U  ",
	},
	string(pet.AdultChicken): {
		"   __     ",
		" <(o )___ ",
		"  ( ._> / ",
		"   '---'  ",
	},
	string(pet.AdultPeacock): {
		"\\ \\ | / /",
		" \\ \\|/ / ",
		"  \\(@)/  ",
		"   (o>   ",
		"   /_\\   ",
	},
	string(pet.AdultPhoenix): {
		"\\\\  ^  //",
		" \\\\(v)// ",
		"  (\\o/)  ",
		"   /|\\   ",
		"  ~ ~ ~  ",
	},
}

var deadSprite = []string{
	"  .---.  ",
	" ( x x ) ",
	"  \\ ~ /  ",
	"  R.I.P  ",
}

// renderSprite draws the pet for its appearance.
func renderSprite(r pet.Record) string {
	if !r.IsAlive {
		return styles.Dead.Render(strings.Join(deadSprite, "\n"))
	}
	lines, ok := sprites[r.CurrentAppearance]
	if !ok {
		lines = sprites[string(pet.StageEgg)]
	}
	return styles.sprite(r.CurrentAppearance).Render(strings.Join(lines, "\n"))
}

// petName is the caption under the sprite.
func petName(r pet.Record) string {
	if !r.IsAlive {
		return "Gone"
	}
	if r.AdultType != pet.AdultNone {
		return r.AdultType.Title()
	}
	return stageTitle(r.EvolutionStage)
}

// renderBar draws a labelled meter colored by how full it is.
func renderBar(label string, value, maxValue float64, width int) string {
	ratio := 0.0
	if maxValue > 0 {
		ratio = math.Max(0, math.Min(1, value/maxValue))
	}
	filled := int(math.Round(ratio * float64(width)))

	fill := styles.BarGood
	switch {
	case ratio <= 0.25:
		fill = styles.BarLow
	case ratio <= 0.5:
		fill = styles.BarWarn
	}

	bar := fill.Render(strings.Repeat("█", filled)) +
		styles.BarEmpty.Render(strings.Repeat("░", width-filled))
	return styles.Label.Render(label) + bar + " " + styles.Value.Render(fmt.Sprintf("%3.0f", value))
}

// formatSpeed renders a multiplier without trailing zeros.
func formatSpeed(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".") + "x"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// centerBlock centers a multi-line block within given width.
func centerBlock(block string, width int) string {
	if lipgloss.Width(block) >= width {
		return block
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// viewTooSmall asks for a bigger terminal.
func viewTooSmall(cfg core.RuntimeConfig) string {
	msg := styles.Notice.Render(fmt.Sprintf(
		"Terminal too small: %dx%d\nNeed at least %dx%d",
		cfg.ScreenW, cfg.ScreenH, core.MinScreenW, core.MinScreenH,
	))
	return lipgloss.Place(max(cfg.ScreenW, 1), max(cfg.ScreenH, 1), lipgloss.Center, lipgloss.Center, msg)
}

// viewMenu renders the title screen.
func (m Model) viewMenu() string {
	var b strings.Builder
	w := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(centerText(styles.Title.Render("T A M A G O T C H I"), w))
	b.WriteString("\n")
	b.WriteString(centerText(styles.Subtitle.Render("a pocket pet that lives on game time"), w))
	b.WriteString("\n\n")

	r := m.coord.Record()
	if m.coord.HasPlayedBefore() {
		b.WriteString(centerBlock(styles.PetFrame.Render(renderSprite(r)), w))
		b.WriteString("\n")
		line := fmt.Sprintf("Your %s is waiting  (age %s)", petName(r), m.screen.Time.Formatted)
		if !r.IsAlive {
			line = "Your pet has passed away. Press enter to visit."
		}
		b.WriteString(centerText(styles.Value.Render(line), w))
	} else {
		b.WriteString(centerText(styles.Value.Render("No pet yet. Press enter to hatch an egg."), w))
	}
	b.WriteString("\n\n")

	speed := fmt.Sprintf("Game speed %s", formatSpeed(m.screen.Time.Speed))
	b.WriteString(centerText(styles.Clock.Render(speed), w))
	b.WriteString("\n")
	if banner := m.screen.Banner(); banner != "" {
		b.WriteString(centerText(styles.Banner.Render(banner), w))
	}
	b.WriteString("\n\n")
	b.WriteString(centerText(m.helpView(), w))

	return b.String()
}

// viewPet renders the main pet screen.
func (m Model) viewPet() string {
	r := m.coord.Record()
	w := m.config.ScreenW

	header := styles.Title.Render("TAMAGOTCHI") + "  " + styles.Badge.Render(string(m.screen.State))

	petBox := lipgloss.JoinVertical(lipgloss.Center,
		styles.PetFrame.Render(renderSprite(r)),
		styles.Value.Render(petName(r)),
	)

	feed := styles.Value.Render(fmt.Sprintf("feed costs %d", m.rates.FeedCost))
	if !m.screen.FeedEnabled {
		feed = styles.Notice.Render("no coins to feed")
	}
	statsCol := lipgloss.JoinVertical(lipgloss.Left,
		renderBar("Hunger", m.screen.Hunger, m.rates.MaxHunger, barWidth),
		renderBar("Life", m.screen.Life, m.rates.MaxLife, barWidth),
		"",
		styles.Label.Render("Coins")+styles.Coins.Render(fmt.Sprintf("%d", m.screen.Coins))+"  "+feed,
		styles.Label.Render("Time")+styles.Clock.Render(fmt.Sprintf("%s @ %s", m.screen.Time.Formatted, formatSpeed(m.screen.Time.Speed))),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Center, petBox, "    ", statsCol)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(header, w))
	b.WriteString("\n\n")
	b.WriteString(centerBlock(body, w))
	b.WriteString("\n\n")
	b.WriteString(centerText(styles.Banner.Render(m.screen.Banner()), w))
	b.WriteString("\n")
	b.WriteString(centerText(m.helpView(), w))
	return b.String()
}

// viewDialog places a dialog box in the middle of the screen.
func (m Model) viewDialog(title, text string) string {
	box := styles.DialogBorder.Render(lipgloss.JoinVertical(lipgloss.Center,
		styles.DialogTitle.Render(title),
		"",
		styles.DialogText.Render(text),
		"",
		m.helpView(),
	))
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// viewState picks the view for the current state.
func (m Model) viewState() string {
	switch m.coord.State() {
	case state.Playing:
		return m.viewPet()
	case state.Paused:
		return m.viewDialog("PAUSED",
			fmt.Sprintf("Time stands still at %s.", m.screen.Time.Formatted))
	case state.ConfirmReset:
		return m.viewDialog("START OVER?",
			"Your pet and all progress will be lost.")
	default:
		return m.viewMenu()
	}
}

// helpView renders the key help for the current state.
func (m Model) helpView() string {
	keys := m.keys.ForState(m.coord.State(), m.screen.FeedEnabled)
	return styles.Help.Render(m.help.View(keys))
}
