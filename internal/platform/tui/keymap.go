package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tamagotchi/internal/core"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

// KeyMap defines the key bindings for the pet screen.
type KeyMap struct {
	Start     key.Binding
	Feed      key.Binding
	Pause     key.Binding
	Resume    key.Binding
	Reset     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Menu      key.Binding
	SpeedUp   key.Binding
	SpeedDown key.Binding
	Journal   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Feed: key.NewBinding(
			key.WithKeys("f", " "),
			key.WithHelp("f/space", "feed (1 coin)"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Resume: key.NewBinding(
			key.WithKeys("p", "enter", " "),
			key.WithHelp("p/enter", "resume"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm reset"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m", "esc"),
			key.WithHelp("m", "menu"),
		),
		SpeedUp: key.NewBinding(
			key.WithKeys("+", "=", "]"),
			key.WithHelp("+", "faster"),
		),
		SpeedDown: key.NewBinding(
			key.WithKeys("-", "_", "["),
			key.WithHelp("-", "slower"),
		),
		Journal: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "journal"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ForState enables only the bindings that do something in st.
func (k KeyMap) ForState(st state.State, canFeed bool) KeyMap {
	k.Start.SetEnabled(st == state.Menu)
	k.Feed.SetEnabled(st == state.Playing)
	k.Pause.SetEnabled(st == state.Playing)
	k.Resume.SetEnabled(st == state.Paused)
	k.Reset.SetEnabled(st == state.Playing)
	k.Confirm.SetEnabled(st == state.ConfirmReset)
	k.Cancel.SetEnabled(st == state.ConfirmReset)
	k.Menu.SetEnabled(st == state.Playing)
	k.SpeedUp.SetEnabled(st == state.Playing || st == state.Menu)
	k.SpeedDown.SetEnabled(st == state.Playing || st == state.Menu)
	k.Journal.SetEnabled(st != state.ConfirmReset)

	if !canFeed {
		k.Feed.SetHelp("f", "no coins")
	}
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Feed, k.Pause, k.Resume, k.Confirm, k.Cancel, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Feed, k.Pause, k.Resume},
		{k.SpeedUp, k.SpeedDown, k.Journal},
		{k.Reset, k.Confirm, k.Cancel, k.Menu},
		{k.Help, k.Quit},
	}
}

// ActionFor translates a key message into the action it triggers in st.
// Bindings are checked in priority order so shared keys such as enter and
// esc resolve by state.
func (k KeyMap) ActionFor(msg tea.KeyMsg, st state.State) core.Action {
	keys := k.ForState(st, true)

	switch {
	case key.Matches(msg, keys.Quit):
		return core.ActionQuit
	case key.Matches(msg, keys.Help):
		return core.ActionHelp
	case key.Matches(msg, keys.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, keys.Cancel):
		return core.ActionCancel
	case key.Matches(msg, keys.Start):
		return core.ActionStart
	case key.Matches(msg, keys.Resume), key.Matches(msg, keys.Pause):
		return core.ActionPause
	case key.Matches(msg, keys.Feed):
		return core.ActionFeed
	case key.Matches(msg, keys.Reset):
		return core.ActionReset
	case key.Matches(msg, keys.Menu):
		return core.ActionMenu
	case key.Matches(msg, keys.SpeedUp):
		return core.ActionSpeedUp
	case key.Matches(msg, keys.SpeedDown):
		return core.ActionSpeedDown
	case key.Matches(msg, keys.Journal):
		return core.ActionJournal
	}
	return core.ActionNone
}
