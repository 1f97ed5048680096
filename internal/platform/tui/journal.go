package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/game"
	"github.com/vovakirdan/tui-tamagotchi/internal/storage"
)

// Journal layout constants
const (
	maxJournalRows  = 200 // Max entries to load
	journalChrome   = 8   // Lines used by title, borders and help
	minJournalTable = 3
)

// JournalStore is the journal read/write surface. *storage.Store satisfies it.
type JournalStore interface {
	game.Journal
	Journal(saveKey string, limit int) ([]storage.JournalEntry, error)
}

// JournalKeyMap defines the key bindings for the journal view.
type JournalKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalView lists the save's recorded events in a table.
type JournalView struct {
	entries []storage.JournalEntry
	err     error
	table   table.Model
	help    help.Model
	keys    JournalKeyMap
	width   int
	height  int
	closed  bool
	quit    bool
}

// NewJournalView loads the journal for saveKey. A nil store shows an empty view.
func NewJournalView(store JournalStore, saveKey string, width, height int) *JournalView {
	v := &JournalView{
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	v.help.Width = width
	if store != nil {
		v.entries, v.err = store.Journal(saveKey, maxJournalRows)
	}
	v.table = v.createTable()
	v.updateTableRows()
	return v
}

// createTable creates a new table with columns sized to the view.
func (v *JournalView) createTable() table.Model {
	columns := []table.Column{
		{Title: "Game time", Width: 10},
		{Title: "Event", Width: 9},
		{Title: "Detail", Width: 20},
		{Title: "When", Width: 12},
	}

	// Give spare width to the detail column
	tableWidth := v.width - 8
	if spare := tableWidth - 51; spare > 0 {
		columns[2].Width += min(spare, 30)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(minJournalTable, v.height-journalChrome)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorDim).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table, newest entry first.
func (v *JournalView) updateTableRows() {
	rows := make([]table.Row, 0, len(v.entries))
	for i := len(v.entries) - 1; i >= 0; i-- {
		e := v.entries[i]
		when := ""
		if !e.CreatedAt.IsZero() {
			when = e.CreatedAt.Local().Format("Jan 02 15:04")
		}
		rows = append(rows, table.Row{
			clock.FormatGameTime(e.GameSeconds),
			e.Kind,
			e.Detail,
			when,
		})
	}
	v.table.SetRows(rows)
	v.table.GotoTop()
}

// Update handles messages for the journal view.
func (v *JournalView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			v.quit = true
			return nil
		case key.Matches(msg, v.keys.Back):
			v.closed = true
			return nil
		}

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.table = v.createTable()
		v.updateTableRows()
		v.help.Width = msg.Width
		return nil
	}

	v.table, cmd = v.table.Update(msg)
	return cmd
}

// Closed reports whether the user left the view.
func (v *JournalView) Closed() bool {
	return v.closed
}

// WantsQuit reports whether the user asked to quit from the view.
func (v *JournalView) WantsQuit() bool {
	return v.quit
}

// Len returns the number of loaded entries.
func (v *JournalView) Len() int {
	return len(v.entries)
}

// View renders the journal.
func (v *JournalView) View() string {
	var b strings.Builder

	title := fmt.Sprintf("JOURNAL - %d events", len(v.entries))
	b.WriteString(styles.Title.Render(centerText(title, v.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim).
		Padding(0, 1)

	b.WriteString(centerBlock(tableStyle.Render(v.renderTableContent()), v.width))

	b.WriteString("\n")
	b.WriteString(styles.Help.Render(v.help.View(v.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (v *JournalView) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(colorMuted).
		Italic(true).
		Padding(2, 4)

	switch {
	case v.err != nil:
		return emptyStyle.Render("Could not read the journal:\n" + v.err.Error())
	case len(v.entries) == 0:
		return emptyStyle.Render("Nothing recorded yet.\nHatch a pet to start the journal!")
	}
	return v.table.View()
}
