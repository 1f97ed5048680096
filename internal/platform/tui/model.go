package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/config"
	"github.com/vovakirdan/tui-tamagotchi/internal/core"
	"github.com/vovakirdan/tui-tamagotchi/internal/game"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
)

// Options configure a pet session.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Gateway *save.Gateway // nil keeps the save in memory
	Journal JournalStore  // optional
	Logger  *log.Logger
	Source  clock.Source
}

// Model is the Bubble Tea model for one pet session.
type Model struct {
	coord    *game.Coordinator
	screen   *Screen
	sched    *Scheduler
	store    JournalStore
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	journal  *JournalView
	rates    pet.Rates
	config   core.RuntimeConfig
	quitting bool
}

// NewModel builds the coordinator for opts and restores the last session.
func NewModel(opts Options) (Model, error) {
	src := opts.Source
	if src == nil {
		src = clock.SystemSource{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	screen := NewScreen(src.Now)
	sched := NewScheduler()
	deps := game.Deps{
		Source:    src,
		Logger:    logger,
		Gateway:   opts.Gateway,
		Display:   screen,
		Scheduler: sched,
		Seed:      opts.Runtime.Seed,
	}
	if opts.Journal != nil {
		deps.Journal = opts.Journal
	}

	coord, err := game.New(opts.Config, deps)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	coord.Boot()

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		coord:  coord,
		screen: screen,
		sched:  sched,
		store:  opts.Journal,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   h,
		rates:  opts.Config.Rates(),
		config: opts.Runtime,
	}, nil
}

// Init starts the timers armed during Boot.
func (m Model) Init() tea.Cmd {
	return m.sched.Drain()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimerMsg:
		m.coord.HandleTimer(msg.Handle)
		return m, m.sched.Drain()

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		if m.journal != nil {
			m.journal.Update(msg)
		}
		return m, nil

	case tea.KeyMsg:
		if m.journal != nil {
			return m.updateJournal(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// updateJournal forwards keys to the open journal view.
func (m Model) updateJournal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.journal.Update(msg)
	switch {
	case m.journal.WantsQuit():
		return m.quit()
	case m.journal.Closed():
		m.journal = nil
	}
	return m, cmd
}

// handleKey maps a key to an action and runs it on the coordinator.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch m.keys.ActionFor(msg, m.coord.State()) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionStart:
		err = m.coord.StartGame()
	case core.ActionPause:
		err = m.coord.TogglePause()
	case core.ActionFeed:
		if res := m.coord.FeedPet(); !res.Success {
			m.screen.flash(feedFailure(res.Reason))
		}
	case core.ActionReset:
		err = m.coord.RequestReset()
	case core.ActionConfirm:
		err = m.coord.ConfirmReset()
	case core.ActionCancel:
		err = m.coord.CancelReset()
	case core.ActionMenu:
		err = m.coord.ReturnToMenu()
	case core.ActionSpeedUp:
		m.screen.flash("Speed " + formatSpeed(m.coord.CycleSpeed(true)))
	case core.ActionSpeedDown:
		m.screen.flash("Speed " + formatSpeed(m.coord.CycleSpeed(false)))
	case core.ActionJournal:
		m.journal = NewJournalView(m.store, m.coord.SaveKey(), m.config.ScreenW, m.config.ScreenH)
	}

	if err != nil {
		m.logger.Debug("key ignored", "key", msg.String(), "error", err)
	}
	return m, m.sched.Drain()
}

// feedFailure is the banner for a rejected feed.
func feedFailure(reason string) string {
	switch reason {
	case pet.ReasonInsufficientCoins:
		return "Not enough coins to feed."
	case pet.ReasonDead:
		return "Your pet can no longer eat."
	default:
		return "You can't feed right now."
	}
}

// quit closes the session and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if err := m.Close(); err != nil {
		m.logger.Error("final save failed", "error", err)
	}
	return m, tea.Quit
}

// Close stops the timers and writes the final save. It is safe to call more than once.
func (m Model) Close() error {
	return m.coord.Shutdown()
}

// Coordinator returns the session's coordinator.
func (m Model) Coordinator() *game.Coordinator {
	return m.coord
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.config.Fits() {
		return viewTooSmall(m.config)
	}
	if m.journal != nil {
		return m.journal.View()
	}
	return m.viewState()
}

// Run starts a local session and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),  // Use alternate screen buffer
		tea.WithContext(ctx), // Stop on signal
	)

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	return errors.Join(err, model.Close())
}
