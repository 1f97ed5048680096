package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/config"
	"github.com/vovakirdan/tui-tamagotchi/internal/core"
	"github.com/vovakirdan/tui-tamagotchi/internal/game"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
	"github.com/vovakirdan/tui-tamagotchi/internal/storage"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, journal JournalStore) (Model, *clock.ManualSource) {
	t.Helper()
	src := clock.NewManualSource(epoch)
	cfg := config.DefaultConfig()
	m, err := NewModel(Options{
		Config:  cfg,
		Runtime: core.RuntimeConfig{ScreenW: 100, ScreenH: 30, Seed: 7},
		Gateway: save.NewGateway(save.NewMemoryBackend(), save.DefaultKey, cfg.Rates(), src, nil),
		Journal: journal,
		Source:  src,
	})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m, src
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestNewModelStartsInMenu(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if got := m.Coordinator().State(); got != state.Menu {
		t.Errorf("State() = %v, expected %v", got, state.Menu)
	}
	if m.Init() == nil {
		t.Error("Init() should start the autosave timer")
	}
	if !strings.Contains(m.View(), "No pet yet") {
		t.Errorf("menu view missing hatch prompt:\n%s", m.View())
	}
}

func TestEnterHatchesAndTimersFlow(t *testing.T) {
	m, src := newTestModel(t, nil)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Coordinator().State(); got != state.Playing {
		t.Fatalf("State() = %v, expected %v", got, state.Playing)
	}
	if cmd == nil {
		t.Error("starting play should schedule tick and display timers")
	}
	if m.screen.State != state.Playing {
		t.Errorf("screen state = %v, expected %v", m.screen.State, state.Playing)
	}

	src.Advance(time.Minute)
	m, _ = send(t, m, TimerMsg{Handle: game.TimerHandle{Kind: game.TimerTick, Gen: 1}})
	if m.screen.Hunger >= 100 {
		t.Errorf("Hunger = %v, expected decay after a minute", m.screen.Hunger)
	}
	if !strings.Contains(m.View(), "Hunger") {
		t.Errorf("pet view missing stats:\n%s", m.View())
	}
}

func TestFeedWithoutCoinsShowsBanner(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	c := m.Coordinator()
	if !c.SpendCoins(c.Record().Coins) {
		t.Fatal("SpendCoins() = false, expected true")
	}
	m, _ = send(t, m, runeKey('f'))

	if got := m.screen.Banner(); got != "Not enough coins to feed." {
		t.Errorf("Banner() = %q, expected insufficient coins message", got)
	}
	if m.screen.FeedEnabled {
		t.Error("FeedEnabled should be false with no coins")
	}
}

func TestPauseAndResetDialogs(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = send(t, m, runeKey('p'))
	if got := m.Coordinator().State(); got != state.Paused {
		t.Fatalf("State() = %v, expected %v", got, state.Paused)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Errorf("paused view missing dialog:\n%s", m.View())
	}

	m, _ = send(t, m, runeKey('p'))
	m, _ = send(t, m, runeKey('r'))
	if got := m.Coordinator().State(); got != state.ConfirmReset {
		t.Fatalf("State() = %v, expected %v", got, state.ConfirmReset)
	}
	if !strings.Contains(m.View(), "START OVER?") {
		t.Errorf("confirm view missing dialog:\n%s", m.View())
	}

	m, _ = send(t, m, runeKey('y'))
	if got := m.Coordinator().State(); got != state.Menu {
		t.Errorf("State() = %v, expected %v", got, state.Menu)
	}
	if m.Coordinator().HasPlayedBefore() {
		t.Error("reset should forget the pet")
	}
}

func TestSpeedKeysCyclePresets(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m, _ = send(t, m, runeKey('+'))
	if got := m.Coordinator().ClockInfo().Speed; got != 2 {
		t.Errorf("Speed = %v, expected 2", got)
	}
	if got := m.screen.Banner(); got != "Speed 2x" {
		t.Errorf("Banner() = %q, expected %q", got, "Speed 2x")
	}

	m, _ = send(t, m, runeKey('-'))
	if got := m.Coordinator().ClockInfo().Speed; got != 1 {
		t.Errorf("Speed = %v, expected 1", got)
	}
}

func TestJournalViewOpensAndCloses(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "pets.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	m, _ := newTestModel(t, store)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(t, m, runeKey('j'))

	if m.journal == nil {
		t.Fatal("journal view not opened")
	}
	if m.journal.Len() == 0 {
		t.Error("journal should list the hatch")
	}
	if !strings.Contains(m.View(), "JOURNAL") {
		t.Errorf("journal view missing title:\n%s", m.View())
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.journal != nil {
		t.Error("esc should close the journal")
	}
	if got := m.Coordinator().State(); got != state.Playing {
		t.Errorf("State() = %v, expected %v", got, state.Playing)
	}
}

func TestJournalViewWithoutStore(t *testing.T) {
	v := NewJournalView(nil, save.DefaultKey, 80, 24)
	if v.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", v.Len())
	}
	if !strings.Contains(v.View(), "Nothing recorded yet") {
		t.Errorf("empty journal missing placeholder:\n%s", v.View())
	}
}

type failingJournal struct{}

func (failingJournal) AppendJournal(string, string, string, float64) (int64, error) {
	return 0, errors.New("disk full")
}

func (failingJournal) Journal(string, int) ([]storage.JournalEntry, error) {
	return nil, errors.New("disk full")
}

func TestJournalViewShowsReadError(t *testing.T) {
	v := NewJournalView(failingJournal{}, save.DefaultKey, 80, 24)
	if !strings.Contains(v.View(), "disk full") {
		t.Errorf("journal view should show the read error:\n%s", v.View())
	}
}

func TestQuitFlushesAndStops(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := send(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
	if m.Coordinator().TimerActive(game.TimerTick) {
		t.Error("tick timer still armed after quit")
	}
	if err := m.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestSmallTerminal(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})

	if !strings.Contains(m.View(), "Terminal too small") {
		t.Errorf("expected too-small message:\n%s", m.View())
	}
}

func TestScreenBannerExpires(t *testing.T) {
	src := clock.NewManualSource(epoch)
	s := NewScreen(src.Now)

	s.Died()
	if s.Banner() == "" {
		t.Fatal("Died() should set a banner")
	}
	src.Advance(bannerDuration + time.Second)
	if got := s.Banner(); got != "" {
		t.Errorf("Banner() = %q, expected empty after expiry", got)
	}
}

func TestSchedulerDrain(t *testing.T) {
	s := NewScheduler()
	if s.Drain() != nil {
		t.Error("Drain() on empty scheduler should be nil")
	}
	s.Schedule(game.TimerHandle{Kind: game.TimerTick, Gen: 1}, time.Millisecond)
	s.Schedule(game.TimerHandle{Kind: game.TimerDisplay, Gen: 1}, time.Millisecond)
	if got := s.Pending(); got != 2 {
		t.Errorf("Pending() = %d, expected 2", got)
	}
	if s.Drain() == nil {
		t.Error("Drain() should return a batch")
	}
	if got := s.Pending(); got != 0 {
		t.Errorf("Pending() = %d after Drain, expected 0", got)
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := map[float64]string{1: "1x", 0.5: "0.5x", 2.25: "2.25x", 300: "300x"}
	for in, expected := range tests {
		if got := formatSpeed(in); got != expected {
			t.Errorf("formatSpeed(%v) = %q, expected %q", in, got, expected)
		}
	}
}
