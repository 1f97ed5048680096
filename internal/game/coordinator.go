// Package game wires the clock, the state machine, the creature simulation
// and the save gateway into one application context.
//
// The Coordinator is not safe for concurrent use. Every call, including
// HandleTimer, must come from the single UI event loop.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tamagotchi/internal/clock"
	"github.com/vovakirdan/tui-tamagotchi/internal/config"
	"github.com/vovakirdan/tui-tamagotchi/internal/events"
	"github.com/vovakirdan/tui-tamagotchi/internal/pet"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
	"github.com/vovakirdan/tui-tamagotchi/internal/state"
)

var (
	// ErrMissingDisplay is returned by New without a Display.
	ErrMissingDisplay = errors.New("game: display is required")
	// ErrMissingScheduler is returned by New without a Scheduler.
	ErrMissingScheduler = errors.New("game: scheduler is required")
)

// ReasonNotPlaying is the feed failure reason outside the Playing state.
const ReasonNotPlaying = "not_playing"

// Deps are the collaborators injected into the Coordinator.
type Deps struct {
	Source    clock.Source   // wall time; defaults to the system clock
	Logger    *log.Logger    // defaults to a discarding logger
	Gateway   *save.Gateway  // defaults to an in-memory save
	Journal   Journal        // optional
	Display   Display        // required
	Scheduler Scheduler      // required
	Draw      func() float64 // uniform [0,1) draw for the adult type; defaults to a seeded RNG
	Seed      int64          // seed for the default draw; 0 = time based
}

// Coordinator is the application context for one save.
type Coordinator struct {
	cfg       config.Config
	src       clock.Source
	logger    *log.Logger
	gateway   *save.Gateway
	journal   Journal
	display   Display
	scheduler Scheduler

	clock   *clock.Clock
	machine *state.Machine
	sim     *pet.Simulation
	timers  Timers
	subs    []*events.Subscription

	session   save.GameState
	stats     save.Statistics
	playStart time.Time // wall time the current Playing stretch began
	canFeed   bool      // last value sent to FeedEnabledChanged
	booted    bool
	closed    bool
}

// New builds a Coordinator. Call Boot before use.
func New(cfg config.Config, deps Deps) (*Coordinator, error) {
	if deps.Display == nil {
		return nil, ErrMissingDisplay
	}
	if deps.Scheduler == nil {
		return nil, ErrMissingScheduler
	}

	src := deps.Source
	if src == nil {
		src = clock.SystemSource{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	gateway := deps.Gateway
	if gateway == nil {
		gateway = save.NewGateway(save.NewMemoryBackend(), cfg.Storage.SaveKey, cfg.Rates(), src, logger)
	}
	draw := deps.Draw
	if draw == nil {
		seed := deps.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		draw = rand.New(rand.NewSource(seed)).Float64
	}

	c := &Coordinator{
		cfg:       cfg,
		src:       src,
		logger:    logger,
		gateway:   gateway,
		journal:   deps.Journal,
		display:   deps.Display,
		scheduler: deps.Scheduler,
		session:   save.GameState{CurrentState: state.Menu},
	}
	c.clock = clock.New(src, cfg.Limits(), func(err error) {
		c.logger.Error("clock listener failed", "error", err)
	})
	c.machine = state.New(logger)
	c.sim = pet.NewSimulation(cfg.Rates(), c.clock, src, draw)
	c.subs = append(c.subs,
		c.machine.Subscribe(c.onTransition),
		c.clock.Events().Subscribe(c.onClockEvent),
	)
	return c, nil
}

// Boot loads the save and restores the last session.
// A saved Playing or ConfirmReset state resumes as Playing, Paused resumes
// as Paused and anything else stays in the Menu.
func (c *Coordinator) Boot() {
	if c.booted {
		return
	}
	c.booted = true

	data, err := c.gateway.Load()
	if err != nil {
		c.logger.Error("could not load save, starting fresh", "key", c.gateway.Key(), "error", err)
	}

	c.clock.Restore(data.Time)
	c.sim.Load(data.Tamagotchi)
	c.session = data.GameState
	c.stats = data.Statistics
	c.canFeed = c.sim.CanFeed()

	c.scheduleAutosave()
	c.refreshDisplay()

	saved := data.GameState.CurrentState
	switch saved {
	case state.Playing, state.ConfirmReset, state.Paused:
		if saved == state.ConfirmReset {
			c.logger.Info("discarding pending reset from previous session")
		}
		if err := c.machine.ChangeState(state.Playing); err != nil {
			c.logger.Error("could not restore session", "state", saved, "error", err)
			return
		}
		if saved == state.Paused {
			if err := c.machine.ChangeState(state.Paused); err != nil {
				c.logger.Error("could not restore pause", "state", saved, "error", err)
			}
		}
		c.appendJournal(JournalRestored, string(saved))
		c.logger.Info("session restored", "state", c.machine.Current(), "game_time", clock.FormatGameTime(c.clock.CurrentGameSeconds()))
	default:
		// Game time only runs while Playing.
		c.clock.Pause()
		c.session.CurrentState = state.Menu
		if _, ok := state.Parse(string(saved)); !ok {
			c.logger.Warn("unknown saved state, using menu", "state", saved)
			if err := c.gateway.SaveGameState(c.session); err != nil {
				c.logger.Error("could not save game state", "error", err)
			}
		}
	}
}

// Shutdown disarms every timer and performs a final synchronous flush.
// It is safe to call more than once.
func (c *Coordinator) Shutdown() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.timers.DisarmAll()
	err := c.Flush()
	for _, s := range c.subs {
		s.Cancel()
	}
	c.logger.Info("session closed", "key", c.gateway.Key())
	return err
}

// StartGame moves from the Menu to Playing, hatching a pet if none exists.
func (c *Coordinator) StartGame() error {
	return c.transition(state.Menu, state.Playing)
}

// PauseGame moves from Playing to Paused.
func (c *Coordinator) PauseGame() error {
	return c.transition(state.Playing, state.Paused)
}

// ResumeGame moves from Paused back to Playing.
func (c *Coordinator) ResumeGame() error {
	return c.transition(state.Paused, state.Playing)
}

// TogglePause pauses while Playing and resumes while Paused.
func (c *Coordinator) TogglePause() error {
	if c.machine.IsState(state.Paused) {
		return c.ResumeGame()
	}
	return c.PauseGame()
}

// RequestReset asks for confirmation before wiping the save.
func (c *Coordinator) RequestReset() error {
	return c.transition(state.Playing, state.ConfirmReset)
}

// ConfirmReset wipes the save and returns to the Menu.
func (c *Coordinator) ConfirmReset() error {
	return c.transition(state.ConfirmReset, state.Menu)
}

// CancelReset abandons a pending reset and goes back to play.
func (c *Coordinator) CancelReset() error {
	if cur := c.machine.Current(); cur != state.ConfirmReset {
		c.logger.Warn("action ignored", "state", cur, "target", state.Playing)
		return fmt.Errorf("%w: %s -> %s", state.ErrInvalidTransition, cur, state.Playing)
	}
	return c.machine.GoBack()
}

// ReturnToMenu leaves Playing for the Menu, keeping the pet.
func (c *Coordinator) ReturnToMenu() error {
	return c.transition(state.Playing, state.Menu)
}

// transition changes state only if the machine is currently in from.
func (c *Coordinator) transition(from, to state.State) error {
	if cur := c.machine.Current(); cur != from {
		c.logger.Warn("action ignored", "state", cur, "target", to)
		return fmt.Errorf("%w: %s -> %s", state.ErrInvalidTransition, cur, to)
	}
	return c.machine.ChangeState(to)
}

// onTransition routes accepted state changes to clock, timers and storage.
func (c *Coordinator) onTransition(tr state.Transition) {
	now := c.src.Now()

	switch {
	case tr.To == state.Playing:
		c.enterPlaying(tr.From)
	case tr.From == state.Playing:
		c.leavePlaying(now)
	}

	if tr.From == state.ConfirmReset && tr.To == state.Menu {
		c.performReset()
	} else {
		c.session.CurrentState = tr.To
		c.session.LastStateChange = clock.ToMillis(now)
		c.Flush()
	}

	c.notify(func(d Display) { d.StateChanged(tr.From, tr.To) })
}

func (c *Coordinator) enterPlaying(from state.State) {
	if from == state.Menu && !c.session.HasPlayedBefore {
		c.hatch()
	}

	if !c.clock.IsStarted() {
		c.clock.Start()
	} else {
		c.clock.Resume()
	}

	c.playStart = c.src.Now()
	c.sim.Prime()
	c.Tick()

	c.scheduleTick()
	c.scheduleDisplay()
}

func (c *Coordinator) leavePlaying(now time.Time) {
	c.timers.Disarm(TimerTick)
	c.timers.Disarm(TimerDisplay)
	c.clock.Pause()
	c.foldPlayTime(now)
	c.playStart = time.Time{}
}

// hatch starts a brand-new game.
func (c *Coordinator) hatch() {
	if c.clock.IsStarted() {
		c.clock.Reset()
	}
	r := c.sim.Hatch()
	c.session.HasPlayedBefore = true
	c.stats.GamesPlayed++
	c.appendJournal(JournalHatched, "")
	c.logger.Info("new pet hatched", "coins", r.Coins, "games_played", c.stats.GamesPlayed)
}

// performReset wipes the save after a confirmed reset.
func (c *Coordinator) performReset() {
	c.timers.Disarm(TimerTick)
	c.timers.Disarm(TimerDisplay)

	if err := c.gateway.ResetToDefaults(); err != nil {
		c.logger.Error("could not wipe save", "key", c.gateway.Key(), "error", err)
	}
	data := c.gateway.Data()
	c.machine.Reset()
	c.clock.Reset()
	c.sim.Load(data.Tamagotchi)
	c.session = data.GameState
	c.stats = data.Statistics
	c.appendJournal(JournalReset, "")
	c.logger.Info("game reset", "key", c.gateway.Key())
	c.refreshDisplay()
}

// HandleTimer runs the work for a delivered timer handle and re-schedules it.
// Stale handles are ignored.
func (c *Coordinator) HandleTimer(h TimerHandle) {
	if !c.timers.Live(h) {
		return
	}

	switch h.Kind {
	case TimerTick:
		c.Tick()
		c.scheduler.Schedule(h, c.cfg.Loop.Tick)
	case TimerDisplay:
		info := c.clock.Info()
		c.notify(func(d Display) { d.UpdateTime(info) })
		c.scheduler.Schedule(h, c.cfg.Loop.Display)
	case TimerAutosave:
		c.Flush()
		c.scheduler.Schedule(h, c.cfg.Loop.Autosave)
	}
}

func (c *Coordinator) scheduleTick() {
	c.scheduler.Schedule(c.timers.Arm(TimerTick), c.cfg.Loop.Tick)
}

func (c *Coordinator) scheduleDisplay() {
	c.scheduler.Schedule(c.timers.Arm(TimerDisplay), c.cfg.Loop.Display)
}

func (c *Coordinator) scheduleAutosave() {
	c.scheduler.Schedule(c.timers.Arm(TimerAutosave), c.cfg.Loop.Autosave)
}

// TimerActive reports whether a timer of kind is armed.
func (c *Coordinator) TimerActive(kind TimerKind) bool {
	return c.timers.Active(kind)
}

// Tick runs one simulation step. It does nothing outside Playing.
func (c *Coordinator) Tick() pet.TickResult {
	if !c.machine.IsState(state.Playing) {
		return pet.TickResult{StepResult: pet.StepResult{Record: c.sim.Record()}}
	}

	res := c.sim.Tick()
	r := res.Record

	if res.CoinsEarned > 0 {
		c.stats.CoinsEarned += res.CoinsEarned
	}
	if res.Evolved {
		c.stats.Evolutions++
		c.appendJournal(JournalEvolved, evolutionDetail(r))
		c.logger.Info("pet evolved", "stage", r.EvolutionStage, "adult", r.AdultType)
		c.notify(func(d Display) { d.EvolutionOccurred(r.EvolutionStage, r.AdultType) })
	}
	if res.Died {
		c.stats.Deaths++
		c.appendJournal(JournalDied, string(r.EvolutionStage))
		c.logger.Info("pet died", "stage", r.EvolutionStage, "game_time", clock.FormatGameTime(c.clock.CurrentGameSeconds()))
		c.notify(func(d Display) { d.Died() })
	}

	if err := c.persistTick(r); err != nil {
		c.logger.Error("could not save pet", "error", err)
	}
	c.logger.Debug("tick", "hunger", r.Hunger, "life", r.Life, "coins", r.Coins, "primed", res.Primed)

	c.refreshStats()
	return res
}

// FeedPet spends coins to restore hunger.
func (c *Coordinator) FeedPet() pet.FeedResult {
	if !c.machine.IsState(state.Playing) {
		r := c.sim.Record()
		c.logger.Warn("feed rejected", "reason", ReasonNotPlaying, "state", c.machine.Current())
		return pet.FeedResult{
			Reason:    ReasonNotPlaying,
			OldHunger: r.Hunger,
			NewHunger: r.Hunger,
			OldCoins:  r.Coins,
			NewCoins:  r.Coins,
		}
	}

	res := c.sim.Feed()
	if !res.Success {
		c.logger.Warn("feed rejected", "reason", res.Reason, "coins", res.OldCoins)
		c.refreshStats()
		return res
	}

	c.stats.FeedCount++
	c.appendJournal(JournalFed, fmt.Sprintf("hunger %.0f -> %.0f", res.OldHunger, res.NewHunger))
	if err := c.gateway.SaveCreature(c.sim.Record()); err != nil {
		c.logger.Error("could not save pet", "error", err)
	}
	if err := c.gateway.SaveStatistics(c.stats); err != nil {
		c.logger.Error("could not save statistics", "error", err)
	}
	c.refreshStats()
	return res
}

// AddCoins credits n coins. It returns false for n <= 0.
func (c *Coordinator) AddCoins(n int) bool {
	if !c.sim.AddCoins(n) {
		c.logger.Warn("add coins rejected", "amount", n)
		return false
	}
	c.stats.CoinsEarned += n
	c.saveCreature()
	c.refreshStats()
	return true
}

// SpendCoins debits n coins. It refuses non-positive or unaffordable amounts.
func (c *Coordinator) SpendCoins(n int) bool {
	if !c.sim.SpendCoins(n) {
		c.logger.Warn("spend coins rejected", "amount", n, "coins", c.sim.Record().Coins)
		return false
	}
	c.saveCreature()
	c.refreshStats()
	return true
}

// SetTimeSpeed changes the game speed, clamping to the configured range,
// and returns the applied multiplier.
func (c *Coordinator) SetTimeSpeed(v float64) float64 {
	applied := c.clock.SetSpeed(v)
	if applied != v {
		c.logger.Warn("speed clamped", "requested", v, "applied", applied)
	}
	if err := c.gateway.SaveTime(c.clock.Snapshot()); err != nil {
		c.logger.Error("could not save clock", "error", err)
	}
	info := c.clock.Info()
	c.notify(func(d Display) { d.UpdateTime(info) })
	return applied
}

// CycleSpeed steps to the next (up) or previous speed preset.
func (c *Coordinator) CycleSpeed(up bool) float64 {
	presets := c.cfg.Time.Presets
	next := config.PrevPreset(presets, c.clock.Speed())
	if up {
		next = config.NextPreset(presets, c.clock.Speed())
	}
	return c.SetTimeSpeed(next)
}

// onClockEvent journals speed changes.
func (c *Coordinator) onClockEvent(e clock.Event) {
	if e.Kind == clock.EventSpeedChanged {
		c.appendJournal(JournalSpeed, fmt.Sprintf("%gx", e.Speed))
	}
	c.logger.Debug("clock event", "kind", e.Kind, "speed", c.clock.Speed())
}

// Flush writes the whole save synchronously.
func (c *Coordinator) Flush() error {
	c.foldPlayTime(c.src.Now())
	err := c.gateway.Save(save.Data{
		Tamagotchi: c.sim.Record(),
		Time:       c.clock.Snapshot(),
		GameState:  c.session,
		Statistics: c.stats,
		Metadata:   c.gateway.Data().Metadata,
	})
	if err != nil {
		c.logger.Error("could not flush save", "key", c.gateway.Key(), "error", err)
	}
	return err
}

// tickStats is the part of the record a steady tick changes.
type tickStats struct {
	Hunger float64 `json:"hunger"`
	Life   float64 `json:"life"`
	Coins  int     `json:"coins"`
}

// persistTick writes only hunger, life and coins when nothing else in the
// record moved, and the whole record after evolution, death or coin income.
func (c *Coordinator) persistTick(r pet.Record) error {
	stored := c.gateway.Data().Tamagotchi
	stored.Hunger, stored.Life, stored.Coins = r.Hunger, r.Life, r.Coins
	if stored != r {
		return c.gateway.SaveCreature(r)
	}
	return c.gateway.UpdateCategory(save.CategoryTamagotchi, tickStats{Hunger: r.Hunger, Life: r.Life, Coins: r.Coins})
}

func (c *Coordinator) saveCreature() {
	if err := c.gateway.SaveCreature(c.sim.Record()); err != nil {
		c.logger.Error("could not save pet", "error", err)
	}
}

// foldPlayTime adds the running Playing stretch to the statistics.
func (c *Coordinator) foldPlayTime(now time.Time) {
	if c.playStart.IsZero() {
		return
	}
	if d := now.Sub(c.playStart); d > 0 {
		c.stats.TotalPlaySeconds += d.Seconds()
	}
	c.playStart = now
}

func (c *Coordinator) appendJournal(kind, detail string) {
	if c.journal == nil {
		return
	}
	secs := c.clock.CurrentGameSeconds()
	if _, err := c.journal.AppendJournal(c.gateway.Key(), kind, detail, secs); err != nil {
		c.logger.Error("could not append journal", "kind", kind, "error", err)
	}
}

// refreshDisplay pushes every display value.
func (c *Coordinator) refreshDisplay() {
	c.refreshStats()
	info := c.clock.Info()
	c.notify(func(d Display) { d.UpdateTime(info) })
	c.notify(func(d Display) { d.FeedEnabledChanged(c.canFeed) })
}

// refreshStats pushes creature stats and any change in feed availability.
func (c *Coordinator) refreshStats() {
	r := c.sim.Record()
	c.notify(func(d Display) { d.UpdateStats(r.Hunger, r.Life, r.Coins) })

	if can := c.sim.CanFeed(); can != c.canFeed {
		c.canFeed = can
		c.notify(func(d Display) { d.FeedEnabledChanged(can) })
	}
}

// notify calls the display, logging instead of propagating a panic.
func (c *Coordinator) notify(fn func(Display)) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("display callback failed", "panic", r)
		}
	}()
	fn(c.display)
}

func evolutionDetail(r pet.Record) string {
	if r.AdultType != pet.AdultNone {
		return fmt.Sprintf("%s (%s)", r.EvolutionStage, r.AdultType.Title())
	}
	return string(r.EvolutionStage)
}

// State returns the current game phase.
func (c *Coordinator) State() state.State {
	return c.machine.Current()
}

// Record returns the creature record.
func (c *Coordinator) Record() pet.Record {
	return c.sim.Record()
}

// ClockInfo returns the time display values.
func (c *Coordinator) ClockInfo() clock.Info {
	return c.clock.Info()
}

// Statistics returns the lifetime counters including the running play stretch.
func (c *Coordinator) Statistics() save.Statistics {
	st := c.stats
	if !c.playStart.IsZero() {
		if d := c.src.Now().Sub(c.playStart); d > 0 {
			st.TotalPlaySeconds += d.Seconds()
		}
	}
	return st
}

// CanFeed reports whether feeding would currently succeed on coins alone.
func (c *Coordinator) CanFeed() bool {
	return c.sim.CanFeed()
}

// HasPlayedBefore reports whether a pet exists in this save.
func (c *Coordinator) HasPlayedBefore() bool {
	return c.session.HasPlayedBefore
}

// Presets returns the speed presets.
func (c *Coordinator) Presets() []float64 {
	return c.cfg.Time.Presets
}

// SaveKey returns the save identifier.
func (c *Coordinator) SaveKey() string {
	return c.gateway.Key()
}
