// Package state implements the game phase state machine.
package state

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tamagotchi/internal/events"
)

// State is a game phase.
type State string

const (
	Menu         State = "MENU"
	Playing      State = "PLAYING"
	Paused       State = "PAUSED"
	ConfirmReset State = "CONFIRM_RESET"
)

// ErrInvalidTransition is returned when a move is not in the transition table.
var ErrInvalidTransition = errors.New("state: invalid transition")

// transitions is the adjacency list of legal moves.
var transitions = map[State][]State{
	Menu:         {Playing},
	Playing:      {Menu, Paused, ConfirmReset},
	Paused:       {Playing},
	ConfirmReset: {Playing, Menu},
}

// Parse converts a persisted name into a State. Unknown names yield Menu, false.
func Parse(s string) (State, bool) {
	st := State(s)
	if _, ok := transitions[st]; ok {
		return st, true
	}
	return Menu, false
}

// Transition describes an accepted state change.
type Transition struct {
	From State
	To   State
}

// Machine holds the current phase. It is not safe for concurrent use;
// all calls come from the single game loop.
type Machine struct {
	current  State
	previous State
	hasPrev  bool
	bus      *events.Bus[Transition]
	logger   *log.Logger
}

// New creates a machine in the Menu state.
func New(logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Machine{
		current: Menu,
		logger:  logger,
	}
	m.bus = events.NewBus[Transition](func(err error) {
		m.logger.Error("state listener failed", "error", err)
	})
	return m
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Previous returns the state before the last accepted transition.
func (m *Machine) Previous() (State, bool) {
	return m.previous, m.hasPrev
}

// IsState reports whether the machine is in s.
func (m *Machine) IsState(s State) bool {
	return m.current == s
}

// CanTransition reports whether moving to target is legal from the current state.
func (m *Machine) CanTransition(target State) bool {
	for _, s := range transitions[m.current] {
		if s == target {
			return true
		}
	}
	return false
}

// Subscribe registers a listener for accepted transitions.
// Listeners run synchronously in registration order.
func (m *Machine) Subscribe(fn func(Transition)) *events.Subscription {
	return m.bus.Subscribe(fn)
}

// ChangeState moves to target if the transition table allows it.
func (m *Machine) ChangeState(target State) error {
	if !m.CanTransition(target) {
		m.logger.Warn("invalid state transition", "from", m.current, "to", target)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, target)
	}

	from := m.current
	m.previous = from
	m.hasPrev = true
	m.current = target

	m.logger.Info("state changed", "from", from, "to", target)
	m.bus.Publish(Transition{From: from, To: target})
	return nil
}

// GoBack returns to the previous state when that move is legal.
func (m *Machine) GoBack() error {
	if !m.hasPrev {
		return fmt.Errorf("%w: no previous state", ErrInvalidTransition)
	}
	return m.ChangeState(m.previous)
}

// Reset forces the machine back to Menu, bypassing the transition table.
// Listeners are not notified.
func (m *Machine) Reset() {
	m.current = Menu
	m.previous = ""
	m.hasPrev = false
	m.logger.Info("state reset")
}
