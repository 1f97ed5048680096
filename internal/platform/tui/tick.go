// Package tui provides the Bubble Tea front end for the tamagotchi: the
// pet screen, key bindings, the journal view and the Wish SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tamagotchi/internal/game"
)

// TimerMsg delivers a coordinator timer handle back to the model.
type TimerMsg struct {
	Handle game.TimerHandle
}

// Scheduler turns coordinator timer requests into tea.Tick commands.
// Requests made during one Update are collected and returned by Drain.
type Scheduler struct {
	pending []tea.Cmd
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule queues a tick that delivers h after the delay.
func (s *Scheduler) Schedule(h game.TimerHandle, after time.Duration) {
	s.pending = append(s.pending, tickCmd(h, after))
}

// Drain returns the queued commands as one batch and clears the queue.
func (s *Scheduler) Drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Pending returns the number of queued commands.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// tickCmd returns a Bubble Tea command that sends h after the interval.
func tickCmd(h game.TimerHandle, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TimerMsg{Handle: h}
	})
}
