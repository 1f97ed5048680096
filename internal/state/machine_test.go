package state

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestMachine() *Machine {
	return New(log.New(io.Discard))
}

func TestStartsInMenu(t *testing.T) {
	m := newTestMachine()
	if !m.IsState(Menu) {
		t.Errorf("initial state = %s, expected MENU", m.Current())
	}
	if _, ok := m.Previous(); ok {
		t.Error("new machine should have no previous state")
	}
}

func TestTransitionTable(t *testing.T) {
	all := []State{Menu, Playing, Paused, ConfirmReset}
	legal := map[State]map[State]bool{
		Menu:         {Playing: true},
		Playing:      {Menu: true, Paused: true, ConfirmReset: true},
		Paused:       {Playing: true},
		ConfirmReset: {Playing: true, Menu: true},
	}

	for _, from := range all {
		for _, to := range all {
			m := newTestMachine()
			m.current = from

			err := m.ChangeState(to)
			if legal[from][to] {
				if err != nil {
					t.Errorf("%s -> %s should be legal, got %v", from, to, err)
				}
				if m.Current() != to {
					t.Errorf("%s -> %s: current = %s", from, to, m.Current())
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s -> %s should be rejected, got %v", from, to, err)
			}
			if m.Current() != from {
				t.Errorf("rejected %s -> %s changed state to %s", from, to, m.Current())
			}
		}
	}
}

func TestMenuToPausedRejected(t *testing.T) {
	m := newTestMachine()

	notified := false
	m.Subscribe(func(Transition) { notified = true })

	if err := m.ChangeState(Paused); err == nil {
		t.Fatal("MENU -> PAUSED should be rejected")
	}
	if !m.IsState(Menu) {
		t.Errorf("state after rejection = %s, expected MENU", m.Current())
	}
	if notified {
		t.Error("rejected transition must not notify listeners")
	}

	if err := m.ChangeState(Playing); err != nil {
		t.Fatalf("MENU -> PLAYING failed: %v", err)
	}
	if !notified {
		t.Error("accepted transition should notify listeners")
	}
}

func TestListenersReceiveOldAndNew(t *testing.T) {
	m := newTestMachine()

	var got []Transition
	var order []int
	m.Subscribe(func(tr Transition) {
		got = append(got, tr)
		order = append(order, 1)
	})
	m.Subscribe(func(Transition) { order = append(order, 2) })

	m.ChangeState(Playing)
	m.ChangeState(Paused)

	want := []Transition{{Menu, Playing}, {Playing, Paused}}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
	if len(order) != 4 || order[0] != 1 || order[1] != 2 {
		t.Errorf("listener order = %v, expected registration order", order)
	}
}

func TestPanickingListenerDoesNotAbortTransition(t *testing.T) {
	m := newTestMachine()

	second := false
	m.Subscribe(func(Transition) { panic("listener failure") })
	m.Subscribe(func(Transition) { second = true })

	if err := m.ChangeState(Playing); err != nil {
		t.Fatalf("ChangeState failed: %v", err)
	}
	if !m.IsState(Playing) {
		t.Error("transition should complete despite listener panic")
	}
	if !second {
		t.Error("remaining listeners should still run")
	}
}

func TestUnsubscribe(t *testing.T) {
	m := newTestMachine()

	calls := 0
	sub := m.Subscribe(func(Transition) { calls++ })
	m.ChangeState(Playing)
	sub.Cancel()
	m.ChangeState(Paused)

	if calls != 1 {
		t.Errorf("calls = %d, expected 1", calls)
	}
}

func TestGoBack(t *testing.T) {
	m := newTestMachine()

	if err := m.GoBack(); err == nil {
		t.Error("GoBack() with no history should fail")
	}

	m.ChangeState(Playing)
	m.ChangeState(Paused)
	if err := m.GoBack(); err != nil {
		t.Fatalf("GoBack() failed: %v", err)
	}
	if !m.IsState(Playing) {
		t.Errorf("after GoBack state = %s, expected PLAYING", m.Current())
	}
}

func TestResetBypassesTable(t *testing.T) {
	m := newTestMachine()
	m.ChangeState(Playing)
	m.ChangeState(Paused)

	notified := false
	m.Subscribe(func(Transition) { notified = true })

	m.Reset()
	if !m.IsState(Menu) {
		t.Errorf("after Reset state = %s, expected MENU", m.Current())
	}
	if notified {
		t.Error("Reset should not notify listeners")
	}
	if _, ok := m.Previous(); ok {
		t.Error("Reset should clear previous state")
	}
}

func TestParse(t *testing.T) {
	if s, ok := Parse("PAUSED"); !ok || s != Paused {
		t.Errorf("Parse(PAUSED) = %s, %v", s, ok)
	}
	if s, ok := Parse("bogus"); ok || s != Menu {
		t.Errorf("Parse(bogus) = %s, %v, expected MENU, false", s, ok)
	}
}
