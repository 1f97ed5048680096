package tui

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tamagotchi/internal/config"
	"github.com/vovakirdan/tui-tamagotchi/internal/save"
)

type closeCounter struct {
	calls int
	err   error
}

func (c *closeCounter) Close() error {
	c.calls++
	return c.err
}

func newLockServer() *SSHServer {
	return &SSHServer{
		config: NewSSHServerConfig(config.DefaultConfig()),
		logger: log.New(io.Discard),
		active: make(map[string]io.Closer),
	}
}

func TestClaimRefusesDuplicateUser(t *testing.T) {
	s := newLockServer()

	if !s.claim("alice") {
		t.Fatal("first claim should succeed")
	}
	if s.claim("alice") {
		t.Error("second claim for the same user should fail")
	}
	if !s.claim("bob") {
		t.Error("other users should not be blocked")
	}
	if got := s.ActiveSessions(); got != 2 {
		t.Errorf("ActiveSessions() = %d, expected 2", got)
	}
}

func TestReleaseClosesAttachedSession(t *testing.T) {
	s := newLockServer()
	c := &closeCounter{err: errors.New("flush failed")}

	s.claim("alice")
	s.attach("alice", c)
	s.release("alice")

	if c.calls != 1 {
		t.Errorf("Close() called %d times, expected 1", c.calls)
	}
	if !s.claim("alice") {
		t.Error("user should be claimable again after release")
	}
}

func TestAttachWithoutClaimIsIgnored(t *testing.T) {
	s := newLockServer()
	c := &closeCounter{}

	s.attach("ghost", c)
	s.release("ghost")

	if c.calls != 0 {
		t.Errorf("Close() called %d times, expected 0", c.calls)
	}
}

func TestSessionOptionsScopeSaveToUser(t *testing.T) {
	s := newLockServer()

	opts := s.sessionOptions("alice", 90, 30)
	if got, want := opts.Gateway.Key(), save.KeyFor(save.DefaultKey, "alice"); got != want {
		t.Errorf("Gateway.Key() = %q, expected %q", got, want)
	}
	if opts.Journal != nil {
		t.Error("Journal should be nil without a store")
	}
	if opts.Runtime.User != "alice" || opts.Runtime.ScreenW != 90 {
		t.Errorf("Runtime = %+v, expected user alice at width 90", opts.Runtime)
	}
}
