package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionFeed, "Feed"},
		{ActionConfirm, "Confirm"},
		{ActionSpeedDown, "SpeedDown"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tt.action, got, tt.want)
		}
	}
}

func TestRuntimeConfigFits(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Fits() {
		t.Errorf("DefaultConfig() %dx%d should fit", cfg.ScreenW, cfg.ScreenH)
	}
	cfg.ScreenW = MinScreenW - 1
	if cfg.Fits() {
		t.Error("narrow screen should not fit")
	}
}
