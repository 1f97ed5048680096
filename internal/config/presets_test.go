package config

import "testing"

func TestPresetStepping(t *testing.T) {
	presets := []float64{1, 2, 4, 8, 16, 300}

	tests := []struct {
		current float64
		next    float64
		prev    float64
	}{
		{1, 2, 300},
		{4, 8, 2},
		{300, 1, 16},
		{3, 4, 2},     // between presets
		{0.5, 1, 300}, // below all
	}

	for _, tt := range tests {
		if got := NextPreset(presets, tt.current); got != tt.next {
			t.Errorf("NextPreset(%v) = %v, expected %v", tt.current, got, tt.next)
		}
		if got := PrevPreset(presets, tt.current); got != tt.prev {
			t.Errorf("PrevPreset(%v) = %v, expected %v", tt.current, got, tt.prev)
		}
	}

	if got := NextPreset(nil, 3); got != 3 {
		t.Errorf("NextPreset(nil) = %v, expected unchanged", got)
	}
	if PresetIndex(presets, 16) != 4 || PresetIndex(presets, 3) != -1 {
		t.Error("PresetIndex() mismatch")
	}
}
