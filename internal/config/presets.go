package config

import "math"

// NextPreset returns the smallest preset above current, wrapping to the first.
func NextPreset(presets []float64, current float64) float64 {
	if len(presets) == 0 {
		return current
	}
	for _, p := range presets {
		if p > current+1e-9 {
			return p
		}
	}
	return presets[0]
}

// PrevPreset returns the largest preset below current, wrapping to the last.
func PrevPreset(presets []float64, current float64) float64 {
	if len(presets) == 0 {
		return current
	}
	for i := len(presets) - 1; i >= 0; i-- {
		if presets[i] < current-1e-9 {
			return presets[i]
		}
	}
	return presets[len(presets)-1]
}

// PresetIndex returns the index of the preset equal to current, or -1.
func PresetIndex(presets []float64, current float64) int {
	for i, p := range presets {
		if math.Abs(p-current) < 1e-9 {
			return i
		}
	}
	return -1
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
