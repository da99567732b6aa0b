package player

import "math"

// clampLevel limits a volume level to [0, 1]. NaN maps to 0.
func clampLevel(level float64) float64 {
	if math.IsNaN(level) || level < 0 {
		return 0
	}
	return min(level, 1)
}

// levelToVolume maps a 0-1 level onto effects.Volume with base 2, where
// each step of -1 halves the amplitude. Zero is reported as -10 and muted
// through Silent by the caller.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
