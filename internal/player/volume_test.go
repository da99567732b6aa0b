package player

import (
	"math"
	"testing"
)

func TestClampLevel(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.4, 0.4},
		{1, 1},
		{3, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := clampLevel(tt.in); got != tt.want {
			t.Errorf("clampLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelToVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, -10},
		{-0.5, -10},
		{0.25, -2},
		{0.5, -1},
		{1, 0},
		{2, 0},
	}
	for _, tt := range tests {
		if got := levelToVolume(tt.in); got != tt.want {
			t.Errorf("levelToVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
