package util

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{1.234, 2, 1.23},
		{1.235, 2, 1.24},
		{-1.235, 2, -1.24},
		{97.96, 1, 98.0},
		{0, 2, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in, tt.places); got != tt.want {
			t.Fatalf("Round(%v, %d) = %v, want %v", tt.in, tt.places, got, tt.want)
		}
	}
}

func TestRoundKeepsNaN(t *testing.T) {
	if !math.IsNaN(Round(math.NaN(), 2)) {
		t.Fatalf("expected NaN")
	}
	if !math.IsInf(Round2(math.Inf(1)), 1) {
		t.Fatalf("expected +Inf")
	}
}
