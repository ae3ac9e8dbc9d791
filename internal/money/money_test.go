package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{0.125, 0.13}, // half rounds away from zero
		{-0.125, -0.13},
		{0.005, 0.01},
		{-0.005, -0.01},
		{10.0, 10.0},
		{0.0, 0.0},
		{89.999, 90.0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	tests := []struct {
		a, b float64
		want bool
	}{
		{100.0, 100.0, true},
		{100.0, 100.01, true},  // exactly at tolerance
		{100.0, 100.02, false}, // beyond tolerance
		{89.99, 90.0, true},
		{33.34 + 33.33 + 33.33, 100.0, true},
		{0.1 + 0.2, 0.3, true}, // classic float drift
	}
	for _, tt := range tests {
		if got := ApproxEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("ApproxEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.005) || !IsZero(-0.005) {
		t.Error("values within epsilon should be zero")
	}
	if IsZero(0.02) {
		t.Error("0.02 is outside epsilon")
	}
}
