package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
	if r.Right() != 30 || r.Bottom() != 25 {
		t.Errorf("edges = (%d, %d), expected (30, 25)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
	if ClampF(1.5, 0, 1) != 1 || ClampF(-0.5, 0, 1) != 0 {
		t.Error("ClampF should clamp to [0, 1]")
	}
}

func TestLerpAndHeat(t *testing.T) {
	if got := Lerp(1, 1.5, 0.5); got != 1.25 {
		t.Errorf("Lerp(1, 1.5, 0.5) = %g, expected 1.25", got)
	}
	if Heat(0) != HeatRamp[0] {
		t.Errorf("Heat(0) = %v, expected coldest color", Heat(0))
	}
	if Heat(1) != HeatRamp[len(HeatRamp)-1] || Heat(7) != HeatRamp[len(HeatRamp)-1] {
		t.Error("Heat(1) and above should be the hottest color")
	}
}

func TestInputDirection(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionUp)
	f.Set(ActionDown)

	dx, dy := f.Direction()
	if dx != -1 || dy != 0 {
		t.Errorf("Direction() = (%g, %g), expected (-1, 0)", dx, dy)
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should drop all actions")
	}
	if ActionWave.String() != "Wave" {
		t.Errorf("ActionWave.String() = %q", ActionWave.String())
	}
}
