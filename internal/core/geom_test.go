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
}

func TestRectCentered(t *testing.T) {
	outer := NewRect(0, 0, 80, 24)

	got := outer.Centered(30, 6)
	if got != NewRect(25, 9, 30, 6) {
		t.Errorf("Centered(30, 6) = %+v", got)
	}
	if got.Right() != 55 || got.Bottom() != 15 {
		t.Errorf("Right() = %d, Bottom() = %d, expected 55 and 15", got.Right(), got.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{2, 0, 4, 2},
		{-1, 0, 4, 0},
		{5, 0, 4, 4},
		{4, 0, 4, 4},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}
