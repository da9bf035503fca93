package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewRectF(0, 0, 3, 4),
			b:        NewRectF(2, 3, 3, 3),
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        NewRectF(0, 0, 3, 4),
			b:        NewRectF(5, 0, 3, 3),
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        NewRectF(0, 0, 3, 4),
			b:        NewRectF(0, 10, 3, 3),
			expected: false,
		},
		{
			name:     "touching edges do not overlap",
			a:        NewRectF(0, 0, 3, 4),
			b:        NewRectF(3, 0, 3, 4),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewRectF(0, 0, 20, 20),
			b:        NewRectF(5, 5, 1, 1),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRectF(0, 51, 3, 4),
			b:        NewRectF(2.99, 52, 3, 3),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() is not symmetric: got %v", got)
			}
		})
	}
}

func TestNear(t *testing.T) {
	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"centre", 5, 50, true},
		{"inside both extents", 9.9, 59.9, true},
		{"on x boundary", 10, 50, false},
		{"on y boundary", 5, 40, false},
		{"far away", 80, 10, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Near(tc.x, tc.y, 5, 50, 5, 10); got != tc.expected {
				t.Errorf("Near(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectFScale(t *testing.T) {
	r := NewRectF(10, 20, 0.2, 5).Scale(0.5, 0.5)
	if r.X != 5 || r.Y != 10 {
		t.Errorf("Scale position = (%d, %d), expected (5, 10)", r.X, r.Y)
	}
	if r.W != 1 {
		t.Errorf("Scale should keep at least one cell wide, got %d", r.W)
	}
	if r.H != 3 {
		t.Errorf("Scale height = %d, expected 3", r.H)
	}
}

func TestClampF(t *testing.T) {
	if ClampF(-5, 0, 100) != 0 {
		t.Error("ClampF should clamp to min")
	}
	if ClampF(150, 0, 100) != 100 {
		t.Error("ClampF should clamp to max")
	}
	if ClampF(42.5, 0, 100) != 42.5 {
		t.Error("ClampF should keep values in range")
	}
}
