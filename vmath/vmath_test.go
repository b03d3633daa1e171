package vmath

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"In range", 5, 0, 10, 5},
		{"Below", -3, 0, 10, 0},
		{"Above", 15, 0, 10, 10},
		{"At lower bound", 0, 0, 10, 0},
		{"At upper bound", 10, 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestMaxAbs(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{3, 4, 4},
		{-5, 4, 5},
		{-2, -7, 7},
		{0, 0, 0},
	}

	for _, tt := range tests {
		if got := MaxAbs(tt.a, tt.b); got != tt.want {
			t.Errorf("MaxAbs(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestApproxEqual(t *testing.T) {
	if !ApproxEqual(1.0, 1.0+1e-12, 1e-9) {
		t.Error("values within epsilon reported unequal")
	}
	if ApproxEqual(1.0, 1.1, 1e-9) {
		t.Error("distant values reported equal")
	}
}
