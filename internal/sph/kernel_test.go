package sph

import (
	"math"
	"testing"
)

func TestPoly6_NonNegative(t *testing.T) {
	k := NewPoly6(DefaultSmoothingRadius)
	h := k.Radius()

	for i := 0; i <= 1000; i++ {
		r := h * float64(i) / 1000
		if w := k.W(r); w < 0 {
			t.Fatalf("W(%v) = %v, kernel must be non-negative on [0, h]", r, w)
		}
	}
}

func TestPoly6_SupportBoundary(t *testing.T) {
	k := NewPoly6(0.1)

	if w := k.W(0.1); w != 0 {
		t.Errorf("W(h) = %v, want exactly 0", w)
	}
	if w := k.W(0.1 + 1e-15); w != 0 {
		t.Errorf("W just beyond h = %v, want exactly 0", w)
	}
	for _, r := range []float64{0.11, 0.5, 1, 100} {
		if w := k.W(r); w != 0 {
			t.Errorf("W(%v) = %v, want exactly 0 outside support", r, w)
		}
	}
}

func TestPoly6_PeakAtZero(t *testing.T) {
	k := NewPoly6(0.1)

	peak := k.W(0)
	expected := 315.0 / (64.0 * math.Pi * math.Pow(0.1, 9)) * math.Pow(0.1*0.1, 3)
	if math.Abs(peak-expected) > expected*1e-12 {
		t.Errorf("W(0) = %v, want %v", peak, expected)
	}

	prev := peak
	for i := 1; i <= 10; i++ {
		r := 0.1 * float64(i) / 10
		w := k.W(r)
		if w > prev {
			t.Errorf("kernel not monotone decreasing at r=%v: %v > %v", r, w, prev)
		}
		prev = w
	}
}

func TestPoly6_W2MatchesW(t *testing.T) {
	k := NewPoly6(0.25)
	for _, r := range []float64{0, 0.01, 0.1, 0.2, 0.24, 0.25, 0.3} {
		if w, w2 := k.W(r), k.W2(r*r); w != w2 {
			t.Errorf("W(%v) = %v but W2(r²) = %v", r, w, w2)
		}
	}
}
