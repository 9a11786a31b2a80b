package sph

import "math"

// Poly6 is the standard SPH density estimation kernel
//
//	W(r) = 315/(64π h⁹) · (h² − r²)³   for r < h, else 0
//
// with the normalization and powers of h precomputed at construction.
type Poly6 struct {
	h    float64
	h2   float64
	norm float64
}

func NewPoly6(h float64) Poly6 {
	h2 := h * h
	h9 := h2 * h2 * h2 * h2 * h
	return Poly6{
		h:    h,
		h2:   h2,
		norm: 315.0 / (64.0 * math.Pi * h9),
	}
}

func (k Poly6) Radius() float64 { return k.h }

// W evaluates the kernel at distance r.
func (k Poly6) W(r float64) float64 {
	return k.W2(r * r)
}

// W2 evaluates the kernel from a squared distance, saving the sqrt in the
// density pass. The result is clamped at zero: float evaluation can dip
// slightly negative when r is within an ulp of h, and a negative weight
// must never leak into a density sum. Support is exactly [0, h).
func (k Poly6) W2(r2 float64) float64 {
	if r2 >= k.h2 {
		return 0
	}
	d := k.h2 - r2
	w := k.norm * d * d * d
	if w < 0 {
		return 0
	}
	return w
}
