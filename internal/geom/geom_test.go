package geom

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if dot := a.Dot(b); dot != 32 {
		t.Errorf("Dot failed: got %v", dot)
	}
}

func TestVec3_Len(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected float64
	}{
		{Vec3{3, 4, 0}, 5},
		{Vec3{1, 0, 0}, 1},
		{Vec3{0, 0, 0}, 0},
		{Vec3{2, 3, 6}, 7},
	}

	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.LenSq(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("LenSq(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		valid bool
	}{
		{"zero", Vec3{}, true},
		{"normal", Vec3{1, -2, 3}, true},
		{"NaN x", Vec3{math.NaN(), 0, 0}, false},
		{"+Inf y", Vec3{0, math.Inf(1), 0}, false},
		{"-Inf z", Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestBox_Valid(t *testing.T) {
	tests := []struct {
		name  string
		box   Box
		valid bool
	}{
		{"unit cube", Box{Vec3{0, 0, 0}, Vec3{1, 1, 1}}, true},
		{"negative corner", Box{Vec3{-1, -1, -1}, Vec3{1, 1, 1}}, true},
		{"inverted x", Box{Vec3{1, 0, 0}, Vec3{0, 1, 1}}, false},
		{"empty y", Box{Vec3{0, 1, 0}, Vec3{1, 1, 1}}, false},
		{"NaN corner", Box{Vec3{math.NaN(), 0, 0}, Vec3{1, 1, 1}}, false},
		{"infinite corner", Box{Vec3{0, 0, 0}, Vec3{math.Inf(1), 1, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestBox_ContainsClamp(t *testing.T) {
	box := Box{Vec3{0, 0, 0}, Vec3{2, 2, 2}}

	if !box.Contains(Vec3{1, 1, 1}) {
		t.Error("interior point should be contained")
	}
	if !box.Contains(Vec3{0, 2, 1}) {
		t.Error("face point should be contained")
	}
	if box.Contains(Vec3{3, 1, 1}) {
		t.Error("exterior point should not be contained")
	}

	clamped := box.Clamp(Vec3{-1, 3, 1})
	if clamped != (Vec3{0, 2, 1}) {
		t.Errorf("Clamp failed: got %v", clamped)
	}
	if !box.Contains(clamped) {
		t.Error("clamped point must be contained")
	}
}

func TestBox_Size(t *testing.T) {
	box := Box{Vec3{-1, 0, 2}, Vec3{1, 3, 5}}
	if got := box.Size(); got != (Vec3{2, 3, 3}) {
		t.Errorf("Size() = %v, want {2 3 3}", got)
	}
}
