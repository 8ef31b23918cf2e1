package geom

import (
	"math"
	"testing"
)

func TestVec2Ops(t *testing.T) {
	a := Vec2{X: 3, Z: 4}
	b := Vec2{X: 1, Z: -2}

	if got := a.Add(b); got != (Vec2{X: 4, Z: 2}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec2{X: 2, Z: 6}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Scale(2); got != (Vec2{X: 6, Z: 8}) {
		t.Errorf("Scale = %+v", got)
	}
	if got := a.Dot(b); got != 3-8 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Norm(); got != 5 {
		t.Errorf("Norm = %v", got)
	}
	if got := a.Distance(Vec2{X: 0, Z: 0}); got != 5 {
		t.Errorf("Distance = %v", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := Vec2{X: 0, Z: -7}.Normalize()
	if n != (Vec2{X: 0, Z: -1}) {
		t.Errorf("Normalize = %+v", n)
	}

	// The zero vector stays zero rather than becoming NaN.
	z := Vec2{}.Normalize()
	if math.IsNaN(z.X) || math.IsNaN(z.Z) || z != (Vec2{}) {
		t.Errorf("Normalize zero = %+v", z)
	}
}

func TestVec2PerpFixedRotation(t *testing.T) {
	cases := []struct{ in, want Vec2 }{
		{Vec2{X: 1, Z: 0}, Vec2{X: 0, Z: 1}},
		{Vec2{X: 0, Z: 1}, Vec2{X: -1, Z: 0}},
		{Vec2{X: 2, Z: 3}, Vec2{X: -3, Z: 2}},
	}
	for _, tc := range cases {
		if got := tc.in.Perp(); got != tc.want {
			t.Errorf("Perp(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
		if d := tc.in.Dot(tc.in.Perp()); d != 0 {
			t.Errorf("Perp(%+v) not perpendicular, dot = %v", tc.in, d)
		}
	}
}

func TestVec2Lerp(t *testing.T) {
	a := Vec2{X: 0, Z: 0}
	b := Vec2{X: 10, Z: -4}
	if got := a.Lerp(b, 0.5); got != (Vec2{X: 5, Z: -2}) {
		t.Errorf("Lerp = %+v", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v", got)
	}
}
