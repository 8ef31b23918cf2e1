package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackmap/internal/geom"
)

// Spline is a closed-loop C2 cubic curve through control points placed
// at uniform parameter spacing. The parameter has period 1: Eval(0) and
// Eval(1) are the same point, so a lap maps naturally onto u in [0,1).
type Spline struct {
	pts []geom.Vec2 // control points; pts[0] follows pts[n-1] around the loop
	m   []geom.Vec2 // second derivatives at the knots
	h   float64     // knot spacing, 1/len(pts)
}

// FitPeriodic interpolates a periodic cubic spline through the given
// closed control polygon. The knot second derivatives solve the cyclic
// tridiagonal system
//
//	m_{i-1} + 4 m_i + m_{i+1} = (6/h^2)(c_{i-1} - 2 c_i + c_{i+1})
//
// which is reduced to two ordinary tridiagonal solves by a
// Sherman-Morrison correction for the wrap-around corner entries.
func FitPeriodic(pts []geom.Vec2) (*Spline, error) {
	n := len(pts)
	if n < 4 {
		return nil, fmt.Errorf("periodic spline needs at least 4 control points, got %d: %w", n, ErrInsufficientData)
	}

	h := 1.0 / float64(n)
	scale := 6.0 / (h * h)

	// Corner entries a[0][n-1] = a[n-1][0] = 1 are folded into the rank-1
	// update u*v' with gamma = -4.
	const gamma = -4.0
	d := make([]float64, n)
	dl := make([]float64, n-1)
	du := make([]float64, n-1)
	for i := range d {
		d[i] = 4
	}
	d[0] = 4 - gamma
	d[n-1] = 4 - 1.0/gamma
	for i := range dl {
		dl[i] = 1
		du[i] = 1
	}

	// Columns: RHS for x, RHS for z, and the update vector u.
	rhs := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		rhs.Set(i, 0, scale*(prev.X-2*pts[i].X+next.X))
		rhs.Set(i, 1, scale*(prev.Z-2*pts[i].Z+next.Z))
	}
	rhs.Set(0, 2, gamma)
	rhs.Set(n-1, 2, 1)

	tri := mat.NewTridiag(n, dl, d, du)
	var sol mat.Dense
	if err := tri.SolveTo(&sol, false, rhs); err != nil {
		return nil, fmt.Errorf("periodic spline solve: %v: %w", err, ErrCurveFit)
	}

	// x = y - q*(v.y)/(1 + v.q) with v = (1, 0, ..., 1/gamma).
	denom := 1 + sol.At(0, 2) + sol.At(n-1, 2)/gamma
	if math.Abs(denom) < 1e-12 {
		return nil, fmt.Errorf("periodic spline system is singular: %w", ErrCurveFit)
	}
	factX := (sol.At(0, 0) + sol.At(n-1, 0)/gamma) / denom
	factZ := (sol.At(0, 1) + sol.At(n-1, 1)/gamma) / denom

	m := make([]geom.Vec2, n)
	for i := range m {
		mx := sol.At(i, 0) - factX*sol.At(i, 2)
		mz := sol.At(i, 1) - factZ*sol.At(i, 2)
		if math.IsNaN(mx) || math.IsNaN(mz) {
			return nil, fmt.Errorf("periodic spline produced non-finite curvature at knot %d: %w", i, ErrCurveFit)
		}
		m[i] = geom.Vec2{X: mx, Z: mz}
	}

	cp := make([]geom.Vec2, n)
	copy(cp, pts)
	return &Spline{pts: cp, m: m, h: h}, nil
}

// segment locates the knot interval containing u and the local fraction
// within it. u is wrapped into [0,1).
func (s *Spline) segment(u float64) (i int, t float64) {
	u -= math.Floor(u)
	pos := u * float64(len(s.pts))
	i = int(pos)
	if i >= len(s.pts) {
		i = len(s.pts) - 1
	}
	return i, pos - float64(i)
}

// Eval returns the curve position at parameter u.
func (s *Spline) Eval(u float64) geom.Vec2 {
	i, t := s.segment(u)
	j := (i + 1) % len(s.pts)
	h2 := s.h * s.h / 6

	a := 1 - t
	ci := s.pts[i].Sub(s.m[i].Scale(h2))
	cj := s.pts[j].Sub(s.m[j].Scale(h2))
	return s.m[i].Scale(h2 * a * a * a).
		Add(s.m[j].Scale(h2 * t * t * t)).
		Add(ci.Scale(a)).
		Add(cj.Scale(t))
}

// Derivative returns the first derivative of position with respect to
// the parameter at u. Its direction is the local travel tangent.
func (s *Spline) Derivative(u float64) geom.Vec2 {
	i, t := s.segment(u)
	j := (i + 1) % len(s.pts)

	a := 1 - t
	return s.m[j].Scale(t * t * s.h / 2).
		Sub(s.m[i].Scale(a * a * s.h / 2)).
		Add(s.pts[j].Sub(s.pts[i]).Scale(1 / s.h)).
		Sub(s.m[j].Sub(s.m[i]).Scale(s.h / 6))
}

// Sample evaluates the spline at count evenly spaced parameters spanning
// the full period, endpoint included: the first and last samples land on
// the same point, making the closed loop explicit in the output.
func (s *Spline) Sample(count int) []geom.Vec2 {
	if count < 2 {
		count = 2
	}
	us := floats.Span(make([]float64, count), 0, 1)
	out := make([]geom.Vec2, count)
	for i, u := range us {
		out[i] = s.Eval(u)
	}
	return out
}
