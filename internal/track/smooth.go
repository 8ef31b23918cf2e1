package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/trackmap/internal/geom"
)

// SmoothClosed suppresses recording noise in a closed control polygon by
// penalized least squares over the cyclic index: it minimizes
//
//	sum |c_i - p_i|^2 + lambda * sum |c_{i-1} - 2c_i + c_{i+1}|^2
//
// where the second sum wraps around the loop. lambda trades fitting
// error against curvature; the pipeline's convention is
// lambda = smoothingMultiplier * len(pts). The solve is dense, so
// callers cap the input size with Decimate first.
func SmoothClosed(pts []geom.Vec2, lambda float64) ([]geom.Vec2, error) {
	n := len(pts)
	if n < 4 {
		return nil, fmt.Errorf("closed-loop smoothing needs at least 4 points, got %d: %w", n, ErrInsufficientData)
	}
	if lambda == 0 {
		out := make([]geom.Vec2, n)
		copy(out, pts)
		return out, nil
	}

	// Normal equations (I + lambda*K'K) c = p with K the cyclic second
	// difference. K'K is the cyclic convolution [1 -4 6 -4 1]; offsets
	// that alias for small n accumulate naturally.
	data := make([]float64, n*n)
	coef := map[int]float64{-2: lambda, -1: -4 * lambda, 0: 1 + 6*lambda, 1: -4 * lambda, 2: lambda}
	for i := 0; i < n; i++ {
		for d, c := range coef {
			j := ((i+d)%n + n) % n
			data[i*n+j] += c
		}
	}
	a := mat.NewSymDense(n, data)

	rhs := mat.NewDense(n, 2, nil)
	for i, p := range pts {
		rhs.Set(i, 0, p.X)
		rhs.Set(i, 1, p.Z)
	}

	var chol mat.Cholesky
	if !chol.Factorize(a) {
		return nil, fmt.Errorf("smoothing system is not positive definite: %w", ErrCurveFit)
	}
	var sol mat.Dense
	if err := chol.SolveTo(&sol, rhs); err != nil {
		return nil, fmt.Errorf("smoothing solve: %v: %w", err, ErrCurveFit)
	}

	out := make([]geom.Vec2, n)
	for i := range out {
		x, z := sol.At(i, 0), sol.At(i, 1)
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(z) || math.IsInf(z, 0) {
			return nil, fmt.Errorf("smoothing produced non-finite coordinates at index %d: %w", i, ErrCurveFit)
		}
		out[i] = geom.Vec2{X: x, Z: z}
	}
	return out, nil
}

// Decimate strides pts down so at most max points remain. The relative
// order is preserved and the first point is always kept. Inputs already
// under the cap are returned unchanged.
func Decimate(pts []geom.Vec2, max int) []geom.Vec2 {
	if max <= 0 || len(pts) <= max {
		return pts
	}
	stride := (len(pts) + max - 1) / max
	out := make([]geom.Vec2, 0, max)
	for i := 0; i < len(pts); i += stride {
		out = append(out, pts[i])
	}
	return out
}
