package track

import "github.com/banshee-data/trackmap/internal/geom"

// ArcLengthTable returns the cumulative Euclidean distance along a dense
// sample sequence, prefixed with 0 at the first sample. The table is
// monotonically non-decreasing and its final entry approximates the
// total curve length; accuracy improves with denser sampling.
func ArcLengthTable(pts []geom.Vec2) []float64 {
	if len(pts) == 0 {
		return nil
	}
	table := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		table[i] = table[i-1] + pts[i].Distance(pts[i-1])
	}
	return table
}

// Curve is the smoothed centerline evaluated densely, alongside its
// arc-length parameterization. Points[i] sits at parameter
// i/(len(Points)-1); the first and last points coincide on the closed
// loop.
type Curve struct {
	Spline    *Spline
	Points    []geom.Vec2
	ArcLength []float64
}

// NewCurve evaluates a fitted spline at count dense samples and computes
// the matching arc-length table.
func NewCurve(s *Spline, count int) *Curve {
	pts := s.Sample(count)
	return &Curve{Spline: s, Points: pts, ArcLength: ArcLengthTable(pts)}
}

// Param returns the spline parameter of dense sample i.
func (c *Curve) Param(i int) float64 {
	return float64(i) / float64(len(c.Points)-1)
}

// TotalLength returns the approximate length of the whole loop.
func (c *Curve) TotalLength() float64 {
	if len(c.ArcLength) == 0 {
		return 0
	}
	return c.ArcLength[len(c.ArcLength)-1]
}
