// Package geom provides the small 2D vector type shared by the track
// reconstruction pipeline. Coordinates live in the recording's horizontal
// plane: x and z, matching the telemetry field names. There is no
// elevation axis.
package geom

import "math"

// Vec2 is a point or direction in the horizontal plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Z*w.Z }

// Norm returns the Euclidean length of v.
func (v Vec2) Norm() float64 { return math.Hypot(v.X, v.Z) }

// Distance returns the Euclidean distance between v and w.
func (v Vec2) Distance(w Vec2) float64 { return v.Sub(w).Norm() }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged; callers that care must check Norm first.
func (v Vec2) Normalize() Vec2 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec2{v.X / n, v.Z / n}
}

// Perp returns v rotated 90 degrees. The rotation direction is fixed
// ((x,z) -> (-z,x)) so that offsets derived from travel-direction
// tangents stay on a consistent side all the way around a loop.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Z, v.X} }

// Lerp returns the linear interpolation between v and w at fraction t.
func (v Vec2) Lerp(w Vec2, t float64) Vec2 {
	return Vec2{v.X + (w.X-v.X)*t, v.Z + (w.Z-v.Z)*t}
}
