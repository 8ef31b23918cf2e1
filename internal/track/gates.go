package track

import (
	"log"

	"github.com/banshee-data/trackmap/internal/geom"
)

// Gate is a cross-track segment perpendicular to the direction of
// travel, used downstream as a distance checkpoint. Normal is unit
// length; P1 and P2 sit at Center +/- Normal*width/2. Distance is the
// arc-length target that triggered the gate (a clean multiple of the
// spacing), not the sample's exact arc length.
type Gate struct {
	Index    int       `json:"index"`
	Center   geom.Vec2 `json:"center"`
	Normal   geom.Vec2 `json:"normal"`
	P1       geom.Vec2 `json:"p1"`
	P2       geom.Vec2 `json:"p2"`
	Distance float64   `json:"distance"`
}

// GenerateGates walks the curve's arc-length axis and emits a gate of
// the given width each time the running target distance is reached,
// starting at 0 and advancing by spacing. Multiple targets crossed by
// one sample step all emit at that sample, so sparse sampling never
// drops gates. The final partial interval of the loop gets no gate.
//
// A sample with a vanishing tangent cannot orient a gate; it is skipped
// with a log line and the walk continues at the next sample.
func GenerateGates(c *Curve, spacing, width float64) []Gate {
	var gates []Gate
	target := 0.0

	for i := 0; i+1 < len(c.Points); i++ {
		if c.ArcLength[i] < target {
			continue
		}

		tangent := c.Spline.Derivative(c.Param(i))
		if tangent.Norm() == 0 {
			log.Printf("gate placement: %v at sample %d (u=%.4f), skipping", ErrDegenerateTangent, i, c.Param(i))
			continue
		}
		normal := tangent.Normalize().Perp()
		center := c.Points[i]

		for c.ArcLength[i] >= target {
			gates = append(gates, Gate{
				Index:    len(gates) + 1,
				Center:   center,
				Normal:   normal,
				P1:       center.Add(normal.Scale(width / 2)),
				P2:       center.Sub(normal.Scale(width / 2)),
				Distance: target,
			})
			target += spacing
		}
	}
	return gates
}
