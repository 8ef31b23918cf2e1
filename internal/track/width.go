package track

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// EstimateWidth derives the physical track width from the deliberate
// wall-tapping maneuver at the start of a mapping lap. It fits a
// least-squares line through the samples recorded before cutoff seconds
// and measures the spread of signed perpendicular distances to that
// line; the car touched one wall, then the other, so the spread is the
// wall-to-wall distance travelled by the car's centre. carOffset
// (roughly the vehicle's width) is added because the taps happen with
// the car's sides.
func EstimateWidth(lap telemetry.Lap, cutoff, carOffset float64) (float64, error) {
	early := lap.Before(cutoff)
	if len(early) < 2 {
		return 0, fmt.Errorf("width estimate needs at least 2 samples before t=%.0fs, got %d: %w",
			cutoff, len(early), ErrInsufficientData)
	}

	xs := make([]float64, len(early))
	zs := make([]float64, len(early))
	for i, p := range early {
		xs[i] = p.X
		zs[i] = p.Z
	}

	// An ordinary regression of z on x degenerates when the straight
	// runs near-parallel to the z axis: the fitted slope collapses
	// toward zero and the residual spread picks up the along-track
	// extent. The signed-distance spread is invariant to which frame
	// the line was fitted in, so regress in the frame whose
	// independent axis carries the larger spread.
	varX := stat.Variance(xs, nil)
	varZ := stat.Variance(zs, nil)
	if varX == 0 && varZ == 0 {
		return 0, fmt.Errorf("early window has no spatial extent: %w", ErrInsufficientData)
	}
	indep, dep := xs, zs
	if varZ > varX {
		indep, dep = zs, xs
	}

	// Line A*u + B*v + C = 0 with B = -1, through the fitted
	// v = beta*u + alpha.
	alpha, beta := stat.LinearRegression(indep, dep, nil, false)
	norm := math.Sqrt(beta*beta + 1)

	minD := math.Inf(1)
	maxD := math.Inf(-1)
	for i := range indep {
		d := (beta*indep[i] - dep[i] + alpha) / norm
		minD = math.Min(minD, d)
		maxD = math.Max(maxD, d)
	}

	return maxD - minD + carOffset, nil
}
