package track

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// wallTapLap builds a straight run along z = 2x + 1 with symmetric
// perpendicular offsets of +/- w/2, the shape a wall-tapping maneuver
// leaves in the recording.
func wallTapLap(w float64) telemetry.Lap {
	// Unit perpendicular to direction (1, 2).
	px, pz := -2/math.Sqrt(5), 1/math.Sqrt(5)

	var lap telemetry.Lap
	t := 0.0
	for x := 0.0; x <= 1000; x += 10 {
		z := 2*x + 1
		lap = append(lap,
			telemetry.Point{X: x + px*w/2, Z: z + pz*w/2, Time: t},
			telemetry.Point{X: x - px*w/2, Z: z - pz*w/2, Time: t + 0.05},
		)
		t += 0.1
	}
	return lap
}

func TestEstimateWidthStraightLine(t *testing.T) {
	t.Parallel()

	const w, carOffset = 6.0, 2.0
	got, err := EstimateWidth(wallTapLap(w), 30.0, carOffset)
	require.NoError(t, err)
	assert.InDelta(t, w+carOffset, got, 0.1)
}

func TestEstimateWidthIgnoresLateSamples(t *testing.T) {
	t.Parallel()

	lap := wallTapLap(6.0)
	// Samples past the cutoff must not influence the fit, no matter
	// how far off they are.
	lap = append(lap,
		telemetry.Point{X: -5000, Z: 9000, Time: 45},
		telemetry.Point{X: 7000, Z: -3000, Time: 50},
	)

	got, err := EstimateWidth(lap, 30.0, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, got, 0.1)
}

func TestEstimateWidthVerticalLine(t *testing.T) {
	t.Parallel()

	// A straight parallel to the z axis: the z-on-x regression is
	// degenerate, so the estimator must fit in the swapped frame.
	var lap telemetry.Lap
	for i := 0; i < 50; i++ {
		z := float64(i)
		lap = append(lap,
			telemetry.Point{X: 5 + 3, Z: z, Time: float64(i) * 0.2},
			telemetry.Point{X: 5 - 3, Z: z, Time: float64(i)*0.2 + 0.1},
		)
	}

	got, err := EstimateWidth(lap, 30.0, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 6.0+2.0, got, 1e-9)
}

func TestEstimateWidthTwoPointWindow(t *testing.T) {
	t.Parallel()

	// Three samples where only two fall inside the window: a line
	// still fits and the spread collapses to the car offset.
	lap := telemetry.Lap{
		{X: 0, Z: 0, Time: 0},
		{X: 10, Z: 20, Time: 10},
		{X: 700, Z: 900, Time: 40},
	}

	got, err := EstimateWidth(lap, 30.0, 2.0)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got, 1e-9)
}

func TestEstimateWidthInsufficientData(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		lap  telemetry.Lap
	}{
		{"empty lap", nil},
		{"single early sample", telemetry.Lap{{X: 1, Z: 2, Time: 5}}},
		{"everything past cutoff", telemetry.Lap{{X: 1, Z: 2, Time: 31}, {X: 3, Z: 4, Time: 32}}},
		{"no spatial extent", telemetry.Lap{{X: 1, Z: 2, Time: 1}, {X: 1, Z: 2, Time: 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EstimateWidth(tc.lap, 30.0, 2.0)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)
		})
	}
}
