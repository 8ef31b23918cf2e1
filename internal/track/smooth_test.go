package track

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trackmap/internal/geom"
)

func TestSmoothClosedZeroLambdaIsIdentity(t *testing.T) {
	t.Parallel()

	pts := circlePoints(36, 100)
	got, err := SmoothClosed(pts, 0)
	require.NoError(t, err)
	assert.Equal(t, pts, got)
}

func TestSmoothClosedSuppressesNoise(t *testing.T) {
	t.Parallel()

	const (
		n = 360
		r = 500.0
	)

	// Radial noise at frequencies well above the track shape itself.
	// Deterministic so the test is reproducible.
	noisy := make([]geom.Vec2, n)
	maxRawDev := 0.0
	for i := range noisy {
		theta := 2 * math.Pi * float64(i) / float64(n)
		rr := r + 2*math.Sin(29*theta) + 1.5*math.Cos(53*theta)
		noisy[i] = geom.Vec2{X: rr * math.Cos(theta), Z: rr * math.Sin(theta)}
		maxRawDev = math.Max(maxRawDev, math.Abs(rr-r))
	}
	require.Greater(t, maxRawDev, 1.5, "test input must actually be noisy")

	smoothed, err := SmoothClosed(noisy, 5.0*n)
	require.NoError(t, err)
	require.Len(t, smoothed, n)

	maxDev := 0.0
	for _, p := range smoothed {
		maxDev = math.Max(maxDev, math.Abs(p.Norm()-r))
	}
	assert.Less(t, maxDev, 0.5, "smoothing should pull noisy samples back to the circle")
}

func TestSmoothClosedNoSeamBias(t *testing.T) {
	t.Parallel()

	// The penalty wraps around the loop, so the samples next to index 0
	// must be treated like any others. On a clean circle every smoothed
	// point shrinks toward the centre by the same amount.
	const n = 180
	pts := circlePoints(n, 500)
	smoothed, err := SmoothClosed(pts, 5.0*n)
	require.NoError(t, err)

	r0 := smoothed[0].Norm()
	for i, p := range smoothed {
		assert.InDelta(t, r0, p.Norm(), 1e-6, "index %d", i)
	}
}

func TestSmoothClosedTooFewPoints(t *testing.T) {
	t.Parallel()

	_, err := SmoothClosed(circlePoints(3, 10), 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientData), "got %v", err)
}

func TestDecimate(t *testing.T) {
	t.Parallel()

	pts := circlePoints(10, 1)

	t.Run("under cap unchanged", func(t *testing.T) {
		assert.Equal(t, pts, Decimate(pts, 10))
		assert.Equal(t, pts, Decimate(pts, 50))
	})

	t.Run("strides down to cap", func(t *testing.T) {
		got := Decimate(pts, 5)
		require.Len(t, got, 5)
		assert.Equal(t, pts[0], got[0])
		assert.Equal(t, pts[2], got[1])
	})

	t.Run("no cap", func(t *testing.T) {
		assert.Equal(t, pts, Decimate(pts, 0))
	})
}
