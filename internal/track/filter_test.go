package track

import (
	"math"
	"testing"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

func TestFilterLapMinSeparation(t *testing.T) {
	t.Parallel()

	// A crawl forward in 0.4-unit steps with occasional jumps. Every
	// kept pair must still clear the threshold.
	var lap telemetry.Lap
	x := 0.0
	for i := 0; i < 100; i++ {
		step := 0.4
		if i%7 == 0 {
			step = 3.0
		}
		x += step
		lap = append(lap, telemetry.Point{X: x, Z: math.Sin(x), Time: float64(i)})
	}

	const minSep = 1.0
	got := FilterLap(lap, minSep)

	if len(got) == 0 {
		t.Fatal("expected filtered output, got none")
	}
	if got[0] != lap[0].Pos() {
		t.Errorf("first point not kept: got %+v, want %+v", got[0], lap[0].Pos())
	}
	for i := 1; i < len(got); i++ {
		if d := got[i].Distance(got[i-1]); d <= minSep {
			t.Errorf("consecutive points %d-%d only %.3f apart, want > %.1f", i-1, i, d, minSep)
		}
	}
}

func TestFilterLapStationaryCar(t *testing.T) {
	t.Parallel()

	lap := telemetry.Lap{
		{X: 10, Z: 20, Time: 0},
		{X: 10, Z: 20, Time: 1},
		{X: 10.1, Z: 20, Time: 2},
		{X: 10, Z: 20.2, Time: 3},
	}
	got := FilterLap(lap, 1.0)
	if len(got) != 1 {
		t.Fatalf("stationary recording should thin to 1 point, got %d", len(got))
	}
}

func TestFilterLapBaselineAdvancesOnKeep(t *testing.T) {
	t.Parallel()

	// Steps of 0.6: no single step clears the threshold, but every
	// second sample is 1.2 from the last *kept* point. A sliding
	// comparison against the previous raw sample would drop everything.
	var lap telemetry.Lap
	for i := 0; i < 10; i++ {
		lap = append(lap, telemetry.Point{X: 0.6 * float64(i), Time: float64(i)})
	}
	got := FilterLap(lap, 1.0)
	if len(got) != 5 {
		t.Fatalf("expected 5 kept points, got %d", len(got))
	}
}

func TestFilterLapEmpty(t *testing.T) {
	t.Parallel()

	if got := FilterLap(nil, 1.0); got != nil {
		t.Errorf("expected nil for empty lap, got %v", got)
	}
}
