package track

import (
	"github.com/banshee-data/trackmap/internal/geom"
	"github.com/banshee-data/trackmap/internal/telemetry"
)

// FilteredSeries is a deduplicated sequence of lap positions. Consecutive
// points are guaranteed to be more than the configured minimum separation
// apart, so no zero-length segment reaches curve fitting.
type FilteredSeries []geom.Vec2

// FilterLap deduplicates a lap recording. The first sample is always
// kept; each later sample is kept only if it lies more than minSeparation
// from the previously kept point. The comparison baseline advances only
// when a point is kept, so a slow crawl still thins down to well-spaced
// points instead of keeping every sample.
func FilterLap(lap telemetry.Lap, minSeparation float64) FilteredSeries {
	if len(lap) == 0 {
		return nil
	}

	out := make(FilteredSeries, 0, len(lap))
	out = append(out, lap[0].Pos())
	last := lap[0].Pos()

	for _, p := range lap[1:] {
		pos := p.Pos()
		if pos.Distance(last) > minSeparation {
			out = append(out, pos)
			last = pos
		}
	}
	return out
}
