package track

import (
	"fmt"

	"github.com/banshee-data/trackmap/internal/telemetry"
)

// Params holds every tunable of one reconstruction run. Zero values are
// not meaningful; start from DefaultParams or map from a config.Tuning.
type Params struct {
	// TimeCutoff bounds the wall-tap window for the width estimate,
	// in seconds of lap time.
	TimeCutoff float64
	// CarOffset is added to the measured wall-to-wall spread.
	CarOffset float64
	// MinSeparation is the deduplication distance threshold.
	MinSeparation float64
	// SmoothingMultiplier scales the curvature penalty; the effective
	// weight is SmoothingMultiplier * controlPointCount.
	SmoothingMultiplier float64
	// MaxControlPoints caps the smoothing system size; longer inputs
	// are strided down first.
	MaxControlPoints int
	// DenseSamples is the number of evenly spaced curve evaluations.
	DenseSamples int
	// LoopCloseTolerance is the maximum start/end gap of a recording
	// accepted as a closed loop.
	LoopCloseTolerance float64
	// GateSpacing is the arc-length interval between gates.
	GateSpacing float64
	// TrackWidth, when positive, overrides the wall-tap estimator.
	TrackWidth float64
}

// DefaultParams returns the standard tuning.
func DefaultParams() Params {
	return Params{
		TimeCutoff:          30.0,
		CarOffset:           2.0,
		MinSeparation:       1.0,
		SmoothingMultiplier: 5.0,
		MaxControlPoints:    2500,
		DenseSamples:        1000,
		LoopCloseTolerance:  100.0,
		GateSpacing:         200.0,
	}
}

// Result is the full artifact set of one reconstruction run: the
// estimated (or overridden) track width, the densely sampled smoothed
// centerline with its arc-length table, and the gate sequence. Results
// are never mutated after Run returns.
type Result struct {
	Width float64
	Curve *Curve
	Gates []Gate
}

// Run executes the whole reconstruction pipeline on one lap recording.
// It either returns a complete result or a single categorized error;
// there is no partial output. The run is deterministic for a given lap
// and parameter set.
func Run(lap telemetry.Lap, p Params) (*Result, error) {
	filtered := FilterLap(lap, p.MinSeparation)
	if len(filtered) < 4 {
		return nil, fmt.Errorf("curve fitting needs at least 4 filtered points, got %d: %w",
			len(filtered), ErrInsufficientData)
	}

	// The smoother assumes the recording is one closed lap. Catch open
	// recordings here instead of producing a silently distorted fit
	// that bridges the gap.
	if gap := filtered[0].Distance(filtered[len(filtered)-1]); gap > p.LoopCloseTolerance {
		return nil, fmt.Errorf("recording does not close the loop: start/end gap %.1f exceeds %.1f: %w",
			gap, p.LoopCloseTolerance, ErrCurveFit)
	}

	ctrl := Decimate(filtered, p.MaxControlPoints)
	smoothed, err := SmoothClosed(ctrl, p.SmoothingMultiplier*float64(len(ctrl)))
	if err != nil {
		return nil, err
	}

	spline, err := FitPeriodic(smoothed)
	if err != nil {
		return nil, err
	}
	curve := NewCurve(spline, p.DenseSamples)

	width := p.TrackWidth
	if width <= 0 {
		width, err = EstimateWidth(lap, p.TimeCutoff, p.CarOffset)
		if err != nil {
			return nil, err
		}
	}

	return &Result{
		Width: width,
		Curve: curve,
		Gates: GenerateGates(curve, p.GateSpacing, width),
	}, nil
}
