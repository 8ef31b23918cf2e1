package track

import "errors"

// Categorized pipeline failures. Fitting and filtering failures abort a
// run; a degenerate tangent is recovered locally by skipping the
// affected sample. Callers match with errors.Is.
var (
	// ErrInsufficientData means too few points survived to fit a line
	// or a closed curve.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateTangent means the curve's first derivative vanished
	// at a gate placement sample.
	ErrDegenerateTangent = errors.New("degenerate tangent")

	// ErrCurveFit means the periodic fit failed or the recording does
	// not form a closed loop.
	ErrCurveFit = errors.New("curve fit failed")
)
