// Package telemetry defines the lap recording model consumed by the
// track reconstruction pipeline and a loader for the JSON capture format
// produced by the in-game mapping lap.
package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackmap/internal/geom"
)

// Point is one recorded telemetry sample. X and Z are horizontal-plane
// coordinates in meters, Time is seconds since the start of the lap and
// D is the cumulative odometer reading. D is carried through unused by
// the geometry core.
type Point struct {
	X    float64 `json:"x"`
	Z    float64 `json:"z"`
	Time float64 `json:"time"`
	D    float64 `json:"d"`
}

// Pos returns the sample's horizontal-plane position.
func (p Point) Pos() geom.Vec2 { return geom.Vec2{X: p.X, Z: p.Z} }

// Lap is a whole-lap recording in capture order (implicitly increasing
// time). It is read-only to the pipeline.
type Lap []Point

// Positions returns the positions of all samples in recording order.
func (l Lap) Positions() []geom.Vec2 {
	out := make([]geom.Vec2, len(l))
	for i, p := range l {
		out[i] = p.Pos()
	}
	return out
}

// Before returns the samples recorded strictly before cutoff seconds.
func (l Lap) Before(cutoff float64) Lap {
	var out Lap
	for _, p := range l {
		if p.Time < cutoff {
			out = append(out, p)
		}
	}
	return out
}

// ParseLap decodes a lap recording from r.
func ParseLap(r io.Reader) (Lap, error) {
	var lap Lap
	if err := json.NewDecoder(r).Decode(&lap); err != nil {
		return nil, fmt.Errorf("failed to parse lap JSON: %w", err)
	}
	return lap, nil
}

// LoadLap reads a lap recording from a JSON file.
func LoadLap(path string) (Lap, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("lap file must have .json extension, got %q", ext)
	}

	f, err := os.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open lap file: %w", err)
	}
	defer f.Close()

	lap, err := ParseLap(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cleanPath, err)
	}
	if len(lap) == 0 {
		return nil, fmt.Errorf("%s: lap recording is empty", cleanPath)
	}
	return lap, nil
}
