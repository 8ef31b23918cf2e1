package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// Tuning represents the tuning parameters of the track reconstruction
// pipeline. All fields are optional pointers so a partial JSON file can
// override just the values it names; the Get* methods supply defaults
// for anything left unset.
type Tuning struct {
	// Width estimator params
	TimeCutoffSeconds *float64 `json:"time_cutoff_seconds,omitempty"`
	CarWidthOffset    *float64 `json:"car_width_offset,omitempty"`

	// Filter params
	MinPointSeparation *float64 `json:"min_point_separation,omitempty"`

	// Smoother params
	SmoothingMultiplier *float64 `json:"smoothing_multiplier,omitempty"`
	MaxControlPoints    *int     `json:"max_control_points,omitempty"`
	DenseSamples        *int     `json:"dense_samples,omitempty"`
	LoopCloseTolerance  *float64 `json:"loop_close_tolerance,omitempty"`

	// Gate params
	GateSpacing *float64 `json:"gate_spacing,omitempty"`

	// TrackWidth overrides the wall-tap estimator when set.
	TrackWidth *float64 `json:"track_width,omitempty"`
}

// EmptyTuning returns a Tuning with all fields unset so every Get*
// method falls back to its default.
func EmptyTuning() *Tuning {
	return &Tuning{}
}

// Load reads a Tuning from a JSON file. Fields omitted from the JSON
// retain their default values, so partial configs are safe.
func Load(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuning()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Tuning) Validate() error {
	if c.TimeCutoffSeconds != nil && *c.TimeCutoffSeconds <= 0 {
		return fmt.Errorf("time_cutoff_seconds must be positive, got %f", *c.TimeCutoffSeconds)
	}
	if c.CarWidthOffset != nil && *c.CarWidthOffset < 0 {
		return fmt.Errorf("car_width_offset must be non-negative, got %f", *c.CarWidthOffset)
	}
	if c.MinPointSeparation != nil && *c.MinPointSeparation <= 0 {
		return fmt.Errorf("min_point_separation must be positive, got %f", *c.MinPointSeparation)
	}
	if c.SmoothingMultiplier != nil && *c.SmoothingMultiplier < 0 {
		return fmt.Errorf("smoothing_multiplier must be non-negative, got %f", *c.SmoothingMultiplier)
	}
	if c.MaxControlPoints != nil && *c.MaxControlPoints < 16 {
		return fmt.Errorf("max_control_points must be at least 16, got %d", *c.MaxControlPoints)
	}
	if c.DenseSamples != nil && *c.DenseSamples < 16 {
		return fmt.Errorf("dense_samples must be at least 16, got %d", *c.DenseSamples)
	}
	if c.LoopCloseTolerance != nil && *c.LoopCloseTolerance <= 0 {
		return fmt.Errorf("loop_close_tolerance must be positive, got %f", *c.LoopCloseTolerance)
	}
	if c.GateSpacing != nil && *c.GateSpacing <= 0 {
		return fmt.Errorf("gate_spacing must be positive, got %f", *c.GateSpacing)
	}
	if c.TrackWidth != nil && *c.TrackWidth <= 0 {
		return fmt.Errorf("track_width must be positive, got %f", *c.TrackWidth)
	}
	return nil
}

// GetTimeCutoffSeconds returns the early-window cutoff for the wall-tap
// width estimate, in seconds of lap time.
func (c *Tuning) GetTimeCutoffSeconds() float64 {
	if c.TimeCutoffSeconds == nil {
		return 30.0
	}
	return *c.TimeCutoffSeconds
}

// GetCarWidthOffset returns the vehicle-width allowance added to the
// wall-to-wall spread (the walls are tapped with the car's sides, not
// its centre).
func (c *Tuning) GetCarWidthOffset() float64 {
	if c.CarWidthOffset == nil {
		return 2.0
	}
	return *c.CarWidthOffset
}

// GetMinPointSeparation returns the minimum distance between kept
// samples during deduplication.
func (c *Tuning) GetMinPointSeparation() float64 {
	if c.MinPointSeparation == nil {
		return 1.0
	}
	return *c.MinPointSeparation
}

// GetSmoothingMultiplier returns the smoothing-strength multiplier; the
// smoother's penalty weight is multiplier * pointCount.
func (c *Tuning) GetSmoothingMultiplier() float64 {
	if c.SmoothingMultiplier == nil {
		return 5.0
	}
	return *c.SmoothingMultiplier
}

// GetMaxControlPoints returns the control-point cap applied before the
// dense smoothing solve.
func (c *Tuning) GetMaxControlPoints() int {
	if c.MaxControlPoints == nil {
		return 2500
	}
	return *c.MaxControlPoints
}

// GetDenseSamples returns the number of evenly spaced parameter samples
// used to evaluate the smoothed curve.
func (c *Tuning) GetDenseSamples() int {
	if c.DenseSamples == nil {
		return 1000
	}
	return *c.DenseSamples
}

// GetLoopCloseTolerance returns the maximum start/end gap for a recording
// to count as a closed loop.
func (c *Tuning) GetLoopCloseTolerance() float64 {
	if c.LoopCloseTolerance == nil {
		return 100.0
	}
	return *c.LoopCloseTolerance
}

// GetGateSpacing returns the arc-length interval between gates.
func (c *Tuning) GetGateSpacing() float64 {
	if c.GateSpacing == nil {
		return 200.0
	}
	return *c.GateSpacing
}

// GetTrackWidth returns the configured track width override and whether
// one was set. When unset the pipeline estimates the width from the
// wall-tap maneuver instead.
func (c *Tuning) GetTrackWidth() (float64, bool) {
	if c.TrackWidth == nil {
		return 0, false
	}
	return *c.TrackWidth, true
}
