// Command trackmap reconstructs a closed-loop track geometry from one
// mapping-lap recording: it estimates the track width from the wall-tap
// maneuver, fits a smoothed periodic centerline and emits evenly spaced
// perpendicular gates. Outputs are gates.json and reference_line.json
// plus optional PNG/HTML previews and a sqlite run archive.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/banshee-data/trackmap/db"
	"github.com/banshee-data/trackmap/internal/config"
	"github.com/banshee-data/trackmap/internal/render"
	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/track"
)

var (
	lapFile    = flag.String("lap", "", "Path to lap recording JSON (required)")
	configFile = flag.String("config", "", "Path to tuning config JSON (optional)")
	outDir     = flag.String("out", ".", "Directory for gates.json and reference_line.json")
	preview    = flag.String("preview", "track_gates_preview.png", "Preview PNG path (empty to skip)")
	htmlOut    = flag.String("html", "", "Interactive HTML chart path (empty to skip)")
	dbFile     = flag.String("db", "", "Archive the run into this sqlite database (empty to skip)")
	widthFlag  = flag.Float64("width", 0, "Track width override in meters (0 = estimate from wall taps)")
)

func main() {
	flag.Parse()
	if *lapFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.EmptyTuning()
	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}

	params := paramsFromTuning(cfg)
	if *widthFlag > 0 {
		params.TrackWidth = *widthFlag
	}

	lap, err := telemetry.LoadLap(*lapFile)
	if err != nil {
		log.Fatalf("lap: %v", err)
	}
	log.Printf("Loaded %d samples from %s", len(lap), *lapFile)

	res, err := track.Run(lap, params)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}
	log.Printf("Track width: %.2f m, total length: %.0f m", res.Width, res.Curve.TotalLength())

	if err := writeJSON(filepath.Join(*outDir, "gates.json"), res.Gates); err != nil {
		log.Fatalf("gates: %v", err)
	}
	if err := writeJSON(filepath.Join(*outDir, "reference_line.json"), res.Curve.Points); err != nil {
		log.Fatalf("reference line: %v", err)
	}

	if *preview != "" {
		if err := render.SavePreview(*preview, lap.Positions(), res.Curve.Points, res.Gates); err != nil {
			log.Fatalf("preview: %v", err)
		}
	}
	if *htmlOut != "" {
		if err := render.WriteHTML(*htmlOut, res.Curve.Points, res.Gates); err != nil {
			log.Fatalf("html chart: %v", err)
		}
	}

	if *dbFile != "" {
		archive, err := db.NewDB(*dbFile)
		if err != nil {
			log.Fatalf("open archive: %v", err)
		}
		defer archive.Close()
		runID, err := archive.SaveRun(*lapFile, params.GateSpacing, res)
		if err != nil {
			log.Fatalf("archive run: %v", err)
		}
		log.Printf("Archived run %s in %s", runID, *dbFile)
	}

	log.Printf("Generated %d gates.", len(res.Gates))
	if *preview != "" {
		log.Printf("Preview saved to %s.", *preview)
	}
}

func paramsFromTuning(cfg *config.Tuning) track.Params {
	p := track.Params{
		TimeCutoff:          cfg.GetTimeCutoffSeconds(),
		CarOffset:           cfg.GetCarWidthOffset(),
		MinSeparation:       cfg.GetMinPointSeparation(),
		SmoothingMultiplier: cfg.GetSmoothingMultiplier(),
		MaxControlPoints:    cfg.GetMaxControlPoints(),
		DenseSamples:        cfg.GetDenseSamples(),
		LoopCloseTolerance:  cfg.GetLoopCloseTolerance(),
		GateSpacing:         cfg.GetGateSpacing(),
	}
	if w, ok := cfg.GetTrackWidth(); ok {
		p.TrackWidth = w
	}
	return p
}

// writeJSON marshals v and moves it into place with a rename, so a
// failed run never leaves a truncated output file behind.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
