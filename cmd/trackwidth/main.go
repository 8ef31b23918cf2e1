// Command trackwidth estimates the physical track width from the
// wall-tapping maneuver at the start of a mapping lap and prints it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/trackmap/internal/telemetry"
	"github.com/banshee-data/trackmap/internal/track"
)

var (
	lapFile   = flag.String("lap", "", "Path to lap recording JSON (required)")
	cutoff    = flag.Float64("cutoff", 30.0, "Wall-tap window length in seconds of lap time")
	carOffset = flag.Float64("car-offset", 2.0, "Vehicle width allowance in meters")
)

func main() {
	flag.Parse()
	if *lapFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	lap, err := telemetry.LoadLap(*lapFile)
	if err != nil {
		log.Fatalf("lap: %v", err)
	}

	width, err := track.EstimateWidth(lap, *cutoff, *carOffset)
	if err != nil {
		log.Fatalf("width estimate: %v", err)
	}

	fmt.Printf("Calculated Track Width: %.2f meters\n", width)
}
