// spiral-gen plans a battery-sliced spiral coverage mission and writes the
// waypoints as JSON or CSV.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/spiral"
)

var (
	slices    = flag.Int("slices", 1, "Number of battery slices")
	bounces   = flag.Int("bounces", 6, "Lateral oscillation count per slice")
	startR    = flag.Float64("start-radius", 100, "Start radius in feet")
	holdR     = flag.Float64("hold-radius", 1000, "Hold radius in feet")
	altitude  = flag.Float64("altitude", 400, "Flight altitude in feet")
	battery   = flag.Float64("battery", 20, "Battery duration per slice in minutes")
	format    = flag.String("format", "json", "Output format: json or csv")
	outFile   = flag.String("out", "", "Output file (default stdout)")
	sliceOnly = flag.Int("slice", -1, "Emit only this slice index (-1 = all)")
)

func main() {
	flag.Parse()

	p := spiral.FlightParams{
		Slices:         *slices,
		Bounces:        *bounces,
		StartRadiusFt:  *startR,
		HoldRadiusFt:   *holdR,
		AltitudeFt:     *altitude,
		BatteryMinutes: *battery,
	}

	mission, err := spiral.PlanMission(p)
	if err != nil {
		log.Fatalf("failed to plan mission: %v", err)
	}
	if *sliceOnly >= 0 {
		if *sliceOnly >= len(mission) {
			log.Fatalf("slice %d out of range [0,%d)", *sliceOnly, len(mission))
		}
		mission = mission[*sliceOnly : *sliceOnly+1]
	}

	out := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(mission); err != nil {
			log.Fatalf("failed to encode mission: %v", err)
		}
	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write([]string{"slice", "seq", "x_ft", "y_ft", "z_ft", "phase"}); err != nil {
			log.Fatalf("failed to write csv header: %v", err)
		}
		for si, wps := range mission {
			for _, wp := range wps {
				rec := []string{
					fmt.Sprint(si),
					fmt.Sprint(wp.Seq),
					fmt.Sprintf("%.2f", wp.X),
					fmt.Sprintf("%.2f", wp.Y),
					fmt.Sprintf("%.2f", wp.Z),
					wp.Phase,
				}
				if err := w.Write(rec); err != nil {
					log.Fatalf("failed to write csv row: %v", err)
				}
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			log.Fatalf("failed to flush csv: %v", err)
		}
	default:
		log.Fatalf("unknown format %q (want json or csv)", *format)
	}
}
