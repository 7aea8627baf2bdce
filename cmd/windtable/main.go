// Command windtable generates the altitude-resolved wind profile for
// one ground wind condition and writes it as CSV.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/wind"
)

func main() {
	var dir float64
	var speed float64
	var refAlt float64
	var alpha float64
	var outPath string

	flag.Float64Var(&dir, "dir", 0, "ground wind direction in degrees (direction the wind blows FROM)")
	flag.Float64Var(&speed, "speed", 1, "ground wind speed in m/s at the reference altitude")
	flag.Float64Var(&refAlt, "ref-alt", 10, "reference altitude in metres for the power law")
	flag.Float64Var(&alpha, "alpha", 0.14, "power-law exponent")
	flag.StringVar(&outPath, "out", "", "output CSV path (default stdout)")
	flag.Parse()

	if speed < 0 {
		log.Fatalf("speed must be non-negative, got %g", speed)
	}

	samples := wind.Generate(dir, speed, refAlt, alpha)

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("create %s: %v", outPath, err)
		}
		defer f.Close()
		w = f
	}

	if err := writeProfile(w, samples); err != nil {
		log.Fatalf("write wind table: %v", err)
	}
	if outPath != "" {
		fmt.Printf("wrote %d altitude samples to %s\n", len(samples), outPath)
	}
}

func writeProfile(w io.Writer, samples []wind.AltitudeSample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"altitude", "wind_speed", "wind_direction"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.AltitudeM, 'g', -1, 64),
			strconv.FormatFloat(s.SpeedMPS, 'g', -1, 64),
			strconv.FormatFloat(s.DirectionDeg, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
