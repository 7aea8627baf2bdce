package ensemble

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/landingrange"
)

// Pivot is the wind_speed by wind_direction table of mean landing
// ranges. Missing combinations stay absent, not zero-filled.
type Pivot struct {
	Speeds     []float64
	Directions []float64

	cells map[pivotKey]float64
}

type pivotKey struct {
	speed float64
	dir   float64
}

// BuildPivot scores every run's landed point and pivots the mean
// landing range over the (speed, direction) conditions. An empty
// ensemble or unknown site yields an empty table.
func BuildPivot(summaries []RunSummary, sites landingrange.Registry, site string) Pivot {
	p := Pivot{cells: map[pivotKey]float64{}}

	zone, err := sites.Lookup(site)
	if err != nil || len(summaries) == 0 {
		return p
	}

	ranges := map[pivotKey][]float64{}
	speedSet := map[float64]bool{}
	dirSet := map[float64]bool{}
	for _, s := range summaries {
		key := pivotKey{speed: s.Condition.GroundWindSpeed, dir: s.Condition.GroundWindDir}
		ranges[key] = append(ranges[key], zone.SignedDistance(s.LandedLatitude, s.LandedLongitude))
		speedSet[key.speed] = true
		dirSet[key.dir] = true
	}

	for speed := range speedSet {
		p.Speeds = append(p.Speeds, speed)
	}
	for dir := range dirSet {
		p.Directions = append(p.Directions, dir)
	}
	sort.Float64s(p.Speeds)
	sort.Float64s(p.Directions)

	for key, values := range ranges {
		p.cells[key] = stat.Mean(values, nil)
	}
	return p
}

// Mean returns the cell for the given condition, if present.
func (p Pivot) Mean(speed, dir float64) (float64, bool) {
	v, ok := p.cells[pivotKey{speed: speed, dir: dir}]
	return v, ok
}

// Empty reports whether the pivot has no cells.
func (p Pivot) Empty() bool {
	return len(p.cells) == 0
}

// WriteCSV writes the pivot with wind speeds as rows and directions
// as columns; absent combinations are left as empty cells.
func (p Pivot) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write pivot table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"wind_speed"}
	for _, dir := range p.Directions {
		header = append(header, strconv.FormatFloat(dir, 'g', -1, 64))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, speed := range p.Speeds {
		row := []string{strconv.FormatFloat(speed, 'g', -1, 64)}
		for _, dir := range p.Directions {
			if v, ok := p.Mean(speed, dir); ok {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// DispersionStats summarises one group's landing ranges.
type DispersionStats struct {
	GroupKey  string
	Count     int
	MeanRange float64
	StdDev    float64
}

// Dispersion computes per-group landing-range statistics.
func Dispersion(groups []Group, zone landingrange.Evaluator) []DispersionStats {
	out := make([]DispersionStats, 0, len(groups))
	for _, g := range groups {
		values := make([]float64, 0, len(g.Runs))
		for _, run := range g.Runs {
			values = append(values, zone.SignedDistance(run.LandedLatitude, run.LandedLongitude))
		}
		mean, std := stat.MeanStdDev(values, nil)
		if len(values) < 2 {
			std = 0
		}
		out = append(out, DispersionStats{
			GroupKey:  g.Key,
			Count:     len(values),
			MeanRange: mean,
			StdDev:    std,
		})
	}
	return out
}
