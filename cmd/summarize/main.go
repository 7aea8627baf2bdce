// Command summarize post-processes an ensemble of simulated flights.
//
// It reads a manifest that maps each run's timestep CSV to its wind
// condition, derives the extra flight quantities for every run, and
// writes the per-run tables, extrema CSVs, ensemble summaries, the
// landing-range pivot, footprint geometry (KML), a pivot heatmap
// (HTML) and a dispersion plot (PNG) into the output directory.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/ensemble"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/kmlout"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/landingrange"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/report"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/rundb"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/trajectory"
)

// manifestEntry maps one run file to its wind condition.
type manifestEntry struct {
	RunID     string
	File      string
	WindSpeed float64
	WindDir   float64
}

func main() {
	var runsDir string
	var indexPath string
	var site string
	var outDir string
	var dbPath string
	var elevation float64
	var launcherLength float64
	var pitch float64
	var trimMargin float64

	flag.StringVar(&runsDir, "runs", ".", "directory containing the per-run timestep CSVs")
	flag.StringVar(&indexPath, "index", "index.csv", "manifest CSV (run_id,file,wind_speed,wind_dir)")
	flag.StringVar(&site, "site", landingrange.SiteNoshiroSea, "launch site for landing-range evaluation")
	flag.StringVar(&outDir, "out", "results", "output directory")
	flag.StringVar(&dbPath, "db", "", "optional sqlite path to persist run summaries")
	flag.Float64Var(&elevation, "elevation", 0, "launch site elevation in metres")
	flag.Float64Var(&launcherLength, "launcher-length", 5, "launcher rail length in metres")
	flag.Float64Var(&pitch, "pitch", 70, "launcher elevation angle in degrees")
	flag.Float64Var(&trimMargin, "trim", 0.01, "seconds of post-landing data to discard")
	flag.Parse()

	sites := landingrange.DefaultSites()
	zone, err := sites.Lookup(site)
	if err != nil {
		log.Fatalf("unknown site %q: %v", site, err)
	}

	entries, err := readManifest(indexPath)
	if err != nil {
		log.Fatalf("read manifest: %v", err)
	}
	if len(entries) == 0 {
		log.Fatalf("manifest %s lists no runs", indexPath)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	geom := trajectory.LaunchGeometry{
		ElevationM:     elevation,
		LauncherLength: launcherLength,
		PitchDeg:       pitch,
	}
	clearAlt := geom.ClearAltitude()

	var store *rundb.DB
	if dbPath != "" {
		store, err = rundb.Open(dbPath)
		if err != nil {
			log.Fatalf("open run db: %v", err)
		}
		defer store.Close()
		if err := store.MigrateUp(); err != nil {
			log.Fatalf("migrate run db: %v", err)
		}
	}

	paths := kmlout.NewGenerator()
	summaries := make([]ensemble.RunSummary, 0, len(entries))
	for _, e := range entries {
		s, err := processRun(e, runsDir, outDir, clearAlt, zone, trimMargin, paths)
		if err != nil {
			log.Fatalf("run %s: %v", e.RunID, err)
		}
		summaries = append(summaries, s)
		if store != nil {
			if _, err := store.InsertRunSummary(s); err != nil {
				log.Fatalf("persist run %s: %v", e.RunID, err)
			}
		}
	}

	if err := ensemble.WriteSummariesCSV(filepath.Join(outDir, "summaries.csv"), summaries); err != nil {
		log.Fatalf("write summaries: %v", err)
	}

	groups := ensemble.GroupBy(summaries, ensemble.ByWindDirection)
	footprints := ensemble.Footprints(groups)

	points := ensemble.FinalPoints(groups, sites, site)
	if err := ensemble.WriteFinalPointsCSV(filepath.Join(outDir, "final_points.csv"), points); err != nil {
		log.Fatalf("write final points: %v", err)
	}

	pivot := ensemble.BuildPivot(summaries, sites, site)
	if err := pivot.WriteCSV(filepath.Join(outDir, "pivot.csv")); err != nil {
		log.Fatalf("write pivot: %v", err)
	}

	heat, err := os.Create(filepath.Join(outDir, "pivot.html"))
	if err != nil {
		log.Fatalf("create heatmap: %v", err)
	}
	if err := report.WritePivotHeatmap(heat, pivot, "Landing Range"); err != nil {
		log.Fatalf("render heatmap: %v", err)
	}
	heat.Close()

	var boundary [][2]float64
	if pz, ok := zone.(*landingrange.PolygonZone); ok {
		boundary = pz.Boundary()
	}
	if err := report.SaveDispersionScatter(filepath.Join(outDir, "dispersion.png"), footprints, boundary); err != nil {
		log.Fatalf("render dispersion plot: %v", err)
	}

	if err := writeMapKML(outDir, paths, footprints, boundary); err != nil {
		log.Fatalf("write kml: %v", err)
	}

	log.Printf("processed %d runs across %d wind groups into %s", len(summaries), len(groups), outDir)
}

// processRun derives and writes the per-run artifacts and returns the
// run's ensemble summary.
func processRun(e manifestEntry, runsDir, outDir string, clearAlt float64, zone landingrange.Evaluator, trimMargin float64, paths *kmlout.Generator) (ensemble.RunSummary, error) {
	var zero ensemble.RunSummary

	table, err := trajectory.ReadTable(filepath.Join(runsDir, e.File))
	if err != nil {
		return zero, err
	}
	if err := trajectory.TrimFinalInstants(table, trimMargin); err != nil {
		return zero, err
	}
	traj, err := trajectory.FromTable(table)
	if err != nil {
		return zero, err
	}

	derived, extrema, err := trajectory.Extract(traj, clearAlt, zone)
	if err != nil {
		return zero, err
	}

	if err := trajectory.AppendDerivedColumns(table, derived); err != nil {
		return zero, err
	}
	if err := table.WriteFile(filepath.Join(outDir, e.RunID+"_derived.csv")); err != nil {
		return zero, err
	}
	if err := trajectory.WriteExtremaCSV(filepath.Join(outDir, e.RunID+"_extrema.csv"), extrema); err != nil {
		return zero, err
	}

	line := make([][3]float64, len(traj))
	track := make([][2]float64, len(traj))
	for i, rec := range traj {
		line[i] = [3]float64{rec.Longitude, rec.Latitude, rec.Altitude}
		track[i] = [2]float64{rec.Longitude, rec.Latitude}
	}
	paths.AddFlightPath(line, e.RunID, [3]uint8{255, 255, 255}, kmlout.DefaultLineWidth)
	paths.AddGroundTrack(track, e.RunID+" (ground)", [3]uint8{255, 255, 255}, kmlout.DefaultLineWidth)

	cond := ensemble.Condition{GroundWindSpeed: e.WindSpeed, GroundWindDir: e.WindDir}
	return ensemble.Summarize(e.RunID, traj, clearAlt, cond)
}

// writeMapKML writes the flight paths and footprints as separate KML
// files, then merges them into a single map.kml.
func writeMapKML(outDir string, paths *kmlout.Generator, footprints []ensemble.Footprint, boundary [][2]float64) error {
	zones := kmlout.NewGenerator()
	if len(boundary) > 0 {
		zones.AddGroundTrack(boundary, "site boundary", [3]uint8{96, 96, 96}, 2)
	}
	for _, fp := range footprints {
		ring := fp.Ring
		if ring == nil {
			ring = fp.Points
		}
		zones.AddFootprint(ring, fp.GroupKey, fp.Color, kmlout.DefaultLineWidth)
	}

	pathsFile := filepath.Join(outDir, "flight_paths.kml")
	zonesFile := filepath.Join(outDir, "footprints.kml")
	if err := paths.Save(pathsFile); err != nil {
		return err
	}
	if err := zones.Save(zonesFile); err != nil {
		return err
	}

	first, err := os.ReadFile(pathsFile)
	if err != nil {
		return err
	}
	second, err := os.ReadFile(zonesFile)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "map.kml"), kmlout.MergeDocuments(first, second), 0644)
}

// readManifest parses the run index CSV. The header must name at
// least run_id, file, wind_speed and wind_dir.
func readManifest(path string) ([]manifestEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("manifest has no data rows")
	}

	col := map[string]int{}
	for i, name := range rows[0] {
		col[name] = i
	}
	for _, name := range []string{"run_id", "file", "wind_speed", "wind_dir"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("manifest missing column %q", name)
		}
	}

	entries := make([]manifestEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		speed, err := strconv.ParseFloat(row[col["wind_speed"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad wind_speed: %w", i+2, err)
		}
		dir, err := strconv.ParseFloat(row[col["wind_dir"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad wind_dir: %w", i+2, err)
		}
		entries = append(entries, manifestEntry{
			RunID:     row[col["run_id"]],
			File:      row[col["file"]],
			WindSpeed: speed,
			WindDir:   dir,
		})
	}
	return entries, nil
}
