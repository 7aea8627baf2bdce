package ensemble

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteSummariesCSV writes one row per ensemble member.
func WriteSummariesCSV(path string, summaries []RunSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write summary table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"run_id", "ground_wind_speed", "ground_wind_dir",
		"max_altitude", "max_speed", "max_pressure",
		"landed_latitude", "landed_longitude", "launch_clear_speed",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		row := []string{
			s.RunID,
			fmtF(s.Condition.GroundWindSpeed),
			fmtF(s.Condition.GroundWindDir),
			fmtF(s.MaxAltitude),
			fmtF(s.MaxSpeed),
			fmtF(s.MaxDynamicPressure),
			fmtF(s.LandedLatitude),
			fmtF(s.LandedLongitude),
			fmtF(s.LaunchClearSpeed),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteFinalPointsCSV writes the grouped landed points with their
// signed safety-zone distances.
func WriteFinalPointsCSV(path string, points []FinalPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write final points: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"group_key", "landed_longitude", "landed_latitude", "landing_range"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.GroupKey,
			fmtF(p.LandedLongitude),
			fmtF(p.LandedLatitude),
			fmtF(p.LandingRange),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func fmtF(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
