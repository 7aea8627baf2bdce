// Package ensemble aggregates many completed simulation runs into
// dispersion summaries: grouped landing footprints, per-condition
// statistics and the wind-speed by wind-direction pivot table.
package ensemble

import (
	"fmt"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/landingrange"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/trajectory"
)

// Condition is the experiment condition varied across the Monte-Carlo
// ensemble.
type Condition struct {
	GroundWindSpeed float64
	GroundWindDir   float64
}

// RunSummary is one row per ensemble member, produced after its
// trajectory has been fully processed.
type RunSummary struct {
	RunID     string
	Condition Condition

	MaxAltitude        float64
	MaxSpeed           float64
	MaxDynamicPressure float64
	LandedLatitude     float64
	LandedLongitude    float64
	LaunchClearSpeed   float64
}

// Summarize reduces one run's trajectory to its summary row.
func Summarize(runID string, traj trajectory.Trajectory, launchClearAltitudeM float64, cond Condition) (RunSummary, error) {
	if len(traj) < 2 {
		return RunSummary{}, trajectory.ErrTooFewRecords
	}

	s := RunSummary{RunID: runID, Condition: cond}

	clearIdx := -1
	for i, rec := range traj {
		if rec.Altitude > s.MaxAltitude {
			s.MaxAltitude = rec.Altitude
		}
		if rec.TrueVelocity > s.MaxSpeed {
			s.MaxSpeed = rec.TrueVelocity
		}
		if rec.DynamicPressure > s.MaxDynamicPressure {
			s.MaxDynamicPressure = rec.DynamicPressure
		}
		if clearIdx < 0 && rec.Altitude > launchClearAltitudeM {
			clearIdx = i
		}
	}
	if clearIdx < 0 {
		return RunSummary{}, fmt.Errorf("run %s: %w", runID, trajectory.ErrLaunchClearNotReached)
	}
	s.LaunchClearSpeed = traj[clearIdx].TrueVelocity

	last := traj[len(traj)-1]
	s.LandedLatitude = last.Latitude
	s.LandedLongitude = last.Longitude
	return s, nil
}

// Group is one partition of the ensemble sharing a condition key.
type Group struct {
	Key  string
	Runs []RunSummary
}

// GroupBy partitions summaries by the given key function. Groups are
// returned in first-seen order so downstream artifacts are stable.
func GroupBy(summaries []RunSummary, keyFn func(RunSummary) string) []Group {
	index := map[string]int{}
	var groups []Group
	for _, s := range summaries {
		key := keyFn(s)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Runs = append(groups[i].Runs, s)
	}
	return groups
}

// ByWindDirection keys a run by its ground wind direction.
func ByWindDirection(s RunSummary) string {
	return fmt.Sprintf("dir_%g", s.Condition.GroundWindDir)
}

// FinalPoint is one landed point scored against the safety zone.
type FinalPoint struct {
	GroupKey        string
	LandedLongitude float64
	LandedLatitude  float64
	LandingRange    float64
}

// FinalPoints flattens the grouped landed points with their signed
// distances. An unknown site degrades to the documented single
// zero-range row rather than failing the whole table.
func FinalPoints(groups []Group, sites landingrange.Registry, site string) []FinalPoint {
	zone, err := sites.Lookup(site)
	if err != nil {
		return []FinalPoint{{}}
	}

	var points []FinalPoint
	for _, g := range groups {
		for _, run := range g.Runs {
			points = append(points, FinalPoint{
				GroupKey:        g.Key,
				LandedLongitude: run.LandedLongitude,
				LandedLatitude:  run.LandedLatitude,
				LandingRange:    zone.SignedDistance(run.LandedLatitude, run.LandedLongitude),
			})
		}
	}
	return points
}
