package trajectory

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"

	"github.com/tidwall/geodesic"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/landingrange"
)

// ExtremumKind names a flight-critical event singled out of a
// trajectory.
type ExtremumKind string

const (
	ExtInitialPoint       ExtremumKind = "initial_point"
	ExtLaunchClear        ExtremumKind = "launch_clear"
	ExtMaxSpeed           ExtremumKind = "max_speed"
	ExtMaxDynamicPressure ExtremumKind = "max_dynamic_pressure"
	ExtMaxAcceleration    ExtremumKind = "max_acceleration"
	ExtMaxLoadMetric      ExtremumKind = "max_load_metric"
	ExtMaxAltitude        ExtremumKind = "max_altitude"
	ExtFinalPoint         ExtremumKind = "final_point"
	ExtParachuteDeploy    ExtremumKind = "parachute_deploy"
	ExtMaxThrust          ExtremumKind = "max_thrust"
)

// ExtremaOrder is the fixed row order of the output table.
var ExtremaOrder = []ExtremumKind{
	ExtInitialPoint,
	ExtLaunchClear,
	ExtMaxSpeed,
	ExtMaxDynamicPressure,
	ExtMaxAcceleration,
	ExtMaxLoadMetric,
	ExtMaxAltitude,
	ExtFinalPoint,
	ExtParachuteDeploy,
	ExtMaxThrust,
}

// ExtremaPoint is one named extremum: the defining metric value, the
// full derived snapshot at that index, and its position relative to
// the launch point and the safety zone. Immutable once produced.
type ExtremaPoint struct {
	Kind   ExtremumKind
	Index  int
	Metric string
	Value  float64

	Record DerivedRecord

	// Offsets from the initial point: geodesic distance along fixed
	// longitude (north) and fixed latitude (east), signed.
	NorthM float64
	EastM  float64
	RangeM float64

	// Signed distance to the safety zone at this point.
	LandingRange float64
}

// LaunchGeometry holds the launcher parameters that define the
// launch-clear altitude.
type LaunchGeometry struct {
	ElevationM     float64
	LauncherLength float64
	PitchDeg       float64
}

// ClearAltitude is the altitude the vehicle must exceed to have left
// the launcher.
func (g LaunchGeometry) ClearAltitude() float64 {
	return g.ElevationM + g.LauncherLength*math.Sin(g.PitchDeg*math.Pi/180)
}

// Extract derives the full record sequence and locates the fixed set
// of named extrema. The safety zone evaluator is required; a run
// without one cannot be scored.
func Extract(traj Trajectory, launchClearAltitudeM float64, zone landingrange.Evaluator) ([]DerivedRecord, []ExtremaPoint, error) {
	if len(traj) < 2 {
		return nil, nil, ErrTooFewRecords
	}
	if zone == nil {
		return nil, nil, landingrange.ErrUnknownSite
	}

	derived := Derive(traj)

	launchClearIdx := -1
	for i, d := range derived {
		if d.Altitude > launchClearAltitudeM {
			launchClearIdx = i
			break
		}
	}
	if launchClearIdx < 0 {
		return nil, nil, fmt.Errorf("%w: threshold %.2fm, apogee %.2fm",
			ErrLaunchClearNotReached, launchClearAltitudeM, maxAltitude(derived))
	}

	type pick struct {
		kind   ExtremumKind
		metric string
		index  int
		value  func(DerivedRecord) float64
	}
	picks := []pick{
		{ExtInitialPoint, "altitude", 0, func(d DerivedRecord) float64 { return d.Altitude }},
		{ExtLaunchClear, "altitude", launchClearIdx, func(d DerivedRecord) float64 { return d.Altitude }},
		{ExtMaxSpeed, "true_velocity", argmax(derived, func(d DerivedRecord) float64 { return d.TrueVelocity }), func(d DerivedRecord) float64 { return d.TrueVelocity }},
		{ExtMaxDynamicPressure, "dynamic_pressure", argmax(derived, func(d DerivedRecord) float64 { return d.DynamicPressure }), func(d DerivedRecord) float64 { return d.DynamicPressure }},
		{ExtMaxAcceleration, "acceleration", argmax(derived, func(d DerivedRecord) float64 { return d.AccelerationMag }), func(d DerivedRecord) float64 { return d.AccelerationMag }},
		{ExtMaxLoadMetric, "load_metric", argmax(derived, func(d DerivedRecord) float64 { return d.LoadMetric }), func(d DerivedRecord) float64 { return d.LoadMetric }},
		{ExtMaxAltitude, "altitude", argmax(derived, func(d DerivedRecord) float64 { return d.Altitude }), func(d DerivedRecord) float64 { return d.Altitude }},
		{ExtFinalPoint, "altitude", len(derived) - 1, func(d DerivedRecord) float64 { return d.Altitude }},
		{ExtParachuteDeploy, "parachute_deploy_gain", argmax(derived, func(d DerivedRecord) float64 { return d.ParachuteGain }), func(d DerivedRecord) float64 { return d.ParachuteGain }},
		{ExtMaxThrust, "thrust", argmax(derived, func(d DerivedRecord) float64 { return d.Thrust }), func(d DerivedRecord) float64 { return d.Thrust }},
	}

	origin := derived[0]
	points := make([]ExtremaPoint, 0, len(picks))
	for _, p := range picks {
		rec := derived[p.index]
		north, east, rng := offsetsFrom(origin.Latitude, origin.Longitude, rec.Latitude, rec.Longitude)
		points = append(points, ExtremaPoint{
			Kind:         p.kind,
			Index:        p.index,
			Metric:       p.metric,
			Value:        p.value(rec),
			Record:       rec,
			NorthM:       north,
			EastM:        east,
			RangeM:       rng,
			LandingRange: zone.SignedDistance(rec.Latitude, rec.Longitude),
		})
	}
	return derived, points, nil
}

// offsetsFrom returns the signed north/east geodesic offsets and the
// direct geodesic range from (lat1,lon1) to (lat2,lon2). The offsets
// hold one coordinate fixed, matching the equirectangular convention
// of the dispersion tables.
func offsetsFrom(lat1, lon1, lat2, lon2 float64) (north, east, rng float64) {
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &rng, nil, nil)

	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon1, &north, nil, nil)
	if lat2 < lat1 {
		north = -north
	}

	geodesic.WGS84.Inverse(lat1, lon1, lat1, lon2, &east, nil, nil)
	if lon2 < lon1 {
		east = -east
	}
	return north, east, rng
}

func argmax(records []DerivedRecord, value func(DerivedRecord) float64) int {
	best := 0
	bestV := value(records[0])
	for i := 1; i < len(records); i++ {
		if v := value(records[i]); v > bestV {
			best, bestV = i, v
		}
	}
	return best
}

func maxAltitude(records []DerivedRecord) float64 {
	return records[argmax(records, func(d DerivedRecord) float64 { return d.Altitude })].Altitude
}

// extremaHeader is the column layout of the extrema feature table.
var extremaHeader = []string{
	"extrema_type", "extrema_value", "time", "thrust", "acceleration",
	"dynamic_pressure", "angle_of_attack_gust", "angle_of_attack_total",
	"true_velocity", "altitude", "temperature", "pressure",
	"latitude", "longitude", "lat_m", "long_m", "range_m", "landing_range",
}

// WriteExtremaCSV writes the extrema feature table, one row per named
// extremum.
func WriteExtremaCSV(path string, points []ExtremaPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write extrema table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(extremaHeader); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			string(p.Kind),
			formatFloat(p.Value),
			formatFloat(p.Record.Time),
			formatFloat(p.Record.Thrust),
			formatFloat(p.Record.AccelerationMag),
			formatFloat(p.Record.DynamicPressure),
			formatFloat(p.Record.GustAoADeg),
			formatFloat(p.Record.TotalAoADeg),
			formatFloat(p.Record.TrueVelocity),
			formatFloat(p.Record.Altitude),
			formatFloat(p.Record.TemperatureC),
			formatFloat(p.Record.PressureHPa),
			formatFloat(p.Record.Latitude),
			formatFloat(p.Record.Longitude),
			formatFloat(p.NorthM),
			formatFloat(p.EastM),
			formatFloat(p.RangeM),
			formatFloat(p.LandingRange),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

