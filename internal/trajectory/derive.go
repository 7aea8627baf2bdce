package trajectory

import (
	"math"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/atmos"
)

// GustSpeedMPS is the fixed lateral gust used for the worst-case
// angle-of-attack increment.
const GustSpeedMPS = 9.0

// DerivedRecord extends a TimestepRecord with the computed quantities
// the extrema are defined over. Materialised per extraction call;
// never persisted on its own.
type DerivedRecord struct {
	TimestepRecord

	TotalAoADeg     float64
	GustAoADeg      float64
	GustVelocity    float64
	AccelerationMag float64
	TemperatureC    float64
	PressureHPa     float64
	WindSpeed       float64

	// LoadMetric is dynamic pressure times total AoA in degrees, a
	// proxy for aerodynamic structural load. It flags a distinct
	// extremum from max dynamic pressure alone.
	LoadMetric float64
}

// Derive computes the full derived-record sequence for a trajectory.
func Derive(traj Trajectory) []DerivedRecord {
	out := make([]DerivedRecord, len(traj))
	for i, rec := range traj {
		out[i] = deriveRecord(rec)
	}
	return out
}

func deriveRecord(rec TimestepRecord) DerivedRecord {
	alpha := rec.AngleOfAttackDeg * math.Pi / 180
	beta := rec.AngleOfSideslipDeg * math.Pi / 180
	vtrue := rec.TrueVelocity

	d := DerivedRecord{TimestepRecord: rec}

	d.TotalAoADeg = degrees(math.Acos(math.Cos(alpha) * math.Cos(beta)))

	gustDenom := math.Sqrt(vtrue*vtrue + GustSpeedMPS*GustSpeedMPS*math.Cos(beta)*math.Cos(beta))
	gustCos := math.Cos(beta) * (vtrue*math.Cos(alpha) - GustSpeedMPS*math.Sin(beta)) / gustDenom
	d.GustAoADeg = degrees(math.Acos(clampCos(gustCos)))

	d.GustVelocity = vtrue + GustSpeedMPS*math.Sin(beta)

	d.AccelerationMag = math.Sqrt(rec.XAcceleration*rec.XAcceleration +
		rec.YAcceleration*rec.YAcceleration +
		rec.ZAcceleration*rec.ZAcceleration)

	d.TemperatureC = atmos.TemperatureC(rec.Altitude)
	d.PressureHPa = atmos.PressureHPa(rec.Altitude)

	d.WindSpeed = math.Abs(rec.TrueVelocity - rec.GroundVelocity)

	d.LoadMetric = rec.DynamicPressure * d.TotalAoADeg

	return d
}

// AppendDerivedColumns writes the derived quantities back into the
// timestep table, accumulating schema across extraction passes.
func AppendDerivedColumns(t *Table, derived []DerivedRecord) error {
	n := len(derived)
	total := make([]float64, n)
	gust := make([]float64, n)
	gustV := make([]float64, n)
	accel := make([]float64, n)
	for i, d := range derived {
		total[i] = d.TotalAoADeg
		gust[i] = d.GustAoADeg
		gustV[i] = d.GustVelocity
		accel[i] = d.AccelerationMag
	}
	for _, col := range []struct {
		name   string
		values []float64
	}{
		{ColTotalAoA, total},
		{ColGustAoA, gust},
		{ColGustVelocity, gustV},
		{ColAcceleration, accel},
	} {
		if err := t.SetFloatColumn(col.name, col.values); err != nil {
			return err
		}
	}
	return nil
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// clampCos guards Acos against arguments nudged out of [-1,1] by
// floating-point error.
func clampCos(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
