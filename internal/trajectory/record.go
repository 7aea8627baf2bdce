package trajectory

import "fmt"

// Column names emitted by the flight-dynamics simulator.
const (
	ColTime            = "Time"
	ColLatitude        = "Latitude"
	ColLongitude       = "Longitude"
	ColAltitude        = "Altitude"
	ColAngleOfAttack   = "Angle of Attack"
	ColAngleOfSideslip = "Angle of Sideslip"
	ColTrueVelocity    = "True Velocity"
	ColGroundVelocity  = "Ground Velocity"
	ColXAcceleration   = "X-Acceleration"
	ColYAcceleration   = "Y-Acceleration"
	ColZAcceleration   = "Z-Acceleration"
	ColDynamicPressure = "Dynamic Pressure"
	ColThrust          = "Thrust"
	ColMach            = "Mach"
	ColPitch           = "Pitch"
	ColRoll            = "Roll"
	ColYaw             = "Yaw"
	ColParachuteGain   = "parachute_deploy_gain"
)

// Columns appended by the post-processor. Re-running a pass replaces
// them in place.
const (
	ColTotalAoA     = "Angle of Attack(total)"
	ColGustAoA      = "Angle of Attack(gust)"
	ColGustVelocity = "True Velocity(gust)"
	ColAcceleration = "Acceleration"
)

// TimestepRecord is one row of simulator output.
type TimestepRecord struct {
	Time               float64
	Latitude           float64
	Longitude          float64
	Altitude           float64
	AngleOfAttackDeg   float64
	AngleOfSideslipDeg float64
	TrueVelocity       float64
	GroundVelocity     float64
	XAcceleration      float64
	YAcceleration      float64
	ZAcceleration      float64
	DynamicPressure    float64
	Thrust             float64
	Mach               float64
	PitchDeg           float64
	RollDeg            float64
	YawDeg             float64
	ParachuteGain      float64
}

// Trajectory is the ordered timestep sequence of one simulation run.
type Trajectory []TimestepRecord

// FromTable parses a timestep table into a Trajectory, validating the
// invariants extraction depends on: all required columns present,
// strictly increasing time, at least two records.
func FromTable(t *Table) (Trajectory, error) {
	required := []string{
		ColTime, ColLatitude, ColLongitude, ColAltitude,
		ColAngleOfAttack, ColAngleOfSideslip,
		ColTrueVelocity, ColGroundVelocity,
		ColXAcceleration, ColYAcceleration, ColZAcceleration,
		ColDynamicPressure, ColThrust, ColMach,
		ColPitch, ColRoll, ColYaw, ColParachuteGain,
	}
	for _, name := range required {
		if !t.HasColumn(name) {
			return nil, &MissingColumnError{Column: name}
		}
	}

	traj := make(Trajectory, len(t.Rows))
	for row := range t.Rows {
		rec, err := recordFromRow(t, row)
		if err != nil {
			return nil, err
		}
		traj[row] = rec
	}

	if len(traj) < 2 {
		return nil, ErrTooFewRecords
	}
	for i := 1; i < len(traj); i++ {
		if traj[i].Time <= traj[i-1].Time {
			return nil, fmt.Errorf("%w: rows %d..%d", ErrNonMonotonicTime, i-1, i)
		}
	}
	return traj, nil
}

func recordFromRow(t *Table, row int) (TimestepRecord, error) {
	var rec TimestepRecord
	fields := []struct {
		col string
		dst *float64
	}{
		{ColTime, &rec.Time},
		{ColLatitude, &rec.Latitude},
		{ColLongitude, &rec.Longitude},
		{ColAltitude, &rec.Altitude},
		{ColAngleOfAttack, &rec.AngleOfAttackDeg},
		{ColAngleOfSideslip, &rec.AngleOfSideslipDeg},
		{ColTrueVelocity, &rec.TrueVelocity},
		{ColGroundVelocity, &rec.GroundVelocity},
		{ColXAcceleration, &rec.XAcceleration},
		{ColYAcceleration, &rec.YAcceleration},
		{ColZAcceleration, &rec.ZAcceleration},
		{ColDynamicPressure, &rec.DynamicPressure},
		{ColThrust, &rec.Thrust},
		{ColMach, &rec.Mach},
		{ColPitch, &rec.PitchDeg},
		{ColRoll, &rec.RollDeg},
		{ColYaw, &rec.YawDeg},
		{ColParachuteGain, &rec.ParachuteGain},
	}
	for _, f := range fields {
		v, err := t.Float(row, f.col)
		if err != nil {
			return rec, err
		}
		*f.dst = v
	}
	return rec, nil
}

// TrimFinalInstants drops the rows within the given margin of the
// final timestamp. The simulator's last few records carry ground
// impact transients that would skew the extrema.
func TrimFinalInstants(t *Table, marginS float64) error {
	times, err := t.FloatColumn(ColTime)
	if err != nil {
		return err
	}
	if len(times) == 0 {
		return nil
	}
	max := times[0]
	for _, v := range times[1:] {
		if v > max {
			max = v
		}
	}
	cutoff := max - marginS
	t.FilterRows(func(row int) bool { return times[row] < cutoff })
	return nil
}
