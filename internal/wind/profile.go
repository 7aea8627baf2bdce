// Package wind generates vertical wind profiles for the simulator
// input side. The profile is a non-uniform altitude sampling with a
// power-law speed model: dense near the ground where shear dominates
// flight dynamics, sparse at cruise altitude.
package wind

import (
	"math"
	"sort"
)

// AltitudeSample is one row of a generated wind table.
type AltitudeSample struct {
	AltitudeM    float64
	SpeedMPS     float64
	DirectionDeg float64
}

// Altitude sampling bands. Fine linear steps up to 10m, logarithmic
// points to 1000m, coarse 100m steps to 10000m.
const (
	lowStepM    = 0.1
	lowMaxM     = 10.0
	logPoints   = 300
	logMinM     = 10.0
	logMaxM     = 1000.0
	highStepM   = 100.0
	highMaxM    = 10000.0
	dedupEpsilon = 1e-9
)

// Generate produces the altitude-indexed wind table for the given
// ground conditions. Speed follows V(h) = V_ref * (h/H_ref)^alpha;
// direction is constant with altitude and stores the bearing the wind
// blows toward (the reciprocal of the "from" convention of the input).
func Generate(groundDirDeg, groundSpeedMPS, refAltitudeM, powerExponent float64) []AltitudeSample {
	altitudes := sampleAltitudes()

	direction := reciprocalBearing(groundDirDeg)

	samples := make([]AltitudeSample, 0, len(altitudes))
	for i, h := range altitudes {
		term := math.Pow(h/refAltitudeM, powerExponent)
		if i == 0 && h == 0 {
			// 0^alpha is a singularity for alpha<0 and ambiguous for
			// alpha==0; pin the ground sample explicitly.
			if powerExponent > 0 {
				term = 0
			} else {
				term = 1
			}
		}
		samples = append(samples, AltitudeSample{
			AltitudeM:    h,
			SpeedMPS:     groundSpeedMPS * term,
			DirectionDeg: direction,
		})
	}
	return samples
}

// sampleAltitudes unions the three sampling bands, removes duplicates
// and returns the altitudes sorted ascending.
func sampleAltitudes() []float64 {
	var alts []float64

	steps := int(math.Round(lowMaxM / lowStepM))
	for i := 1; i <= steps; i++ {
		alts = append(alts, float64(i)*lowStepM)
	}

	logLo := math.Log10(logMinM)
	logHi := math.Log10(logMaxM)
	for i := 0; i < logPoints; i++ {
		exp := logLo + (logHi-logLo)*float64(i)/float64(logPoints-1)
		alts = append(alts, math.Pow(10, exp))
	}

	for h := logMaxM; h <= highMaxM; h += highStepM {
		alts = append(alts, h)
	}

	sort.Float64s(alts)

	out := alts[:0]
	for _, h := range alts {
		if len(out) > 0 && h-out[len(out)-1] < dedupEpsilon {
			continue
		}
		out = append(out, h)
	}
	return out
}

// reciprocalBearing flips a wind "from" direction into the bearing the
// wind blows toward.
func reciprocalBearing(dirDeg float64) float64 {
	if dirDeg > 180 {
		return dirDeg - 180
	}
	return dirDeg + 180
}
