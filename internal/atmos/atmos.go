// Package atmos provides the International Standard Atmosphere
// troposphere model used to annotate trajectory records with ambient
// temperature and pressure.
package atmos

import "math"

// Sea-level reference values for the ISA troposphere.
const (
	SeaLevelTemperatureC = 15.0
	SeaLevelPressureHPa  = 1013.25
	SeaLevelTemperatureK = 288.15

	// Temperature lapse, degrees C per metre of altitude.
	lapseRate = 0.0065

	// Exponent of the barometric formula (g*M / R*L).
	pressureExponent = 5.256
)

// TemperatureC returns the ISA air temperature in degrees Celsius at
// the given altitude in metres.
func TemperatureC(altitudeM float64) float64 {
	return SeaLevelTemperatureC - 6.5*(altitudeM/1000.0)
}

// PressureHPa returns the ISA static pressure in hectopascals at the
// given altitude in metres.
func PressureHPa(altitudeM float64) float64 {
	return SeaLevelPressureHPa * math.Pow((SeaLevelTemperatureK-lapseRate*altitudeM)/SeaLevelTemperatureK, pressureExponent)
}
