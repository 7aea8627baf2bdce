package wind

import (
	"math"
	"testing"
)

func TestGenerateReferenceScenario(t *testing.T) {
	// Ground wind from 30 degrees at 10 m/s, reference altitude 10m,
	// power exponent 0.14.
	samples := Generate(30, 10, 10, 0.14)
	if len(samples) == 0 {
		t.Fatal("Generate returned no samples")
	}

	for i, s := range samples {
		if s.DirectionDeg != 210.0 {
			t.Fatalf("sample %d direction = %v, want 210.0", i, s.DirectionDeg)
		}
	}

	// Speed at the reference altitude equals the ground speed exactly.
	found := false
	for _, s := range samples {
		if s.AltitudeM == 10.0 {
			found = true
			if s.SpeedMPS != 10.0 {
				t.Errorf("speed at reference altitude = %v, want 10.0", s.SpeedMPS)
			}
		}
	}
	if !found {
		t.Error("no sample at the reference altitude 10m")
	}
}

func TestGenerateAltitudesStrictlyIncreasing(t *testing.T) {
	samples := Generate(120, 5, 10, 0.2)
	for i := 1; i < len(samples); i++ {
		if samples[i].AltitudeM <= samples[i-1].AltitudeM {
			t.Fatalf("altitude not strictly increasing at %d: %v then %v",
				i, samples[i-1].AltitudeM, samples[i].AltitudeM)
		}
	}
	if first := samples[0].AltitudeM; math.Abs(first-0.1) > 1e-12 {
		t.Errorf("first altitude = %v, want 0.1", first)
	}
	if last := samples[len(samples)-1].AltitudeM; last != 10000.0 {
		t.Errorf("last altitude = %v, want 10000.0", last)
	}
}

func TestGenerateSpeedsNonNegative(t *testing.T) {
	testCases := []struct {
		name  string
		speed float64
		alpha float64
	}{
		{"positive_exponent", 10, 0.14},
		{"zero_exponent", 10, 0},
		{"negative_exponent", 10, -0.3},
		{"calm", 0, 0.14},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, s := range Generate(90, tc.speed, 10, tc.alpha) {
				if s.SpeedMPS < 0 {
					t.Fatalf("negative wind speed %v at altitude %v", s.SpeedMPS, s.AltitudeM)
				}
			}
		})
	}
}

func TestGenerateSampleBandDensity(t *testing.T) {
	samples := Generate(0, 10, 10, 0.14)

	var low, high int
	for _, s := range samples {
		switch {
		case s.AltitudeM <= 10.0:
			low++
		case s.AltitudeM >= 1000.0:
			high++
		}
	}
	// 0.1m steps to 10m.
	if low != 100 {
		t.Errorf("low band sample count = %d, want 100", low)
	}
	// 100m steps from 1000m to 10000m inclusive.
	if high != 91 {
		t.Errorf("high band sample count = %d, want 91", high)
	}
}

func TestReciprocalBearing(t *testing.T) {
	testCases := []struct {
		in   float64
		want float64
	}{
		{0, 180},
		{30, 210},
		{180, 360},
		{181, 1},
		{270, 90},
		{359, 179},
	}
	for _, tc := range testCases {
		if got := reciprocalBearing(tc.in); got != tc.want {
			t.Errorf("reciprocalBearing(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
