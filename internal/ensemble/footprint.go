package ensemble

import (
	"math"
	"sort"
)

// Footprint is one group's landing dispersion geometry: the raw
// landed points in (lon, lat) order, and, when the group is large
// enough, a closed boundary ring approximating the dispersion area.
type Footprint struct {
	GroupKey string
	Color    [3]uint8

	Points [][2]float64

	// Ring is the angle-sorted closed boundary, nil when the group
	// has too few points for a polygon and only Points apply.
	Ring [][2]float64
}

// Footprint colour gradient endpoints.
var (
	footprintStartColor = [3]uint8{248, 112, 128}
	footprintEndColor   = [3]uint8{247, 93, 139}
)

// Footprints converts the grouped landed points to renderable
// geometry. Groups of three points or fewer emit individual points;
// larger groups emit a polygon whose boundary orders the points by
// angle around their centroid.
//
// The angle sort is not a true convex hull and can self-intersect for
// non-convex dispersions; it is kept for output compatibility.
func Footprints(groups []Group) []Footprint {
	colors := ColorGradient(footprintStartColor, footprintEndColor, len(groups))

	out := make([]Footprint, 0, len(groups))
	for i, g := range groups {
		fp := Footprint{GroupKey: g.Key, Color: colors[i]}
		for _, run := range g.Runs {
			fp.Points = append(fp.Points, [2]float64{run.LandedLongitude, run.LandedLatitude})
		}
		if len(fp.Points) > 3 {
			fp.Ring = angleSortedRing(fp.Points)
		}
		out = append(out, fp)
	}
	return out
}

// angleSortedRing orders the points by angle around their centroid
// and closes the ring.
func angleSortedRing(points [][2]float64) [][2]float64 {
	var cx, cy float64
	for _, p := range points {
		cx += p[0]
		cy += p[1]
	}
	cx /= float64(len(points))
	cy /= float64(len(points))

	ring := make([][2]float64, len(points))
	copy(ring, points)
	sort.SliceStable(ring, func(i, j int) bool {
		ai := math.Atan2(ring[i][1]-cy, ring[i][0]-cx)
		aj := math.Atan2(ring[j][1]-cy, ring[j][0]-cx)
		return ai < aj
	})
	return append(ring, ring[0])
}

// ColorGradient linearly interpolates RGB between start and end over
// n steps. A single step yields the start colour.
func ColorGradient(start, end [3]uint8, n int) [][3]uint8 {
	if n <= 0 {
		return nil
	}
	out := make([][3]uint8, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		for c := 0; c < 3; c++ {
			v := (1-t)*float64(start[c]) + t*float64(end[c])
			out[i][c] = uint8(math.Round(v))
		}
	}
	return out
}
