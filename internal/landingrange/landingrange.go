// Package landingrange scores landing points against per-site safety
// zones. A zone is a fixed closed polygon over the sea; the score is
// the signed geodesic distance to the polygon boundary, positive when
// the point is inside the zone.
package landingrange

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/tidwall/geodesic"
)

// Evaluator is the capability a launch site exposes for scoring a
// landing point.
type Evaluator interface {
	// SignedDistance returns the geodesic distance in metres from the
	// point to the site's safety boundary, positive inside the zone
	// and negative outside.
	SignedDistance(lat, lon float64) float64
}

// Registry maps site keys to their evaluators. It is constructed
// explicitly by callers and passed down; there is no package-level
// registry.
type Registry map[string]Evaluator

// ErrUnknownSite is returned when a site key has no registered
// evaluator.
var ErrUnknownSite = errors.New("landingrange: unknown site")

// ErrInvalidPolygon is returned when fewer than three vertices are
// supplied for a polygon zone.
var ErrInvalidPolygon = errors.New("landingrange: polygon needs at least 3 vertices")

// Lookup resolves a site key to its evaluator.
func (r Registry) Lookup(site string) (Evaluator, error) {
	ev, ok := r[site]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSite, site)
	}
	return ev, nil
}

// PolygonZone is an Evaluator backed by a closed ring of vertices.
//
// The ring is stored in (x=lon, y=lat) planar order for the geometric
// operations; all reported distances are ellipsoidal geodesics.
type PolygonZone struct {
	ring orb.Ring
}

// NewPolygonZone builds a zone from (lat, lon) vertex pairs. The ring
// is closed implicitly.
func NewPolygonZone(vertices [][2]float64) (*PolygonZone, error) {
	if len(vertices) < 3 {
		return nil, ErrInvalidPolygon
	}
	ring := make(orb.Ring, 0, len(vertices)+1)
	for _, v := range vertices {
		ring = append(ring, orb.Point{v[1], v[0]})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return &PolygonZone{ring: ring}, nil
}

// Boundary returns the closed ring as (lon, lat) pairs, ready for
// plotting or KML output.
func (z *PolygonZone) Boundary() [][2]float64 {
	out := make([][2]float64, len(z.ring))
	for i, p := range z.ring {
		out[i] = [2]float64{p.Lon(), p.Lat()}
	}
	return out
}

// SignedDistance implements Evaluator.
//
// The containment test is a cheap planar ray cast over the (lon,lat)
// ring; the accurate geodesic distance is then computed only to the
// single nearest boundary point.
func (z *PolygonZone) SignedDistance(lat, lon float64) float64 {
	pt := orb.Point{lon, lat}
	inside := planar.RingContains(z.ring, pt)

	nearest := z.nearestBoundaryPoint(pt)

	var meters float64
	geodesic.WGS84.Inverse(lat, lon, nearest.Lat(), nearest.Lon(), &meters, nil, nil)

	if inside {
		return meters
	}
	return -meters
}

// nearestBoundaryPoint minimises the planar closest-point-on-segment
// distance across all boundary edges.
func (z *PolygonZone) nearestBoundaryPoint(pt orb.Point) orb.Point {
	best := z.ring[0]
	bestDist := planar.DistanceSquared(pt, best)
	for i := 1; i < len(z.ring); i++ {
		cand := closestOnSegment(z.ring[i-1], z.ring[i], pt)
		if d := planar.DistanceSquared(pt, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best
}

// closestOnSegment projects p onto the segment [a,b], clamped to the
// segment's endpoints.
func closestOnSegment(a, b, p orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx == 0 && dy == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / (dx*dx + dy*dy)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}
