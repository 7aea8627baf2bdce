// Package kmlout renders trajectory and dispersion geometry as KML
// artifacts: flight-path polylines, landed-point markers and group
// footprint polygons.
package kmlout

import (
	"fmt"
	"image/color"
	"io"
	"os"

	kml "github.com/twpayne/go-kml/v2"
)

// DefaultLineWidth is the stroke width for lines and polygon
// outlines.
const DefaultLineWidth = 3

// Generator accumulates placemarks into a single KML document.
type Generator struct {
	doc *kml.CompoundElement
}

// NewGenerator returns an empty document.
func NewGenerator() *Generator {
	return &Generator{doc: kml.Document()}
}

// AddPoint adds a point placemark at (lon, lat). A nil colour hides
// the icon so only the position is recorded.
func (g *Generator) AddPoint(lon, lat float64, name string, rgb *[3]uint8) {
	var iconStyle kml.Element
	if rgb != nil {
		iconStyle = kml.IconStyle(kml.Color(rgba(*rgb)))
	} else {
		iconStyle = kml.IconStyle(kml.Scale(0))
	}
	g.doc.Add(kml.Placemark(
		kml.Name(name),
		kml.Style(iconStyle),
		kml.Point(kml.Coordinates(kml.Coordinate{Lon: lon, Lat: lat})),
	))
}

// AddGroundTrack adds a 2D polyline clamped to the ground.
func (g *Generator) AddGroundTrack(points [][2]float64, name string, rgb [3]uint8, width float64) {
	coords := make([]kml.Coordinate, len(points))
	for i, p := range points {
		coords[i] = kml.Coordinate{Lon: p[0], Lat: p[1]}
	}
	g.addLine(coords, name, rgb, width, kml.AltitudeModeClampToGround)
}

// AddFlightPath adds a 3D polyline rendered relative to the ground.
// Points are (lon, lat, altitude m).
func (g *Generator) AddFlightPath(points [][3]float64, name string, rgb [3]uint8, width float64) {
	coords := make([]kml.Coordinate, len(points))
	for i, p := range points {
		coords[i] = kml.Coordinate{Lon: p[0], Lat: p[1], Alt: p[2]}
	}
	g.addLine(coords, name, rgb, width, kml.AltitudeModeRelativeToGround)
}

func (g *Generator) addLine(coords []kml.Coordinate, name string, rgb [3]uint8, width float64, mode kml.AltitudeModeEnum) {
	g.doc.Add(kml.Placemark(
		kml.Name(name),
		kml.Style(kml.LineStyle(kml.Color(rgba(rgb)), kml.Width(width))),
		kml.LineString(
			kml.AltitudeMode(mode),
			kml.Coordinates(coords...),
		),
	))
}

// AddFootprint adds a ground-clamped polygon outline for a closed
// (lon, lat) ring. Rings with fewer than three distinct vertices fall
// back to point markers.
func (g *Generator) AddFootprint(ring [][2]float64, name string, rgb [3]uint8, width float64) {
	if len(ring) < 4 { // 3 vertices + closing vertex
		for _, p := range ring {
			g.AddPoint(p[0], p[1], name, &rgb)
		}
		return
	}
	coords := make([]kml.Coordinate, len(ring))
	for i, p := range ring {
		coords[i] = kml.Coordinate{Lon: p[0], Lat: p[1]}
	}
	g.doc.Add(kml.Placemark(
		kml.Name(name),
		kml.Style(
			kml.LineStyle(kml.Color(rgba(rgb)), kml.Width(width)),
			kml.PolyStyle(kml.Fill(false), kml.Outline(true)),
		),
		kml.Polygon(
			kml.AltitudeMode(kml.AltitudeModeClampToGround),
			kml.OuterBoundaryIs(kml.LinearRing(kml.Coordinates(coords...))),
		),
	))
}

// Write emits the document as indented KML.
func (g *Generator) Write(w io.Writer) error {
	return kml.KML(g.doc).WriteIndent(w, "", "  ")
}

// Save writes the document to a file.
func (g *Generator) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save kml: %w", err)
	}
	defer f.Close()
	return g.Write(f)
}

func rgba(rgb [3]uint8) color.Color {
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}
