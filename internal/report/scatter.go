package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/ensemble"
)

// SaveDispersionScatter writes a PNG of the landed points, one colour
// per footprint group, with the site boundary drawn underneath when
// provided. boundary is a closed (lon, lat) ring; pass nil to skip it.
func SaveDispersionScatter(path string, footprints []ensemble.Footprint, boundary [][2]float64) error {
	p := plot.New()
	p.Title.Text = "Landing Dispersion"
	p.X.Label.Text = "Longitude (deg)"
	p.Y.Label.Text = "Latitude (deg)"

	if len(boundary) > 1 {
		pts := make(plotter.XYs, len(boundary))
		for i, b := range boundary {
			pts[i].X = b[0]
			pts[i].Y = b[1]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("boundary line: %w", err)
		}
		line.Width = vg.Points(1)
		line.Color = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
		p.Add(line)
		p.Legend.Add("site boundary", line)
	}

	for _, fp := range footprints {
		if len(fp.Points) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(fp.Points))
		for i, pt := range fp.Points {
			pts[i].X = pt[0]
			pts[i].Y = pt[1]
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter for %s: %w", fp.GroupKey, err)
		}
		sc.GlyphStyle.Radius = vg.Points(3)
		sc.GlyphStyle.Color = color.RGBA{R: fp.Color[0], G: fp.Color[1], B: fp.Color[2], A: 0xff}
		p.Add(sc)
		p.Legend.Add(fp.GroupKey, sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save dispersion plot: %w", err)
	}
	return nil
}
