// Package report renders the ensemble-level result artifacts: an
// interactive heatmap of the landing-range pivot and a static landing
// dispersion plot.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/ensemble"
)

// WritePivotHeatmap renders the pivot table as a standalone HTML
// heatmap. Wind direction runs along the x axis, wind speed along the
// y axis; combinations with no runs are left blank.
func WritePivotHeatmap(w io.Writer, p ensemble.Pivot, title string) error {
	xLabels := make([]string, len(p.Directions))
	for i, d := range p.Directions {
		xLabels[i] = fmt.Sprintf("%g", d)
	}
	yLabels := make([]string, len(p.Speeds))
	for i, s := range p.Speeds {
		yLabels[i] = fmt.Sprintf("%g", s)
	}

	minV := math.Inf(1)
	maxV := math.Inf(-1)
	var data []opts.HeatMapData
	for yi, speed := range p.Speeds {
		for xi, dir := range p.Directions {
			v, ok := p.Mean(speed, dir)
			if !ok {
				continue
			}
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, yi, v}})
		}
	}
	if len(data) == 0 {
		minV, maxV = 0, 1
	}
	if minV == maxV {
		maxV = minV + 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "mean landing range (m) per wind condition"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type:      "category",
			Name:      "Wind direction (deg)",
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:      "category",
			Name:      "Wind speed (m/s)",
			Data:      yLabels,
			SplitArea: &opts.SplitArea{Show: opts.Bool(true)},
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(minV),
			Max:        float32(maxV),
			InRange:    &opts.VisualMapInRange{Color: []string{"#d73027", "#fee090", "#1a9850"}},
		}),
	)

	hm.SetXAxis(xLabels).AddSeries("landing range", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	return hm.Render(w)
}
