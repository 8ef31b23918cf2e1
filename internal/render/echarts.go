package render

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/trackmap/internal/geom"
	"github.com/banshee-data/trackmap/internal/track"
)

// WriteHTML renders an interactive scatter of the centerline and gate
// endpoints to a self-contained HTML file. Handy for zooming into a
// corner without regenerating the PNG.
func WriteHTML(path string, centerline []geom.Vec2, gates []track.Gate) error {
	// Square plot with symmetric padding so the track keeps its aspect
	// ratio.
	maxAbs := 0.0
	for _, pt := range centerline {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(pt.X), math.Abs(pt.Z)))
	}
	for _, g := range gates {
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(g.P1.X), math.Abs(g.P1.Z)))
		maxAbs = math.Max(maxAbs, math.Max(math.Abs(g.P2.X), math.Abs(g.P2.Z)))
	}
	pad := maxAbs * 1.05
	if pad == 0 {
		pad = 1.0
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Track Map", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Track Map", Subtitle: fmt.Sprintf("centerline=%d samples gates=%d", len(centerline), len(gates))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -pad, Max: pad, Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: -pad, Max: pad, Name: "Z (m)", NameLocation: "middle", NameGap: 30}),
	)

	line := make([]opts.ScatterData, len(centerline))
	for i, pt := range centerline {
		line[i] = opts.ScatterData{Value: []interface{}{pt.X, pt.Z}}
	}
	scatter.AddSeries("centerline", line, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 2}))

	ends := make([]opts.ScatterData, 0, 2*len(gates))
	for _, g := range gates {
		ends = append(ends,
			opts.ScatterData{Value: []interface{}{g.P1.X, g.P1.Z}},
			opts.ScatterData{Value: []interface{}{g.P2.X, g.P2.Z}},
		)
	}
	scatter.AddSeries("gate endpoints", ends, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 5}))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
