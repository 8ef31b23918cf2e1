// Package render turns pipeline results into visual previews. The
// geometry core stays pure; everything that draws lives here.
package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trackmap/internal/geom"
	"github.com/banshee-data/trackmap/internal/track"
)

// SavePreview renders a PNG overview of a reconstruction run: the raw
// recording as a faint scatter, the smoothed centerline as a solid line
// and each gate as a cross-track segment.
func SavePreview(path string, raw []geom.Vec2, centerline []geom.Vec2, gates []track.Gate) error {
	p := plot.New()
	p.Title.Text = "Track Map with Physical Gates"
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Z (m)"
	p.Add(plotter.NewGrid())

	if len(raw) > 0 {
		scatter, err := plotter.NewScatter(toXYs(raw))
		if err != nil {
			return fmt.Errorf("raw scatter: %w", err)
		}
		scatter.GlyphStyle.Radius = vg.Points(1)
		scatter.GlyphStyle.Color = color.RGBA{R: 120, G: 120, B: 220, A: 255}
		p.Add(scatter)
		p.Legend.Add("Raw Data", scatter)
	}

	if len(centerline) > 0 {
		line, err := plotter.NewLine(toXYs(centerline))
		if err != nil {
			return fmt.Errorf("centerline: %w", err)
		}
		line.Color = color.RGBA{R: 220, A: 255}
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add("Smoothed Centerline", line)
	}

	gateColor := color.RGBA{G: 160, A: 255}
	for _, g := range gates {
		seg, err := plotter.NewLine(plotter.XYs{
			{X: g.P1.X, Y: g.P1.Z},
			{X: g.P2.X, Y: g.P2.Z},
		})
		if err != nil {
			return fmt.Errorf("gate %d: %w", g.Index, err)
		}
		seg.Color = gateColor
		seg.Width = vg.Points(2)
		p.Add(seg)
	}

	p.Legend.Top = true
	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

func toXYs(pts []geom.Vec2) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Z}
	}
	return xys
}
