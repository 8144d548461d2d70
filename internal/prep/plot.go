package prep

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"topiary/internal/opt"
)

var (
	plotLineColor  = color.RGBA{R: 37, G: 150, B: 190, A: 255}
	plotMarkerShap = draw.SquareGlyph{}
)

const (
	plotH = 4 * vg.Inch
	plotW = 6 * vg.Inch

	maxTicks = 10
)

// WriteSupportLineplot plots summed tree support per round to <prefix>.png.
// records must be in execution order.
func WriteSupportLineplot(records []opt.Record, prefix string) error {
	p := plot.New()
	p.X.Label.Text = "Round"
	p.Y.Label.Text = "Tree Support"
	p.X.Min = 0
	p.X.Max = float64(len(records) - 1)
	p.X.Tick.Marker = plot.TickerFunc(func(_, max float64) []plot.Tick {
		step := 1
		if int(max) > maxTicks {
			step = int(math.Ceil(max / maxTicks))
		}
		ticks := make([]plot.Tick, 0, int(max)/step+2)
		for i := 0; i < int(max)+1; i++ {
			if i%step == 0 {
				ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
			} else {
				ticks = append(ticks, plot.Tick{Value: float64(i)})
			}
		}
		return ticks
	})
	pts := make(plotter.XYs, len(records))
	for i, rec := range records {
		pts[i].X = float64(rec.Round)
		pts[i].Y = rec.Support
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	line.Color = plotLineColor
	line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	points.Color = plotLineColor
	points.Shape = plotMarkerShap
	points.Radius = vg.Points(4)
	p.Add(line, points)
	return p.Save(plotW, plotH, fmt.Sprintf("%s.png", prefix))
}
