// Package chart draws fitness-over-generations plots of a run
package chart

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/maze-runner/genetic/runner"
	"github.com/lixenwraith/maze-runner/ledger"
	"github.com/lixenwraith/maze-runner/parameter"
)

// Point is one generation's plotted values, fitness pairs projected by summing components
type Point struct {
	Generation int
	Best       float64
	BestEver   float64
	Mean       float64
}

func FromRecords(records []runner.Record) []Point {
	points := make([]Point, len(records))
	for i, rec := range records {
		points[i] = Point{
			Generation: rec.Generation,
			Best:       rec.BestScore.Float(),
			BestEver:   rec.BestEverScore.Float(),
			Mean:       rec.Stats.Mean,
		}
	}
	return points
}

func FromLedger(gens []ledger.Generation) []Point {
	points := make([]Point, len(gens))
	for i, g := range gens {
		points[i] = Point{
			Generation: g.Index,
			Best:       float64(g.BestPrimary + g.BestSecondary),
			BestEver:   float64(g.BestEverPrimary + g.BestEverSecondary),
			Mean:       g.Mean,
		}
	}
	return points
}

// Save writes a PNG (or any format plot supports by extension) with best, best-ever and mean lines
func Save(points []Point, title, outPath string) error {
	if len(points) == 0 {
		return errors.New("chart: no generations to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(points))
	everPts := make(plotter.XYs, len(points))
	meanPts := make(plotter.XYs, len(points))
	for i, pt := range points {
		x := float64(pt.Generation)
		bestPts[i] = plotter.XY{X: x, Y: pt.Best}
		everPts[i] = plotter.XY{X: x, Y: pt.BestEver}
		meanPts[i] = plotter.XY{X: x, Y: pt.Mean}
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return err
	}
	everLine, err := plotter.NewLine(everPts)
	if err != nil {
		return err
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return err
	}

	bestLine.Color = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	everLine.Color = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
	everLine.Width = vg.Points(2)
	meanLine.Color = color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff}
	meanLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	p.Add(plotter.NewGrid(), meanLine, bestLine, everLine)
	p.Legend.Add("best ever", everLine)
	p.Legend.Add("generation best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(parameter.ChartWidthInches*vg.Inch, parameter.ChartHeightInches*vg.Inch, outPath)
}
