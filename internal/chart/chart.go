// Package chart renders analytics output as PNG images.
package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"tradetrackr/internal/analytics"
	apperrors "tradetrackr/internal/errors"
)

var (
	lineBlue  = color.RGBA{R: 0, G: 128, B: 255, A: 255}
	fillGreen = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	fillRed   = color.RGBA{R: 218, G: 54, B: 51, A: 255}
)

// SaveEquityCurve renders the equity curve as a line chart. The X axis
// is the trade sequence number, which reads better than wall-clock time
// on sparse journals.
func SaveEquityCurve(curve []analytics.TimeSeriesPoint, initialCapital float64, path string) error {
	if len(curve) == 0 {
		return apperrors.Wrap(apperrors.ErrEmptyDataset, "equity chart")
	}

	pts := make(plotter.XYs, len(curve)+1)
	pts[0].X = 0
	pts[0].Y = initialCapital
	for i, p := range curve {
		pts[i+1].X = float64(i + 1)
		pts[i+1].Y = p.Equity
	}

	p := plot.New()
	p.Title.Text = "Equity Curve"
	p.X.Label.Text = "Trade #"
	p.Y.Label.Text = "Equity"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return apperrors.NewExportError("png", path, err)
	}
	line.Color = lineBlue
	line.Width = vg.Points(2)
	points.Shape = nil

	baseline, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: initialCapital},
		{X: float64(len(curve)), Y: initialCapital},
	})
	if err != nil {
		return apperrors.NewExportError("png", path, err)
	}
	baseline.Color = color.RGBA{R: 128, G: 128, B: 128, A: 160}
	baseline.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}

	p.Add(line, baseline)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return apperrors.NewExportError("png", path, err)
	}
	return nil
}

// SaveDistribution renders the P&L histogram, coloring winning buckets
// green and losing buckets red.
func SaveDistribution(buckets []analytics.Bucket, path string) error {
	if len(buckets) == 0 {
		return apperrors.Wrap(apperrors.ErrEmptyDataset, "distribution chart")
	}

	p := plot.New()
	p.Title.Text = "P&L Distribution"
	p.X.Label.Text = "P&L"
	p.Y.Label.Text = "Trades"
	p.Add(plotter.NewGrid())

	// One single-value bar chart per bucket keeps per-bar colors
	// without a custom plotter.
	width := vg.Points(18)
	for _, b := range buckets {
		bar, err := plotter.NewBarChart(plotter.Values{float64(b.Count)}, width)
		if err != nil {
			return apperrors.NewExportError("png", path, err)
		}
		bar.XMin = (b.Lower + b.Upper) / 2
		if b.Winning {
			bar.Color = fillGreen
		} else {
			bar.Color = fillRed
		}
		bar.LineStyle.Width = 0
		p.Add(bar)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return apperrors.NewExportError("png", path, err)
	}
	return nil
}
