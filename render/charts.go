// Package render draws the snapshot histogram and the stability trend
// charts as PNG files.
package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/sartorproj/gostab/distfit"
	"github.com/sartorproj/gostab/robust"
	"github.com/sartorproj/gostab/stability"
	"github.com/sartorproj/gostab/trend"
)

const histogramBins = 30

var (
	colorPurple = drawing.Color{R: 128, G: 0, B: 128, A: 255}
	colorOrange = drawing.Color{R: 255, G: 165, B: 0, A: 255}
)

// Snapshot draws the histogram of the estimate's sample with the fitted
// density curve, the LSL/USL/median lines, and a STAB annotation.
func Snapshot(w io.Writer, estimate *robust.Estimate, indices stability.Indices, referenceSigma float64, title string) error {
	if !estimate.Defined() || estimate.Sample.Len() < 2 {
		return errors.New("render: nothing to draw for an undefined estimate")
	}

	centers, density := histogram(estimate.Sample.Values, histogramBins)

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Used Data",
			XValues: centers,
			YValues: density,
			Style: chart.Style{
				StrokeColor: chart.ColorAlternateGray,
				StrokeWidth: 1,
				FillColor:   chart.ColorAlternateGray.WithAlpha(100),
			},
		},
	}

	var maxDensity float64
	for _, d := range density {
		if d > maxDensity {
			maxDensity = d
		}
	}

	if estimate.Dist != nil {
		lo := estimate.Sample.Min()
		hi := estimate.Sample.Max() * 1.1
		xs, ys := curve(estimate.Dist, lo, hi, 400)
		series = append(series, chart.ContinuousSeries{
			Name:    "Fit: " + estimate.FamilyName,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.ColorRed,
				StrokeWidth: 3,
			},
		})
		for _, y := range ys {
			if y > maxDensity {
				maxDensity = y
			}
		}
	}

	series = append(series,
		vline(estimate.LowerBound, maxDensity, fmt.Sprintf("LSL: %.2f", estimate.LowerBound), chart.ColorBlue),
		vline(estimate.UpperBound, maxDensity, fmt.Sprintf("USL: %.2f", estimate.UpperBound), chart.ColorBlue),
		vline(estimate.Median, maxDensity, fmt.Sprintf("Median: %.2f", estimate.Median), chart.ColorGreen),
	)

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s | σ-STAB %.2f (Ref %.2f) | μ-STAB %.2f | %s", title, indices.SigmaStab, referenceSigma, indices.MuStab, estimate.FamilyName),
		Width:  1000,
		Height: 600,
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// SnapshotFile renders the snapshot chart into a file.
func SnapshotFile(path string, estimate *robust.Estimate, indices stability.Indices, referenceSigma float64, title string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Snapshot(f, estimate, indices, referenceSigma, title)
}

// SigmaTrend draws the σ-STAB trend with its traffic-light limit lines.
func SigmaTrend(w io.Writer, points []trend.Point, title string) error {
	return trendChart(w, points, stability.SigmaStabLimits(), chart.ColorBlue, title+" (σ-STAB)",
		func(p trend.Point) float64 { return p.SigmaStab })
}

// MuTrend draws the μ-STAB trend with its traffic-light limit lines.
func MuTrend(w io.Writer, points []trend.Point, title string) error {
	return trendChart(w, points, stability.MuStabLimits(), colorPurple, title+" (μ-STAB)",
		func(p trend.Point) float64 { return p.MuStab })
}

// TrendFiles renders both trend charts next to each other on disk.
func TrendFiles(sigmaPath, muPath string, points []trend.Point, title string) error {
	f, err := os.Create(sigmaPath)
	if err != nil {
		return err
	}
	if err := SigmaTrend(f, points, title); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	g, err := os.Create(muPath)
	if err != nil {
		return err
	}
	defer g.Close()
	return MuTrend(g, points, title)
}

func trendChart(w io.Writer, points []trend.Point, limits stability.Limits, color drawing.Color, title string, value func(trend.Point) float64) error {
	if len(points) < 2 {
		return errors.New("render: need at least two trend points")
	}

	times := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		times[i] = p.Timestamp
		ys[i] = value(p)
	}
	span := []time.Time{times[0], times[len(times)-1]}

	series := []chart.Series{
		chart.TimeSeries{
			Name:    "Index",
			XValues: times,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
			},
		},
		hline(span, limits.Target, "Target", chart.ColorGreen, false),
		hline(span, limits.Warn, "Warning", colorOrange, true),
		hline(span, limits.Alarm, "Alarm", chart.ColorRed, true),
	}

	graph := chart.Chart{
		Title:  title,
		Width:  1200,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// vline draws a vertical marker as a two-point series spanning the plot height.
func vline(x, height float64, name string, color drawing.Color) chart.Series {
	return chart.ContinuousSeries{
		Name:    name,
		XValues: []float64{x, x},
		YValues: []float64{0, height},
		Style: chart.Style{
			StrokeColor:     color,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5, 5},
		},
	}
}

// hline draws a horizontal limit line across the plotted time range.
func hline(span []time.Time, y float64, name string, color drawing.Color, dashed bool) chart.Series {
	style := chart.Style{
		StrokeColor: color,
		StrokeWidth: 1.5,
	}
	if dashed {
		style.StrokeDashArray = []float64{5, 5}
	}
	return chart.TimeSeries{
		Name:    name,
		XValues: span,
		YValues: []float64{y, y},
		Style:   style,
	}
}

// histogram computes an equal-width density histogram, returning bin
// centers and densities.
func histogram(xs []float64, bins int) (centers, density []float64) {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	if hi <= lo {
		hi = lo + 1
	}

	width := (hi - lo) / float64(bins)
	counts := make([]float64, bins)
	for _, x := range xs {
		idx := int((x - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	centers = make([]float64, bins)
	density = make([]float64, bins)
	norm := float64(len(xs)) * width
	for i := range counts {
		centers[i] = lo + (float64(i)+0.5)*width
		density[i] = counts[i] / norm
	}
	return centers, density
}

// curve samples the fitted density on [lo, hi].
func curve(dist distfit.Distribution, lo, hi float64, n int) (xs, ys []float64) {
	if hi <= lo {
		hi = lo + 1
	}
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	step := (hi - lo) / float64(n-1)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		y := dist.Prob(x)
		if y < 0 || y != y {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
