// Package trend computes the rolling-window evolution of the stability indices.
package trend

import (
	"context"
	"sync"
	"time"

	"github.com/sartorproj/gostab/robust"
	"github.com/sartorproj/gostab/stability"
	"github.com/sartorproj/gostab/timeseries"
)

// Point is one entry of the trend series: the stability indices of the
// window ending just before Timestamp.
type Point struct {
	Timestamp time.Time
	SigmaStab float64
	MuStab    float64
}

// Config holds configuration for trend building.
type Config struct {
	// WindowSize is the fixed number of trailing measurements per window
	// (default: 50).
	WindowSize int
	// Step is the index advance between windows (default: 5).
	Step int
	// UseAbsoluteValues folds each window to absolute values before
	// estimation.
	UseAbsoluteValues bool
	// Subgroups configures the μ-STAB computation. Nil means subgroup
	// size 5 with a 3-subgroup minimum, the rolling-trend convention.
	Subgroups *stability.Config
	// Workers bounds concurrent window evaluation. Values below 2 keep
	// the build sequential. Windows are independent pure computations, so
	// the output is identical either way.
	Workers int
}

// DefaultConfig returns the default trend configuration.
func DefaultConfig() *Config {
	return &Config{
		WindowSize: 50,
		Step:       5,
		Subgroups: &stability.Config{
			SubgroupSize: 5,
			MinSubgroups: 3,
		},
	}
}

// Build slides a fixed-size window over the series and computes fast-mode
// stability indices per window.
//
// The series must already be sorted ascending by timestamp. The first window
// ends at index WindowSize and each subsequent one Step indices later; every
// window covers only measurements strictly before its timestamp. Windows
// whose estimate is undefined (empty after non-finite filtering) are skipped
// silently, so the result may be irregularly spaced.
//
// Build stops between windows when ctx is canceled and returns the context
// error. A non-positive WindowSize or Step panics.
func Build(ctx context.Context, series *timeseries.Series, referenceSigma float64, config *Config) ([]Point, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.WindowSize <= 0 {
		panic("trend: WindowSize must be positive")
	}
	if config.Step <= 0 {
		panic("trend: Step must be positive")
	}
	if config.Subgroups == nil {
		c := *config
		c.Subgroups = &stability.Config{SubgroupSize: 5, MinSubgroups: 3}
		config = &c
	}

	var ends []int
	for i := config.WindowSize; i < series.Len(); i += config.Step {
		ends = append(ends, i)
	}

	if config.Workers > 1 && len(ends) > 1 {
		return buildParallel(ctx, series, referenceSigma, config, ends)
	}

	var points []Point
	for _, end := range ends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p, ok := evalWindow(ctx, series, referenceSigma, config, end); ok {
			points = append(points, p)
		}
	}
	return points, nil
}

// buildParallel evaluates windows concurrently. Results are collected into
// pre-indexed slots and compacted afterwards, so the output order is the
// same timestamp-ascending order the sequential path produces.
func buildParallel(ctx context.Context, series *timeseries.Series, referenceSigma float64, config *Config, ends []int) ([]Point, error) {
	workers := config.Workers
	if workers > len(ends) {
		workers = len(ends)
	}

	slots := make([]*Point, len(ends))
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(ends); i += workers {
				if ctx.Err() != nil {
					return
				}
				if p, ok := evalWindow(ctx, series, referenceSigma, config, ends[i]); ok {
					p := p
					slots[i] = &p
				}
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var points []Point
	for _, p := range slots {
		if p != nil {
			points = append(points, *p)
		}
	}
	return points, nil
}

func evalWindow(ctx context.Context, series *timeseries.Series, referenceSigma float64, config *Config, end int) (Point, bool) {
	window := series.Window(end, config.WindowSize)

	estimate := robust.Compute(ctx, window, robust.Options{
		FitDistribution:   false,
		UseAbsoluteValues: config.UseAbsoluteValues,
	})
	if !estimate.Defined() {
		return Point{}, false
	}

	indices := stability.Compute(estimate, referenceSigma, config.Subgroups)
	return Point{
		Timestamp: series.Timestamps[end],
		SigmaStab: indices.SigmaStab,
		MuStab:    indices.MuStab,
	}, true
}
