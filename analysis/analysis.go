// Package analysis orchestrates per-characteristic stability analysis:
// outlier cleaning, the global sigma reference, and per-horizon snapshot
// and trend computation.
package analysis

import (
	"context"
	"errors"

	"github.com/sartorproj/gostab/outliers"
	"github.com/sartorproj/gostab/robust"
	"github.com/sartorproj/gostab/stability"
	"github.com/sartorproj/gostab/timeseries"
	"github.com/sartorproj/gostab/trend"
)

// ErrTooFewSamples indicates a characteristic or horizon has fewer
// measurements than Settings.MinSamples; the caller should skip it.
var ErrTooFewSamples = errors.New("analysis: too few samples")

// Snapshot is the analysis of one reporting horizon: an exact-mode robust
// estimate, its stability indices, and the fast-mode rolling trend.
type Snapshot struct {
	HorizonMonths int
	Series        *timeseries.Series
	Estimate      *robust.Estimate
	Indices       stability.Indices
	Trend         []trend.Point
}

// Report is the full analysis result for one characteristic.
type Report struct {
	Characteristic  string
	ReferenceSigma  float64
	ReferenceFamily string
	GlobalMedian    float64
	OutliersRemoved int
	Snapshots       []Snapshot
}

// Analyze runs the full stability analysis for one characteristic.
//
// The series is cleaned, the reference sigma is computed once in exact mode
// over the whole cleaned history, and each reporting horizon then gets an
// exact-mode snapshot and a fast-mode rolling trend against that shared
// reference. Horizons with too few measurements are skipped silently; a
// characteristic with too few measurements overall returns ErrTooFewSamples.
func Analyze(ctx context.Context, series *timeseries.Series, cfg CharacteristicConfig, settings Settings) (*Report, error) {
	settings.applyDefaults()

	if series.Len() < settings.MinSamples {
		return nil, ErrTooFewSamples
	}

	cleaning := outliers.Clean(series, nil)
	cleaned := cleaning.Cleaned
	if settings.Since != nil {
		cleaned = cleaned.After(*settings.Since)
	}
	if cleaned.Len() < settings.MinSamples {
		return nil, ErrTooFewSamples
	}

	// The sigma reference is computed once from the whole cleaned history
	// and shared by every horizon of this characteristic.
	reference := robust.Compute(ctx, cleaned, robust.Options{
		FitDistribution:   true,
		UseAbsoluteValues: cfg.UseAbsoluteValues,
	})

	report := &Report{
		Characteristic:  series.Name,
		ReferenceSigma:  reference.SigmaEquiv,
		ReferenceFamily: reference.FamilyName,
		GlobalMedian:    cleaning.GlobalMedian,
		OutliersRemoved: cleaning.Removed.Len(),
	}

	subgroupSize := cfg.SubgroupSize
	if subgroupSize == 0 {
		subgroupSize = 5
	}
	step := cfg.Step
	if step == 0 {
		step = 5
	}

	last := cleaned.Timestamps[len(cleaned.Timestamps)-1]
	for _, months := range settings.HorizonsMonths {
		start := last.AddDate(0, -months, 0)
		interval := cleaned.After(start)
		if interval.Len() < settings.MinSamples {
			continue
		}

		estimate := robust.Compute(ctx, interval, robust.Options{
			FitDistribution:   true,
			UseAbsoluteValues: cfg.UseAbsoluteValues,
		})
		indices := stability.Compute(estimate, report.ReferenceSigma, &stability.Config{
			SubgroupSize: subgroupSize,
			MinSubgroups: 2,
		})

		windowSize := cfg.WindowSize
		if windowSize == 0 {
			windowSize = interval.Len() / 10
			if windowSize < 20 {
				windowSize = 20
			}
		}

		points, err := trend.Build(ctx, interval, report.ReferenceSigma, &trend.Config{
			WindowSize:        windowSize,
			Step:              step,
			UseAbsoluteValues: cfg.UseAbsoluteValues,
			Subgroups: &stability.Config{
				SubgroupSize: subgroupSize,
				MinSubgroups: 3,
			},
		})
		if err != nil {
			return nil, err
		}

		report.Snapshots = append(report.Snapshots, Snapshot{
			HorizonMonths: months,
			Series:        interval,
			Estimate:      estimate,
			Indices:       indices,
			Trend:         points,
		})
	}

	return report, nil
}
