// Package robust computes robust location and dispersion estimates for
// measurement samples.
package robust

import (
	"context"
	"math"

	"github.com/sartorproj/gostab/distfit"
	"github.com/sartorproj/gostab/timeseries"
)

// Quantile levels defining the equivalent-sigma span: the span between them
// covers the same probability mass as ±3 sigma of a normal distribution.
const (
	LowerTail = 0.00135
	UpperTail = 0.99865
)

// EmpiricalSource is the FamilyName reported when the bounds come from
// empirical quantiles rather than a fitted distribution.
const EmpiricalSource = "empirical"

// Estimate is a robust estimate of a sample's location and dispersion.
// SigmaEquiv is always (UpperBound - LowerBound) / 6 regardless of source.
type Estimate struct {
	SigmaEquiv float64
	Median     float64
	LowerBound float64
	UpperBound float64

	// FamilyName names the fitted family, or EmpiricalSource.
	FamilyName string
	// Params holds the fitted parameters; nil for the empirical source.
	Params []float64
	// Dist is the fitted distribution; nil for the empirical source.
	Dist distfit.Distribution

	// Sample is the sample the estimate was computed from, after
	// non-finite filtering and the optional absolute-value transform.
	Sample *timeseries.Series
}

// Defined reports whether the estimate carries usable numbers.
// An empty sample produces an undefined estimate.
func (e *Estimate) Defined() bool {
	return !math.IsNaN(e.SigmaEquiv)
}

// Options controls the estimation mode.
type Options struct {
	// FitDistribution selects exact mode: fit candidate families and read
	// the bounds off the winner's quantile function. Fast mode (false)
	// uses empirical quantiles directly.
	FitDistribution bool
	// UseAbsoluteValues folds the sample to absolute values before
	// estimation, correcting known sign defects in the raw signal.
	UseAbsoluteValues bool
	// Fitter configures exact mode. Nil means distfit.DefaultConfig().
	Fitter *distfit.Config
}

// Compute produces a robust estimate of the sample.
//
// Non-finite values are dropped first; an empty result yields an undefined
// estimate, not an error. In exact mode, a sample below the fitting minimum
// or a failed selection falls back to empirical quantiles.
func Compute(ctx context.Context, sample *timeseries.Series, opts Options) *Estimate {
	if opts.UseAbsoluteValues {
		sample = sample.Abs()
	}
	sample = sample.DropNonFinite()

	if sample.Len() == 0 {
		return &Estimate{
			SigmaEquiv: math.NaN(),
			Median:     math.NaN(),
			LowerBound: math.NaN(),
			UpperBound: math.NaN(),
			FamilyName: EmpiricalSource,
			Sample:     sample,
		}
	}

	if opts.FitDistribution {
		res, err := distfit.Fit(ctx, sample, opts.Fitter)
		if err == nil {
			lower := res.Dist.Quantile(LowerTail)
			upper := res.Dist.Quantile(UpperTail)
			return &Estimate{
				SigmaEquiv: (upper - lower) / 6,
				Median:     res.Dist.Quantile(0.5),
				LowerBound: lower,
				UpperBound: upper,
				FamilyName: res.FamilyName,
				Params:     res.Params,
				Dist:       res.Dist,
				Sample:     sample,
			}
		}
		// InsufficientData and NoFittableDistribution both fall back to
		// the empirical path; neither is fatal.
	}

	lower := sample.Quantile(LowerTail)
	upper := sample.Quantile(UpperTail)
	return &Estimate{
		SigmaEquiv: (upper - lower) / 6,
		Median:     sample.Median(),
		LowerBound: lower,
		UpperBound: upper,
		FamilyName: EmpiricalSource,
		Sample:     sample,
	}
}
