package distfit

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/sartorproj/gostab/timeseries"
)

// ErrInsufficientData indicates the sample is below the minimum length
// for parametric fitting. The caller should fall back to empirical quantiles.
var ErrInsufficientData = errors.New("distfit: sample too small for distribution fitting")

// ErrNoFittableDistribution indicates every candidate family failed or
// timed out. The caller should fall back to empirical quantiles.
var ErrNoFittableDistribution = errors.New("distfit: no candidate family produced a usable fit")

// Config holds configuration for distribution selection.
type Config struct {
	Families   []Family      // Candidate families (default: Families())
	Bins       int           // Histogram bins for goodness-of-fit scoring (default: 100)
	FitTimeout time.Duration // Per-family fit budget (default: 10s)
	MinSamples int           // Minimum sample length for fitting (default: 11)
}

// DefaultConfig returns the default fitting configuration.
func DefaultConfig() *Config {
	return &Config{
		Families:   Families(),
		Bins:       100,
		FitTimeout: 10 * time.Second,
		MinSamples: 11,
	}
}

// Result represents the winning distribution family.
type Result struct {
	FamilyName string
	Params     []float64
	Score      float64 // Sum of squared density residuals (lower is better)
	Dist       Distribution
	Evaluated  int // Families that produced a scoreable fit
}

// Fit fits every candidate family to the sample, scores each fit as the sum
// of squared residuals between the sample's histogram density and the fitted
// density at the bin centers, and returns the family with the lowest score.
//
// A family whose fit fails, degenerates, or exceeds the per-family timeout is
// excluded from candidacy. Fit is deterministic for a fixed sample and
// candidate list: no estimator uses randomized initialization.
func Fit(ctx context.Context, series *timeseries.Series, config *Config) (*Result, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Bins <= 0 {
		panic("distfit: Bins must be positive")
	}

	xs := series.Values
	if len(xs) < config.MinSamples {
		return nil, ErrInsufficientData
	}

	centers, density, ok := histogramDensity(xs, config.Bins)
	if !ok {
		return nil, ErrNoFittableDistribution
	}

	best := &Result{Score: math.Inf(1)}
	evaluated := 0

	for _, family := range config.Families {
		dist, params, err := fitWithTimeout(ctx, family, xs, config.FitTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		score, ok := scoreFit(dist, centers, density)
		if !ok {
			continue
		}
		evaluated++

		if score < best.Score {
			best = &Result{
				FamilyName: family.Name,
				Params:     params,
				Score:      score,
				Dist:       dist,
			}
		}
	}

	if best.Dist == nil {
		return nil, ErrNoFittableDistribution
	}
	best.Evaluated = evaluated
	return best, nil
}

// fitWithTimeout runs one family's fit with a bounded wait. A fit that
// outlives its budget is abandoned and the family excluded; the fit
// functions are pure so the stray goroutine holds no resources.
func fitWithTimeout(ctx context.Context, family Family, xs []float64, timeout time.Duration) (Distribution, []float64, error) {
	type fitResult struct {
		dist   Distribution
		params []float64
		err    error
	}

	done := make(chan fitResult, 1)
	go func() {
		dist, params, err := family.Fit(xs)
		done <- fitResult{dist, params, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		return r.dist, r.params, r.err
	case <-timer.C:
		return nil, nil, errors.New("distfit: fit timed out")
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
}

// histogramDensity builds an equal-width density histogram and returns the
// bin centers with their density values. Reports false for a zero-width
// sample, which cannot be scored.
func histogramDensity(xs []float64, bins int) (centers, density []float64, ok bool) {
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
		return nil, nil, false
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
	return centers, density, true
}

// scoreFit computes the sum of squared residuals between the empirical
// density and the fitted density at the bin centers. Reports false when the
// fitted density is not finite anywhere on the sample range.
func scoreFit(dist Distribution, centers, density []float64) (float64, bool) {
	score := 0.0
	for i, c := range centers {
		pdf := dist.Prob(c)
		if math.IsNaN(pdf) || math.IsInf(pdf, 0) {
			return 0, false
		}
		r := density[i] - pdf
		score += r * r
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}
