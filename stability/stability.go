// Package stability computes the σ-STAB and μ-STAB process stability indices.
package stability

import (
	"math"

	"github.com/sartorproj/gostab/robust"
	"gonum.org/v1/gonum/stat"
)

// Indices holds the two stability indices for one sample.
// SigmaStab relates current dispersion to the historical reference
// (1.0 = nominal). MuStab relates subgroup-median dispersion to the same
// reference (near 0 = stable location).
type Indices struct {
	SigmaStab float64
	MuStab    float64
}

// Defined reports whether the indices carry usable numbers. A zero or
// undefined reference sigma makes both indices undefined.
func (i Indices) Defined() bool {
	return !math.IsNaN(i.SigmaStab)
}

// Config holds configuration for index computation.
type Config struct {
	// SubgroupSize is the length of the consecutive non-overlapping
	// chunks whose medians measure location drift (default: 5).
	SubgroupSize int
	// MinSubgroups is the minimum number of complete subgroups required
	// to compute MuStab; below it MuStab is 0 by convention. Snapshot
	// analysis uses 2, rolling-trend analysis uses 3.
	MinSubgroups int
}

// DefaultConfig returns the snapshot-analysis configuration.
func DefaultConfig() *Config {
	return &Config{
		SubgroupSize: 5,
		MinSubgroups: 2,
	}
}

// Compute derives the stability indices from a robust estimate and a
// reference sigma.
//
// SigmaStab = SigmaEquiv / referenceSigma. MuStab = the Bessel-corrected
// standard deviation of the subgroup medians of the estimate's sample,
// divided by referenceSigma. Subgroups are carved in sample order; a partial
// trailing subgroup is discarded.
//
// A zero or NaN referenceSigma yields NaN for both indices, never a silent
// zero. A non-positive SubgroupSize or MinSubgroups is a programmer error
// and panics.
func Compute(estimate *robust.Estimate, referenceSigma float64, config *Config) Indices {
	if config == nil {
		config = DefaultConfig()
	}
	if config.SubgroupSize <= 0 {
		panic("stability: SubgroupSize must be positive")
	}
	if config.MinSubgroups <= 0 {
		panic("stability: MinSubgroups must be positive")
	}

	if referenceSigma == 0 || math.IsNaN(referenceSigma) {
		return Indices{SigmaStab: math.NaN(), MuStab: math.NaN()}
	}

	indices := Indices{
		SigmaStab: estimate.SigmaEquiv / referenceSigma,
		MuStab:    0,
	}

	medians := subgroupMedians(estimate.Sample.Values, config.SubgroupSize)
	if len(medians) >= config.MinSubgroups {
		indices.MuStab = stat.StdDev(medians, nil) / referenceSigma
	}
	return indices
}

// subgroupMedians returns the medians of consecutive non-overlapping chunks
// of the given size, in order. The remainder that does not fill a full chunk
// is discarded.
func subgroupMedians(values []float64, size int) []float64 {
	k := len(values) / size
	if k == 0 {
		return nil
	}
	medians := make([]float64, k)
	for i := 0; i < k; i++ {
		chunk := make([]float64, size)
		copy(chunk, values[i*size:(i+1)*size])
		medians[i] = median(chunk)
	}
	return medians
}

// median computes the median in place.
func median(xs []float64) float64 {
	sortFloats(xs)
	n := len(xs)
	if n%2 == 0 {
		return (xs[n/2-1] + xs[n/2]) / 2
	}
	return xs[n/2]
}

// sortFloats is an insertion sort; subgroups are small (default 5).
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
