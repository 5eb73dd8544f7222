// Package outliers removes gross outliers from measurement series before
// stability analysis.
package outliers

import (
	"math"
	"time"

	"github.com/sartorproj/gostab/timeseries"
)

// Config holds configuration for outlier cleaning.
type Config struct {
	// IQRFactor scales the interquartile range when placing the fences
	// (default: 1.5, the Tukey convention).
	IQRFactor float64
}

// DefaultConfig returns the default cleaning configuration.
func DefaultConfig() *Config {
	return &Config{IQRFactor: 1.5}
}

// Result holds the outcome of a cleaning pass.
type Result struct {
	// Cleaned is the series with outliers and non-finite values removed.
	Cleaned *timeseries.Series
	// Removed holds the points outside the fences, for reporting.
	Removed *timeseries.Series
	// GlobalMedian is the median of the cleaned series.
	GlobalMedian float64
}

// Clean drops non-finite values and removes points outside the Tukey
// fences Q1 - f*IQR and Q3 + f*IQR.
func Clean(series *timeseries.Series, config *Config) *Result {
	if config == nil {
		config = DefaultConfig()
	}

	finite := series.DropNonFinite()
	if finite.Len() < 4 {
		return &Result{
			Cleaned:      finite,
			Removed:      &timeseries.Series{Name: series.Name},
			GlobalMedian: finite.Median(),
		}
	}

	q1 := finite.Quantile(0.25)
	q3 := finite.Quantile(0.75)
	iqr := q3 - q1
	lo := q1 - config.IQRFactor*iqr
	hi := q3 + config.IQRFactor*iqr

	var keptValues, removedValues []float64
	var keptTimes, removedTimes []time.Time
	for i, v := range finite.Values {
		var ts time.Time
		if i < len(finite.Timestamps) {
			ts = finite.Timestamps[i]
		}
		if v < lo || v > hi || math.IsNaN(v) {
			removedValues = append(removedValues, v)
			removedTimes = append(removedTimes, ts)
			continue
		}
		keptValues = append(keptValues, v)
		keptTimes = append(keptTimes, ts)
	}

	cleaned := &timeseries.Series{
		Timestamps: keptTimes,
		Values:     keptValues,
		Name:       series.Name,
	}
	removed := &timeseries.Series{
		Timestamps: removedTimes,
		Values:     removedValues,
		Name:       series.Name,
	}

	return &Result{
		Cleaned:      cleaned,
		Removed:      removed,
		GlobalMedian: cleaned.Median(),
	}
}
