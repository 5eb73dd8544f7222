// Package timeseries provides the measurement series data structure and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Series represents a time-ordered sequence of scalar measurements.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new series from values with synthetic hourly timestamps.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean calculates the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range s.Values {
		sum += v
	}
	return sum / float64(len(s.Values))
}

// Variance calculates the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	mean := s.Mean()
	sumSq := 0.0
	for _, v := range s.Values {
		diff := v - mean
		sumSq += diff * diff
	}
	return sumSq / float64(len(s.Values)-1)
}

// Std calculates the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Median returns the median value of the series.
func (s *Series) Median() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Quantile returns the empirical p-quantile of the series, linearly
// interpolated between order statistics.
func (s *Series) Quantile(p float64) float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// DropNonFinite returns a new series with NaN and infinite values removed.
// Timestamps stay aligned with their surviving values.
func (s *Series) DropNonFinite() *Series {
	values := make([]float64, 0, len(s.Values))
	timestamps := make([]time.Time, 0, len(s.Values))
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, v)
		if i < len(s.Timestamps) {
			timestamps = append(timestamps, s.Timestamps[i])
		}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Abs returns a new series with every value replaced by its absolute value.
func (s *Series) Abs() *Series {
	values := make([]float64, len(s.Values))
	for i, v := range s.Values {
		values[i] = math.Abs(v)
	}

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Window returns the trailing window of the given size ending at end
// (exclusive), i.e. the values at indices [end-size, end).
func (s *Series) Window(end, size int) *Series {
	return s.Slice(end-size, end)
}

// After returns the sub-series with timestamps at or after t.
// The series must already be sorted ascending by timestamp.
func (s *Series) After(t time.Time) *Series {
	idx := sort.Search(len(s.Timestamps), func(i int) bool {
		return !s.Timestamps[i].Before(t)
	})
	return s.Slice(idx, s.Len())
}

// SortByTime returns a copy of the series sorted ascending by timestamp.
// The sort is stable so equal timestamps keep their original order.
func (s *Series) SortByTime() *Series {
	c := s.Copy()
	if len(c.Timestamps) != len(c.Values) {
		return c
	}
	idx := make([]int, len(c.Values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return c.Timestamps[idx[a]].Before(c.Timestamps[idx[b]])
	})
	values := make([]float64, len(c.Values))
	timestamps := make([]time.Time, len(c.Timestamps))
	for i, j := range idx {
		values[i] = c.Values[j]
		timestamps[i] = c.Timestamps[j]
	}
	c.Values = values
	c.Timestamps = timestamps
	return c
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}
