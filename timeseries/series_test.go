package timeseries

import (
	"math"
	"testing"
	"time"
)

func TestMedian(t *testing.T) {
	odd := New([]float64{3, 1, 2})
	if got := odd.Median(); got != 2 {
		t.Errorf("odd median = %f, want 2", got)
	}

	even := New([]float64{4, 1, 3, 2})
	if got := even.Median(); got != 2.5 {
		t.Errorf("even median = %f, want 2.5", got)
	}

	empty := New(nil)
	if !math.IsNaN(empty.Median()) {
		t.Error("empty median should be NaN")
	}
}

func TestQuantileInterpolation(t *testing.T) {
	s := New([]float64{0, 1, 2, 3, 4})

	if got := s.Quantile(0); got != 0 {
		t.Errorf("Quantile(0) = %f, want 0", got)
	}
	if got := s.Quantile(1); got != 4 {
		t.Errorf("Quantile(1) = %f, want 4", got)
	}
	if got := s.Quantile(0.5); math.Abs(got-2) > 1e-12 {
		t.Errorf("Quantile(0.5) = %f, want 2", got)
	}
	// Linear interpolation between order statistics.
	if got := s.Quantile(0.625); math.Abs(got-2.5) > 1e-12 {
		t.Errorf("Quantile(0.625) = %f, want 2.5", got)
	}
}

func TestDropNonFiniteKeepsTimestampsAligned(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := []time.Time{base, base.AddDate(0, 0, 1), base.AddDate(0, 0, 2), base.AddDate(0, 0, 3)}
	values := []float64{1, math.NaN(), math.Inf(1), 4}

	s, err := NewWithTimestamps(timestamps, values)
	if err != nil {
		t.Fatal(err)
	}

	finite := s.DropNonFinite()
	if finite.Len() != 2 {
		t.Fatalf("finite len = %d, want 2", finite.Len())
	}
	if finite.Values[0] != 1 || finite.Values[1] != 4 {
		t.Errorf("finite values = %v", finite.Values)
	}
	if !finite.Timestamps[0].Equal(timestamps[0]) || !finite.Timestamps[1].Equal(timestamps[3]) {
		t.Errorf("timestamps not aligned: %v", finite.Timestamps)
	}
}

func TestAbs(t *testing.T) {
	s := New([]float64{-2, -0.5, 0, 1.5})
	a := s.Abs()
	want := []float64{2, 0.5, 0, 1.5}
	for i, v := range a.Values {
		if v != want[i] {
			t.Errorf("Abs()[%d] = %f, want %f", i, v, want[i])
		}
	}
	// Original unchanged.
	if s.Values[0] != -2 {
		t.Error("Abs modified the original series")
	}
}

func TestWindow(t *testing.T) {
	values := make([]float64, 20)
	for i := range values {
		values[i] = float64(i)
	}
	s := New(values)

	w := s.Window(10, 5)
	if w.Len() != 5 {
		t.Fatalf("window len = %d, want 5", w.Len())
	}
	if w.Values[0] != 5 || w.Values[4] != 9 {
		t.Errorf("window = %v, want [5..9]", w.Values)
	}
}

func TestAfter(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, 10)
	values := make([]float64, 10)
	for i := range timestamps {
		timestamps[i] = base.AddDate(0, 0, i)
		values[i] = float64(i)
	}
	s, _ := NewWithTimestamps(timestamps, values)

	recent := s.After(base.AddDate(0, 0, 7))
	if recent.Len() != 3 {
		t.Fatalf("After len = %d, want 3", recent.Len())
	}
	if recent.Values[0] != 7 {
		t.Errorf("After starts at %f, want 7", recent.Values[0])
	}
}

func TestSortByTime(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := []time.Time{base.AddDate(0, 0, 2), base, base.AddDate(0, 0, 1)}
	values := []float64{3, 1, 2}
	s, _ := NewWithTimestamps(timestamps, values)

	sorted := s.SortByTime()
	for i, want := range []float64{1, 2, 3} {
		if sorted.Values[i] != want {
			t.Errorf("sorted[%d] = %f, want %f", i, sorted.Values[i], want)
		}
	}
	// Original unchanged.
	if s.Values[0] != 3 {
		t.Error("SortByTime modified the original series")
	}
}
