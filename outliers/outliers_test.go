package outliers

import (
	"math"
	"testing"

	"github.com/sartorproj/gostab/timeseries"
)

func TestCleanRemovesOutliers(t *testing.T) {
	values := []float64{10, 11, 9, 10.5, 9.5, 10.2, 9.8, 10.1, 9.9, 10, 100, -80}
	series := timeseries.New(values)

	result := Clean(series, nil)

	if result.Removed.Len() != 2 {
		t.Fatalf("removed %d points, want 2", result.Removed.Len())
	}
	if result.Cleaned.Len() != 10 {
		t.Fatalf("kept %d points, want 10", result.Cleaned.Len())
	}
	for _, v := range result.Cleaned.Values {
		if v > 50 || v < -50 {
			t.Errorf("outlier %f survived cleaning", v)
		}
	}
	if math.Abs(result.GlobalMedian-10) > 0.5 {
		t.Errorf("global median = %f, want ~10", result.GlobalMedian)
	}
}

func TestCleanDropsNonFinite(t *testing.T) {
	series := timeseries.New([]float64{1, math.NaN(), 2, math.Inf(1), 3, 2, 1, 2})

	result := Clean(series, nil)
	for _, v := range result.Cleaned.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Error("non-finite value survived cleaning")
		}
	}
}

func TestCleanShortSeries(t *testing.T) {
	series := timeseries.New([]float64{1, 2, 3})

	result := Clean(series, nil)
	if result.Cleaned.Len() != 3 || result.Removed.Len() != 0 {
		t.Errorf("short series must pass through: kept %d removed %d",
			result.Cleaned.Len(), result.Removed.Len())
	}
	if result.GlobalMedian != 2 {
		t.Errorf("global median = %f, want 2", result.GlobalMedian)
	}
}

func TestCleanWiderFactorKeepsMore(t *testing.T) {
	values := []float64{10, 11, 9, 10.5, 9.5, 10.2, 9.8, 10.1, 9.9, 10, 13}
	series := timeseries.New(values)

	strict := Clean(series, &Config{IQRFactor: 1.5})
	loose := Clean(series, &Config{IQRFactor: 10})

	if loose.Removed.Len() > strict.Removed.Len() {
		t.Error("wider fences must not remove more points")
	}
	if loose.Removed.Len() != 0 {
		t.Errorf("factor 10 removed %d points, want 0", loose.Removed.Len())
	}
}
