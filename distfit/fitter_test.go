package distfit

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/sartorproj/gostab/timeseries"
)

func normalSample(n int, mu, sigma float64, seed int64) *timeseries.Series {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = rng.NormFloat64()*sigma + mu
	}
	return timeseries.New(values)
}

func logNormalSample(n int, shape, scale float64, seed int64) *timeseries.Series {
	rng := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = math.Exp(rng.NormFloat64()*shape + math.Log(scale))
	}
	return timeseries.New(values)
}

func TestFitNormalData(t *testing.T) {
	series := normalSample(2000, 10, 2, 1)

	result, err := Fit(context.Background(), series, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Evaluated < 2 {
		t.Errorf("only %d families evaluated", result.Evaluated)
	}

	// The winner's quantile span must recover the true sigma, whichever
	// symmetric family edges out the others on this sample.
	span := result.Dist.Quantile(0.99865) - result.Dist.Quantile(0.00135)
	sigmaEquiv := span / 6
	if math.Abs(sigmaEquiv-2) > 0.3 {
		t.Errorf("sigma_equiv = %f (family %s), want ~2", sigmaEquiv, result.FamilyName)
	}

	median := result.Dist.Quantile(0.5)
	if math.Abs(median-10) > 0.3 {
		t.Errorf("median = %f (family %s), want ~10", median, result.FamilyName)
	}
}

func TestFitLogNormalData(t *testing.T) {
	series := logNormalSample(3000, 0.7, 10, 2)

	result, err := Fit(context.Background(), series, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Strongly skewed data: the skewed families must win; log-normal is
	// the true model, gamma the only comparable score.
	if result.FamilyName != "lognormal" && result.FamilyName != "gamma" {
		t.Errorf("selected family = %s, want lognormal (or gamma)", result.FamilyName)
	}
}

func TestFitDeterminism(t *testing.T) {
	series := normalSample(500, 0, 1, 3)

	a, err := Fit(context.Background(), series, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fit(context.Background(), series, nil)
	if err != nil {
		t.Fatal(err)
	}

	if a.FamilyName != b.FamilyName || a.Score != b.Score {
		t.Errorf("selection not reproducible: %s/%f vs %s/%f",
			a.FamilyName, a.Score, b.FamilyName, b.Score)
	}
	for i := range a.Params {
		if a.Params[i] != b.Params[i] {
			t.Errorf("param %d differs: %f vs %f", i, a.Params[i], b.Params[i])
		}
	}
}

func TestFitInsufficientData(t *testing.T) {
	series := timeseries.New([]float64{1, 2, 3, 4, 5})

	_, err := Fit(context.Background(), series, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("err = %v, want ErrInsufficientData", err)
	}
}

func TestFitConstantSample(t *testing.T) {
	values := make([]float64, 50)
	for i := range values {
		values[i] = 7
	}

	_, err := Fit(context.Background(), timeseries.New(values), nil)
	if !errors.Is(err, ErrNoFittableDistribution) {
		t.Fatalf("err = %v, want ErrNoFittableDistribution", err)
	}
}

func TestFitTimeoutExcludesFamily(t *testing.T) {
	slow := Family{
		Name: "slow",
		Fit: func(xs []float64) (Distribution, []float64, error) {
			time.Sleep(200 * time.Millisecond)
			return fitNormal(xs)
		},
	}

	config := DefaultConfig()
	config.Families = append([]Family{slow}, Families()...)
	config.FitTimeout = 20 * time.Millisecond

	result, err := Fit(context.Background(), normalSample(200, 0, 1, 4), config)
	if err != nil {
		t.Fatal(err)
	}
	if result.FamilyName == "slow" {
		t.Error("timed-out family must not win")
	}
}

func TestFitAllFamiliesFail(t *testing.T) {
	broken := Family{
		Name: "broken",
		Fit: func(xs []float64) (Distribution, []float64, error) {
			return nil, nil, errDegenerate
		},
	}
	config := DefaultConfig()
	config.Families = []Family{broken}

	_, err := Fit(context.Background(), normalSample(100, 0, 1, 5), config)
	if !errors.Is(err, ErrNoFittableDistribution) {
		t.Fatalf("err = %v, want ErrNoFittableDistribution", err)
	}
}

func TestFamilySupportViolations(t *testing.T) {
	negative := []float64{-1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	for _, name := range []string{"lognormal", "gamma", "weibull", "pareto"} {
		for _, family := range Families() {
			if family.Name != name {
				continue
			}
			if _, _, err := family.Fit(negative); err == nil {
				t.Errorf("%s accepted negative data", name)
			}
		}
	}
}

func TestFittedQuantilesOrdered(t *testing.T) {
	series := logNormalSample(1000, 0.5, 5, 6)

	for _, family := range Families() {
		dist, _, err := family.Fit(series.Values)
		if err != nil {
			continue
		}
		lo := dist.Quantile(0.00135)
		med := dist.Quantile(0.5)
		hi := dist.Quantile(0.99865)
		if !(lo <= med && med <= hi) {
			t.Errorf("%s: quantiles out of order: %f %f %f", family.Name, lo, med, hi)
		}
	}
}
