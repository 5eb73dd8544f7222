// Package main demonstrates the stability engine on the two reference
// scenarios: a sign-defective mirrored signal and a skewed log-normal one.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/sartorproj/gostab/render"
	"github.com/sartorproj/gostab/robust"
	"github.com/sartorproj/gostab/stability"
	"github.com/sartorproj/gostab/timeseries"
	"github.com/sartorproj/gostab/trend"
)

func main() {
	out := flag.String("out", "results", "output folder for rendered charts")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(42))
	ctx := context.Background()

	fmt.Println("==========================================")
	fmt.Println("SCENARIO 1: Mirrored Data (Sign Error)")
	fmt.Println("==========================================")

	// Target is 2.0 but the sensor reports mixed signs, producing peaks
	// at -2 and +2. Absolute-value mode recovers the physical signal.
	mirrored := make([]float64, 600)
	for i := range mirrored {
		v := rng.NormFloat64()*0.5 + 2.0
		if rng.Intn(2) == 0 {
			v = -v
		}
		mirrored[i] = v
	}
	series1 := hourlySeries(mirrored, "Scen1_SignError")

	// A clean process would show roughly 0.5 equivalent sigma.
	runScenario(ctx, *out, series1, 0.5, true)

	fmt.Println()
	fmt.Println("==========================================")
	fmt.Println("SCENARIO 2: Standard Data (LogNormal, Skewed)")
	fmt.Println("==========================================")

	// Strictly positive skewed data, e.g. surface roughness.
	skewed := make([]float64, 600)
	for i := range skewed {
		skewed[i] = math.Exp(rng.NormFloat64()*0.7 + math.Log(10))
	}
	series2 := hourlySeries(skewed, "Scen2_LogNormal")

	// Baseline reference from the first 200 measurements, fast mode.
	baseline := robust.Compute(ctx, series2.Slice(0, 200), robust.Options{})
	fmt.Printf("Baseline sigma for scenario 2: %.4f\n", baseline.SigmaEquiv)

	runScenario(ctx, *out, series2, baseline.SigmaEquiv, false)
}

func runScenario(ctx context.Context, out string, series *timeseries.Series, referenceSigma float64, useAbs bool) {
	name := series.Name

	estimate := robust.Compute(ctx, series, robust.Options{
		FitDistribution:   true,
		UseAbsoluteValues: useAbs,
	})
	indices := stability.Compute(estimate, referenceSigma, nil)

	fmt.Printf("%s: dist=%s median=%.3f sigma_equiv=%.3f\n",
		name, estimate.FamilyName, estimate.Median, estimate.SigmaEquiv)
	fmt.Printf("%s: sigma-STAB=%.2f [%s]  mu-STAB=%.2f [%s]\n",
		name,
		indices.SigmaStab, stability.SigmaStabLimits().Classify(indices.SigmaStab),
		indices.MuStab, stability.MuStabLimits().Classify(indices.MuStab))

	snapshotPath := filepath.Join(out, "SPC_Snapshot_"+name+".png")
	if err := render.SnapshotFile(snapshotPath, estimate, indices, referenceSigma, name); err != nil {
		log.Printf("%s: snapshot render failed: %v", name, err)
	} else {
		fmt.Println("Snapshot saved:", snapshotPath)
	}

	cfg := trend.DefaultConfig()
	cfg.UseAbsoluteValues = useAbs
	points, err := trend.Build(ctx, series, referenceSigma, cfg)
	if err != nil {
		log.Printf("%s: trend build failed: %v", name, err)
		return
	}
	fmt.Printf("%s: %d trend points\n", name, len(points))

	sigmaPath := filepath.Join(out, "SPC_Timeline_"+name+"_sigma.png")
	muPath := filepath.Join(out, "SPC_Timeline_"+name+"_mu.png")
	if err := render.TrendFiles(sigmaPath, muPath, points, name); err != nil {
		log.Printf("%s: trend render failed: %v", name, err)
		return
	}
	fmt.Println("Timeline saved:", sigmaPath, muPath)
}

func hourlySeries(values []float64, name string) *timeseries.Series {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, len(values))
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &timeseries.Series{Timestamps: timestamps, Values: values, Name: name}
}
