// Package gostab provides statistical stability estimation for manufacturing
// measurement characteristics.
//
// GoSTAB takes a time-ordered stream of scalar measurements for one
// inspection characteristic and computes a robust dispersion estimate
// (equivalent sigma) and a robust location estimate (median), expresses them
// against a historical reference as the unitless σ-STAB and μ-STAB indices,
// and tracks how those indices evolve across a sliding window of recent
// measurements.
//
// # Features
//
//   - Robust sigma/median estimation in two modes: parametric distribution
//     fit (exact) and empirical quantiles (fast)
//   - Automatic distribution selection over eight candidate families
//     (normal, log-normal, gamma, beta, Weibull, Pareto, Student-t,
//     exponential) scored by histogram density residuals
//   - σ-STAB and μ-STAB stability indices with rational subgrouping
//   - Rolling-window trend computation over time-ordered series
//   - IQR outlier cleaning, QM export loading, and PNG chart rendering
//
// # Quick Start
//
// Estimate a sample and compute its stability indices:
//
//	estimate := robust.Compute(ctx, series, robust.Options{FitDistribution: true})
//	indices := stability.Compute(estimate, referenceSigma, nil)
//
// Build the rolling stability trend:
//
//	points, _ := trend.Build(ctx, series, referenceSigma, trend.DefaultConfig())
//
// Run the full per-characteristic analysis:
//
//	report, _ := analysis.Analyze(ctx, series, charCfg, settings)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - timeseries: Measurement series data structures and loading
//   - distfit: Candidate distribution fitting and selection
//   - robust: Robust sigma/median estimation
//   - stability: σ-STAB / μ-STAB index computation and limits
//   - trend: Rolling-window trend building
//   - outliers: IQR outlier cleaning
//   - analysis: Per-characteristic orchestration and configuration
//   - render: Snapshot and trend chart rendering
//
// # References
//
//   - Montgomery, D. C. (2020). Introduction to Statistical Quality Control
//   - ISO 22514: Statistical methods in process management — Capability and performance
package gostab
