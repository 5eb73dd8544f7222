// Package distfit selects the best-fitting continuous distribution family
// for a measurement sample.
//
// Each candidate family is fitted by maximum likelihood (or a moment-based
// equivalent where the likelihood has no stable closed form) and scored as
// the sum of squared residuals between the sample's histogram density and
// the fitted density at the bin centers. The family with the lowest score
// wins. A family whose fit fails or exceeds its time budget is excluded
// rather than aborting the selection.
//
//	result, err := distfit.Fit(ctx, series, nil)
//	if err != nil {
//	    // fall back to empirical quantiles
//	}
//	lower := result.Dist.Quantile(0.00135)
//
// The candidate set is closed: normal, log-normal, gamma, beta, Weibull,
// Pareto, Student-t, and exponential. Selection is deterministic for a fixed
// sample; no estimator uses randomized initialization.
package distfit
