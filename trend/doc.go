// Package trend builds the rolling-window trend of the stability indices.
//
// A fixed-size window slides over a time-ordered series in fixed steps; each
// window gets a fast-mode robust estimate and stability indices, keyed by
// the timestamp just after the window. Every window is strictly historical
// relative to its timestamp, so the trend can be recomputed incrementally as
// measurements arrive.
//
//	cfg := trend.DefaultConfig()
//	points, err := trend.Build(ctx, series, referenceSigma, cfg)
//
// Windows are independent pure computations; set Config.Workers to evaluate
// them concurrently with identical output.
package trend
