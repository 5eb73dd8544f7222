// Package timeseries provides measurement series data structures and loading.
//
// This package includes the Series type for time-ordered measurement data,
// along with summary statistics, robust quantiles, and loaders for CSV files
// and tab-delimited QM inspection exports.
//
// # Creating a Series
//
// Create a series from a slice:
//
//	values := []float64{10.02, 10.05, 9.98, 10.01}
//	series := timeseries.New(values)
//
// # Statistics and Quantiles
//
//	median := series.Median()
//	sigmaSpan := series.Quantile(0.99865) - series.Quantile(0.00135)
//
// # Filtering and Transforms
//
// Computation-ready views of the data:
//
//	finite := series.DropNonFinite() // drop NaN/Inf, timestamps stay aligned
//	folded := series.Abs()           // absolute-value transform
//	window := series.Window(200, 50) // trailing 50 values ending at index 200
//	recent := series.After(cutoff)   // measurements at or after a date
//
// # Loading QM Exports
//
// Load the QM system's tab-delimited export (cp1252, decimal commas, four
// header rows) and pull one characteristic:
//
//	export, err := timeseries.LoadQMExport("zt_qm2_152159.txt", nil)
//	series := export.Characteristic("152159-1300")
package timeseries
