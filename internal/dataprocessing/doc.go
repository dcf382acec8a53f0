// Package dataprocessing turns a daily bike-rental dataset into the summaries
// shown on the dashboard.
//
// # Architecture
//
// The package is a linear pipeline of pure functions:
//
// 1. Loader: reads a CSV, XLSX or SQLite dataset into a domain.RentalTable
// 2. Filter: restricts a table to an inclusive date range
// 3. Aggregations: grouped sums by day, year, season, month and weather,
// the casual/registered split and the headline metrics
// 4. Binning: five equal-width temperature and humidity buckets and the
// two-dimensional bucket grid
//
// # Usage
//
//	table, err := dataprocessing.LoadTable(ctx, "data/days_df.csv", dataprocessing.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	bounds, _ := table.Bounds()
//	dashboard, err := dataprocessing.Build(table, bounds)
//
// # Data Flow
//
//	Dataset file → LoadTable → RentalTable → Filter → records → Aggregations + Binning → Dashboard
//
// # Ownership
//
// A loaded table is a shared, read-only base. Filter always returns a new
// table and binning returns augmented copies, so concurrent requests can
// build dashboards from the same base without coordination.
//
// # Error Handling
//
// LoadTable fails with an errors.AppError of type LOAD, wrapping a PARSING
// error that names the offending row and column when a cell cannot be read.
// Filter and Build fail with an INVALID_RANGE error when the start is after
// the end. An empty selection is not an error.
package dataprocessing
