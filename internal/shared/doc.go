// Package shared holds code used across bikepulse packages that belongs to no
// single layer.
//
// The testutil subpackage provides:
//
//	- a buffered slog handler with log assertions
//	- rental record fixtures, including the three-day reference scenario
//	- writers that materialize fixtures as CSV, XLSX or SQLite datasets
//
// Example usage:
//
//	func TestLoad(t *testing.T) {
//	    path := testutil.WriteCSV(t, t.TempDir(), testutil.ThreeDayRecords())
//	    table, err := dataprocessing.LoadTable(context.Background(), path, dataprocessing.LoadOptions{})
//	    ...
//	}
package shared
