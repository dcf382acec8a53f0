package dataprocessing

import "bikepulse/pkg/contracts/domain"

// Build filters table to r and computes every dashboard summary from the
// result. Each call starts from scratch and never touches table.
func Build(table *domain.RentalTable, r domain.DateRange) (*domain.Dashboard, error) {
	filtered, err := Filter(table, r)
	if err != nil {
		return nil, err
	}
	return Summarize(r, filtered.Records), nil
}

// Summarize computes the dashboard for already filtered records
func Summarize(r domain.DateRange, records []domain.RentalRecord) *domain.Dashboard {
	binned := BinRecords(records)

	return &domain.Dashboard{
		Range:              r,
		Metrics:            Headline(records),
		Daily:              DailyTotals(records),
		UserTypes:          UserTypeTotals(records),
		Years:              YearTotals(records),
		Seasons:            SeasonTotals(records),
		Months:             MonthTotals(records),
		Weather:            WeatherTotals(records),
		TemperatureBuckets: TemperatureBucketTotals(binned),
		Buckets:            BucketGrid(binned),
		Records:            binned,
	}
}
