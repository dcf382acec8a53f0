package dataprocessing

import (
	"cmp"
	"maps"
	"slices"
	"time"

	"bikepulse/pkg/contracts/domain"
)

// groupSum folds the total of each record into the accumulator of its key
// and returns the keys in ascending order.
func groupSum[K cmp.Ordered](records []domain.RentalRecord, key func(domain.RentalRecord) K) ([]K, map[K]int64) {
	sums := make(map[K]int64)
	for _, r := range records {
		sums[key(r)] += r.Total
	}
	return slices.Sorted(maps.Keys(sums)), sums
}

func groupTotals(records []domain.RentalRecord, key func(domain.RentalRecord) int, label func(int) string) []domain.GroupTotal {
	keys, sums := groupSum(records, key)
	out := make([]domain.GroupTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.GroupTotal{Key: k, Label: label(k), Total: sums[k]})
	}
	return out
}

// DailyTotals sums totals per day, one row per day present, oldest first
func DailyTotals(records []domain.RentalRecord) []domain.DailyTotal {
	days, sums := groupSum(records, func(r domain.RentalRecord) int64 { return r.Day.Unix() })
	out := make([]domain.DailyTotal, 0, len(days))
	for _, d := range days {
		out = append(out, domain.DailyTotal{
			Day:   domain.DateOf(time.Unix(d, 0).UTC()),
			Total: sums[d],
		})
	}
	return out
}

// UserTypeTotals returns exactly two rows, Casual then Registered, summed over
// all records. Both are zero for an empty selection.
func UserTypeTotals(records []domain.RentalRecord) []domain.UserTypeTotal {
	var casual, registered int64
	for _, r := range records {
		casual += r.Casual
		registered += r.Registered
	}
	return []domain.UserTypeTotal{
		{Type: domain.UserTypeCasual, Total: casual},
		{Type: domain.UserTypeRegistered, Total: registered},
	}
}

// YearTotals sums totals per year indicator
func YearTotals(records []domain.RentalRecord) []domain.GroupTotal {
	return groupTotals(records, func(r domain.RentalRecord) int { return r.Year }, domain.YearLabel)
}

// SeasonTotals sums totals per season code
func SeasonTotals(records []domain.RentalRecord) []domain.GroupTotal {
	return groupTotals(records, func(r domain.RentalRecord) int { return r.Season }, domain.SeasonLabel)
}

// MonthTotals sums totals per month
func MonthTotals(records []domain.RentalRecord) []domain.GroupTotal {
	return groupTotals(records, func(r domain.RentalRecord) int { return r.Month }, domain.MonthLabel)
}

// WeatherTotals sums totals per weather situation code
func WeatherTotals(records []domain.RentalRecord) []domain.GroupTotal {
	return groupTotals(records, func(r domain.RentalRecord) int { return r.Weather }, domain.WeatherLabel)
}

// Headline returns the casual, registered and combined sums
func Headline(records []domain.RentalRecord) domain.HeadlineMetrics {
	m := domain.HeadlineMetrics{Days: len(records)}
	for _, r := range records {
		m.Casual += r.Casual
		m.Registered += r.Registered
		m.Total += r.Total
	}
	return m
}
