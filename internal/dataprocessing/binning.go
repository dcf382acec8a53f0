package dataprocessing

import (
	"math"

	"bikepulse/pkg/contracts/domain"
)

// BucketCount is the number of equal-width buckets per attribute
const BucketCount = 5

// Bucket labels in ascending order
var (
	TemperatureLabels = []string{"very cold", "cold", "moderate", "hot", "very hot"}
	HumidityLabels    = []string{"very low", "low", "moderate", "high", "very high"}
)

// BucketIndex places value in one of n equal-width buckets spanning
// [min, max]. Buckets are closed on the left and open on the right except the
// last, which also holds max. A zero-width span puts everything in bucket 0.
func BucketIndex(min, max, value float64, n int) int {
	if n <= 1 || math.IsNaN(value) {
		return 0
	}

	width := (max - min) / float64(n)
	if !(width > 0) || math.IsInf(width, 0) {
		return 0
	}

	idx := int(math.Floor((value - min) / width))
	switch {
	case idx < 0:
		return 0
	case idx >= n:
		return n - 1
	}
	return idx
}

// Assign labels each value with its bucket. The span is taken from the values
// themselves, so it follows the current selection. Empty input yields an
// empty assignment.
func Assign(values []float64, labels []string) []string {
	out := make([]string, len(values))
	if len(values) == 0 || len(labels) == 0 {
		return out
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	for i, v := range values {
		out[i] = labels[BucketIndex(lo, hi, v, len(labels))]
	}
	return out
}

// BinRecords copies records and attaches their temperature and humidity buckets
func BinRecords(records []domain.RentalRecord) []domain.BinnedRecord {
	temps := make([]float64, len(records))
	hums := make([]float64, len(records))
	for i, r := range records {
		temps[i] = r.Temperature
		hums[i] = r.Humidity
	}

	tempLabels := Assign(temps, TemperatureLabels)
	humLabels := Assign(hums, HumidityLabels)

	out := make([]domain.BinnedRecord, len(records))
	for i, r := range records {
		out[i] = domain.BinnedRecord{
			RentalRecord:      r,
			TemperatureBucket: tempLabels[i],
			HumidityBucket:    humLabels[i],
		}
	}
	return out
}

type bucketAcc struct {
	total int64
	days  int
}

func (a bucketAcc) row(temperature, humidity string) domain.BucketTotal {
	row := domain.BucketTotal{
		Temperature: temperature,
		Humidity:    humidity,
		Total:       a.total,
		Days:        a.days,
	}
	if a.days > 0 {
		row.Mean = float64(a.total) / float64(a.days)
	}
	return row
}

// BucketGrid sums totals over every temperature × humidity bucket pair,
// temperature major, including empty cells. Empty input yields an empty grid.
func BucketGrid(binned []domain.BinnedRecord) []domain.BucketTotal {
	if len(binned) == 0 {
		return []domain.BucketTotal{}
	}

	acc := make(map[[2]string]bucketAcc)
	for _, r := range binned {
		k := [2]string{r.TemperatureBucket, r.HumidityBucket}
		a := acc[k]
		a.total += r.Total
		a.days++
		acc[k] = a
	}

	out := make([]domain.BucketTotal, 0, len(TemperatureLabels)*len(HumidityLabels))
	for _, t := range TemperatureLabels {
		for _, h := range HumidityLabels {
			out = append(out, acc[[2]string{t, h}].row(t, h))
		}
	}
	return out
}

// TemperatureBucketTotals sums totals per temperature bucket, all five
// present. Empty input yields no rows.
func TemperatureBucketTotals(binned []domain.BinnedRecord) []domain.BucketTotal {
	if len(binned) == 0 {
		return []domain.BucketTotal{}
	}

	acc := make(map[string]bucketAcc)
	for _, r := range binned {
		a := acc[r.TemperatureBucket]
		a.total += r.Total
		a.days++
		acc[r.TemperatureBucket] = a
	}

	out := make([]domain.BucketTotal, 0, len(TemperatureLabels))
	for _, t := range TemperatureLabels {
		out = append(out, acc[t].row(t, ""))
	}
	return out
}
