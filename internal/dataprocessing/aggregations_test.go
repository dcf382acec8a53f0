package dataprocessing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"bikepulse/internal/shared/testutil"
	"bikepulse/pkg/contracts/domain"
)

func TestAggregations_ThreeDayScenario(t *testing.T) {
	records := testutil.ThreeDayRecords()

	assert.Equal(t, []domain.DailyTotal{
		{Day: testutil.Day(2011, 1, 1), Total: 10},
		{Day: testutil.Day(2011, 1, 2), Total: 20},
		{Day: testutil.Day(2011, 1, 3), Total: 30},
	}, DailyTotals(records))

	assert.Equal(t, []domain.UserTypeTotal{
		{Type: "Casual", Total: 19},
		{Type: "Registered", Total: 41},
	}, UserTypeTotals(records))

	assert.Equal(t, domain.HeadlineMetrics{Casual: 19, Registered: 41, Total: 60, Days: 3}, Headline(records))

	assert.Equal(t, []domain.GroupTotal{
		{Key: 1, Label: "Clear", Total: 40},
		{Key: 2, Label: "Mist", Total: 20},
	}, WeatherTotals(records))
}

func TestAggregations_Sample(t *testing.T) {
	records := testutil.SampleRecords()

	assert.Equal(t, []domain.GroupTotal{
		{Key: 0, Label: "2011", Total: 985 + 801 + 3126 + 6043 + 1800},
		{Key: 1, Label: "2012", Total: 7836 + 5566 + 1796},
	}, YearTotals(records))

	assert.Equal(t, []domain.GroupTotal{
		{Key: 1, Label: "Spring", Total: 985 + 801 + 7836 + 1796},
		{Key: 2, Label: "Summer", Total: 3126},
		{Key: 3, Label: "Fall", Total: 6043 + 5566},
		{Key: 4, Label: "Winter", Total: 1800},
	}, SeasonTotals(records))

	months := MonthTotals(records)
	keys := make([]int, 0, len(months))
	for _, m := range months {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []int{1, 3, 4, 6, 7, 10, 12}, keys, "only months present, ascending")
	assert.Equal(t, "Jan", months[0].Label)
	assert.Equal(t, int64(985+801), months[0].Total)

	assert.Equal(t, []domain.GroupTotal{
		{Key: 1, Label: "Clear", Total: 3126 + 6043 + 7836 + 5566},
		{Key: 2, Label: "Mist", Total: 985 + 801 + 1796},
		{Key: 3, Label: "Light Snow/Rain", Total: 1800},
	}, WeatherTotals(records))
}

func TestAggregations_UnknownCodesKeepNumericLabel(t *testing.T) {
	records := []domain.RentalRecord{{Day: testutil.Day(2013, 1, 1), Year: 2, Season: 9, Total: 5}}

	assert.Equal(t, []domain.GroupTotal{{Key: 2, Label: "2", Total: 5}}, YearTotals(records))
	assert.Equal(t, []domain.GroupTotal{{Key: 9, Label: "9", Total: 5}}, SeasonTotals(records))
}

func TestAggregations_Empty(t *testing.T) {
	var records []domain.RentalRecord

	assert.Empty(t, DailyTotals(records))
	assert.NotNil(t, DailyTotals(records))
	assert.Empty(t, YearTotals(records))
	assert.Empty(t, SeasonTotals(records))
	assert.Empty(t, MonthTotals(records))
	assert.Empty(t, WeatherTotals(records))
	assert.Equal(t, domain.HeadlineMetrics{}, Headline(records))
	assert.Equal(t, []domain.UserTypeTotal{
		{Type: "Casual", Total: 0},
		{Type: "Registered", Total: 0},
	}, UserTypeTotals(records))
}

func TestAggregations_DuplicateDaysAreSummed(t *testing.T) {
	records := []domain.RentalRecord{
		{Day: testutil.Day(2011, 1, 2), Total: 5},
		{Day: testutil.Day(2011, 1, 1), Total: 1},
		{Day: testutil.Day(2011, 1, 2), Total: 7},
	}

	assert.Equal(t, []domain.DailyTotal{
		{Day: testutil.Day(2011, 1, 1), Total: 1},
		{Day: testutil.Day(2011, 1, 2), Total: 12},
	}, DailyTotals(records))
}

func TestAggregations_SumsReconstructTotal(t *testing.T) {
	records := testutil.SampleRecords()
	want := Headline(records).Total

	sumDaily := int64(0)
	for _, d := range DailyTotals(records) {
		sumDaily += d.Total
	}
	assert.Equal(t, want, sumDaily)

	users := UserTypeTotals(records)
	assert.Equal(t, want, users[0].Total+users[1].Total)

	for name, groups := range map[string][]domain.GroupTotal{
		"years":   YearTotals(records),
		"seasons": SeasonTotals(records),
		"months":  MonthTotals(records),
		"weather": WeatherTotals(records),
	} {
		sum := int64(0)
		for _, g := range groups {
			sum += g.Total
		}
		assert.Equal(t, want, sum, name)
	}
}

func TestAggregations_OrderIndependent(t *testing.T) {
	records := testutil.SampleRecords()
	shuffled := append([]domain.RentalRecord(nil), records...)
	rand.New(rand.NewSource(7)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assert.Equal(t, DailyTotals(records), DailyTotals(shuffled))
	assert.Equal(t, UserTypeTotals(records), UserTypeTotals(shuffled))
	assert.Equal(t, YearTotals(records), YearTotals(shuffled))
	assert.Equal(t, SeasonTotals(records), SeasonTotals(shuffled))
	assert.Equal(t, MonthTotals(records), MonthTotals(shuffled))
	assert.Equal(t, WeatherTotals(records), WeatherTotals(shuffled))
	assert.Equal(t, Headline(records), Headline(shuffled))
}
