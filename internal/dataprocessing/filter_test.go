package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/shared/testutil"
	"bikepulse/pkg/contracts/domain"
)

func TestFilter(t *testing.T) {
	table := testutil.NewTable(testutil.SampleRecords())
	day := testutil.Day

	tests := []struct {
		name     string
		r        domain.DateRange
		wantDays []domain.Date
	}{
		{
			name:     "inclusive on both ends",
			r:        domain.NewDateRange(day(2011, 1, 2), day(2011, 7, 4)),
			wantDays: []domain.Date{day(2011, 1, 2), day(2011, 4, 15), day(2011, 7, 4)},
		},
		{
			name:     "single day",
			r:        domain.NewDateRange(day(2012, 3, 17), day(2012, 3, 17)),
			wantDays: []domain.Date{day(2012, 3, 17)},
		},
		{
			name:     "no rows in range",
			r:        domain.NewDateRange(day(2011, 2, 1), day(2011, 3, 1)),
			wantDays: nil,
		},
		{
			name:     "outside dataset bounds",
			r:        domain.NewDateRange(day(2015, 1, 1), day(2016, 1, 1)),
			wantDays: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(table, tt.r)
			require.NoError(t, err)
			require.NotNil(t, got.Records)

			var days []domain.Date
			for _, r := range got.Records {
				days = append(days, r.Day)
			}
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestFilter_InvalidRange(t *testing.T) {
	table := testutil.NewTable(testutil.ThreeDayRecords())
	r := domain.NewDateRange(testutil.Day(2011, 1, 3), testutil.Day(2011, 1, 1))

	got, err := Filter(table, r)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidRange))
	assert.Contains(t, err.Error(), "start 2011-01-03 is after end 2011-01-01")
}

func TestFilter_FullRangeReturnsTableUnchanged(t *testing.T) {
	table := testutil.NewTable(testutil.SampleRecords())
	bounds, ok := table.Bounds()
	require.True(t, ok)

	got, err := Filter(table, bounds)
	require.NoError(t, err)
	assert.Equal(t, table.Records, got.Records)
}

func TestFilter_Idempotent(t *testing.T) {
	table := testutil.NewTable(testutil.SampleRecords())
	r := domain.NewDateRange(testutil.Day(2011, 3, 1), testutil.Day(2012, 6, 30))

	once, err := Filter(table, r)
	require.NoError(t, err)
	twice, err := Filter(once, r)
	require.NoError(t, err)

	assert.Equal(t, once.Records, twice.Records)
}

func TestFilter_DoesNotShareBacking(t *testing.T) {
	original := testutil.SampleRecords()
	table := testutil.NewTable(testutil.SampleRecords())
	bounds, _ := table.Bounds()

	got, err := Filter(table, bounds)
	require.NoError(t, err)
	got.Records[0].Total = -1

	assert.Equal(t, original, table.Records)
}

func TestFilter_NilTable(t *testing.T) {
	got, err := Filter(nil, domain.NewDateRange(testutil.Day(2011, 1, 1), testutil.Day(2011, 1, 2)))
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}
