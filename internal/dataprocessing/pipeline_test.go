package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/shared/testutil"
	"bikepulse/pkg/contracts/domain"
)

func TestBuild_ThreeDayScenario(t *testing.T) {
	table := testutil.NewTable(testutil.ThreeDayRecords())
	r := domain.NewDateRange(testutil.Day(2011, 1, 1), testutil.Day(2011, 1, 3))

	dash, err := Build(table, r)
	require.NoError(t, err)

	assert.Equal(t, r, dash.Range)
	assert.Equal(t, int64(60), dash.Metrics.Total)
	assert.Equal(t, []domain.DailyTotal{
		{Day: testutil.Day(2011, 1, 1), Total: 10},
		{Day: testutil.Day(2011, 1, 2), Total: 20},
		{Day: testutil.Day(2011, 1, 3), Total: 30},
	}, dash.Daily)
	assert.Equal(t, []domain.UserTypeTotal{{Type: "Casual", Total: 19}, {Type: "Registered", Total: 41}}, dash.UserTypes)
	assert.Equal(t, []domain.GroupTotal{{Key: 0, Label: "2011", Total: 60}}, dash.Years)
	assert.Equal(t, []domain.GroupTotal{{Key: 1, Label: "Spring", Total: 60}}, dash.Seasons)
	assert.Equal(t, []domain.GroupTotal{{Key: 1, Label: "Jan", Total: 60}}, dash.Months)
	assert.Len(t, dash.Weather, 2)
	assert.Len(t, dash.TemperatureBuckets, 5)
	assert.Len(t, dash.Buckets, 25)
	assert.Len(t, dash.Records, 3)
}

func TestBuild_EmptySelection(t *testing.T) {
	table := testutil.NewTable(testutil.ThreeDayRecords())
	r := domain.NewDateRange(testutil.Day(2012, 1, 1), testutil.Day(2012, 1, 31))

	dash, err := Build(table, r)
	require.NoError(t, err)

	assert.Equal(t, domain.HeadlineMetrics{}, dash.Metrics)
	assert.Empty(t, dash.Daily)
	assert.Empty(t, dash.Years)
	assert.Empty(t, dash.Seasons)
	assert.Empty(t, dash.Months)
	assert.Empty(t, dash.Weather)
	assert.Empty(t, dash.TemperatureBuckets)
	assert.Empty(t, dash.Buckets)
	assert.Empty(t, dash.Records)
	assert.Equal(t, []domain.UserTypeTotal{{Type: "Casual"}, {Type: "Registered"}}, dash.UserTypes)
}

func TestBuild_InvalidRange(t *testing.T) {
	table := testutil.NewTable(testutil.ThreeDayRecords())

	_, err := Build(table, domain.NewDateRange(testutil.Day(2011, 1, 2), testutil.Day(2011, 1, 1)))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInvalidRange))
}

func TestBuild_BaseTableUntouched(t *testing.T) {
	table := testutil.NewTable(testutil.SampleRecords())
	bounds, _ := table.Bounds()

	first, err := Build(table, bounds)
	require.NoError(t, err)
	first.Records[0].Total = 0
	first.Records[0].TemperatureBucket = "tampered"

	second, err := Build(table, bounds)
	require.NoError(t, err)

	assert.Equal(t, testutil.SampleRecords(), table.Records)
	assert.NotEqual(t, "tampered", second.Records[0].TemperatureBucket)
	assert.Equal(t, Summarize(bounds, testutil.SampleRecords()).Metrics, second.Metrics)
}
