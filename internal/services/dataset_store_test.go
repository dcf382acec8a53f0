package services

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"bikepulse/internal/config"
	"bikepulse/internal/dataprocessing"
	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/shared/testutil"
	"bikepulse/pkg/contracts/domain"
)

func TestDatasetStore_LoadsFromDisk(t *testing.T) {
	path := testutil.WriteCSV(t, t.TempDir(), testutil.SampleRecords())
	logger, handler := testutil.NewTestLogger(t)

	store := NewDatasetStore(config.DatasetConfig{Path: path}, logger)
	assert.False(t, store.Loaded())
	assert.True(t, store.LoadedAt().IsZero())

	table, err := store.Table(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(testutil.SampleRecords()), table.Len())
	assert.True(t, store.Loaded())
	assert.False(t, store.LoadedAt().IsZero())

	info, err := store.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, info.Source)
	assert.Equal(t, testutil.Day(2011, 1, 1), info.Bounds.Start)
	assert.Equal(t, testutil.Day(2012, 12, 31), info.Bounds.End)

	testutil.AssertLogContains(t, handler, slog.LevelInfo, "dataset ready")
	testutil.AssertLogAttr(t, handler, "component", "dataset_store")
}

func TestDatasetStore_ConcurrentCallersShareOneLoad(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	loader := func(ctx context.Context, path string, opts dataprocessing.LoadOptions) (*domain.RentalTable, error) {
		calls.Add(1)
		<-release
		return testutil.NewTable(testutil.ThreeDayRecords()), nil
	}
	store := NewDatasetStore(config.DatasetConfig{Path: "days.csv"}, nil, WithLoader(loader))

	g, ctx := errgroup.WithContext(context.Background())
	tables := make([]*domain.RentalTable, 8)
	for i := range tables {
		g.Go(func() error {
			table, err := store.Table(ctx)
			tables[i] = table
			return err
		})
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, g.Wait())

	assert.Equal(t, int32(1), calls.Load())
	for _, table := range tables[1:] {
		assert.Same(t, tables[0], table)
	}
}

func TestDatasetStore_FailedLoadIsRetried(t *testing.T) {
	var calls atomic.Int32
	loader := func(ctx context.Context, path string, opts dataprocessing.LoadOptions) (*domain.RentalTable, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("disk on fire")
		}
		return testutil.NewTable(testutil.ThreeDayRecords()), nil
	}
	store := NewDatasetStore(config.DatasetConfig{Path: "days.csv"}, nil, WithLoader(loader))

	_, err := store.Table(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad), "foreign errors become load errors")
	assert.False(t, store.Loaded())

	table, err := store.Table(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, int32(2), calls.Load())
}

func TestDatasetStore_MissingFile(t *testing.T) {
	store := NewDatasetStore(config.DatasetConfig{Path: "/nonexistent/days.csv"}, nil)

	_, err := store.Info(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLoad))
}

func TestDatasetStore_PassesOptions(t *testing.T) {
	var got dataprocessing.LoadOptions
	loader := func(ctx context.Context, path string, opts dataprocessing.LoadOptions) (*domain.RentalTable, error) {
		got = opts
		return testutil.NewTable(nil), nil
	}
	store := NewDatasetStore(config.DatasetConfig{Path: "days.xlsx", Sheet: "rentals", Table: "bike_days"}, nil, WithLoader(loader))

	_, err := store.Table(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "rentals", got.Sheet)
	assert.Equal(t, "bike_days", got.Table)
	assert.NotNil(t, got.Logger)
}

func TestDatasetStore_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	loader := func(ctx context.Context, path string, opts dataprocessing.LoadOptions) (*domain.RentalTable, error) {
		<-release
		return testutil.NewTable(nil), nil
	}
	store := NewDatasetStore(config.DatasetConfig{Path: "days.csv"}, nil, WithLoader(loader))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.Table(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
