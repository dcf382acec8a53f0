package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"bikepulse/internal/config"
	"bikepulse/internal/dataprocessing"
	apperrors "bikepulse/internal/errors"
	"bikepulse/internal/infrastructure"
	"bikepulse/pkg/contracts/domain"
)

// TableLoader reads a rental table from a dataset file
type TableLoader func(ctx context.Context, path string, opts dataprocessing.LoadOptions) (*domain.RentalTable, error)

// DatasetStore owns the base rental table. The table is loaded on first use,
// concurrent first callers share a single load, and it is read-only afterwards.
// A failed load is not cached.
type DatasetStore struct {
	cfg     config.DatasetConfig
	load    TableLoader
	metrics *infrastructure.Metrics
	logger  *slog.Logger

	group    singleflight.Group
	mu       sync.RWMutex
	table    *domain.RentalTable
	loadedAt time.Time
}

// StoreOption configures a DatasetStore
type StoreOption func(*DatasetStore)

// WithLoader replaces the dataset loader
func WithLoader(load TableLoader) StoreOption {
	return func(s *DatasetStore) { s.load = load }
}

// WithStoreMetrics records load attempts on m
func WithStoreMetrics(m *infrastructure.Metrics) StoreOption {
	return func(s *DatasetStore) { s.metrics = m }
}

// NewDatasetStore creates a store for the dataset described by cfg
func NewDatasetStore(cfg config.DatasetConfig, logger *slog.Logger, opts ...StoreOption) *DatasetStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DatasetStore{
		cfg:    cfg,
		load:   dataprocessing.LoadTable,
		logger: infrastructure.WithComponent(logger, "dataset_store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the base table, loading it on first use
func (s *DatasetStore) Table(ctx context.Context) (*domain.RentalTable, error) {
	if table := s.current(); table != nil {
		return table, nil
	}

	// The shared load must not die with whichever caller started it
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan("table", func() (any, error) {
		if table := s.current(); table != nil {
			return table, nil
		}
		return s.loadTable(loadCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.RentalTable), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *DatasetStore) loadTable(ctx context.Context) (*domain.RentalTable, error) {
	start := time.Now()
	table, err := s.load(ctx, s.cfg.Path, dataprocessing.LoadOptions{
		Sheet:  s.cfg.Sheet,
		Table:  s.cfg.Table,
		Logger: s.logger,
	})
	if err != nil {
		s.metrics.RecordDatasetLoad(ctx, s.cfg.Path, 0, err)
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("path", s.cfg.Path),
			slog.String("error", err.Error()))
		if apperrors.IsType(err, apperrors.ErrTypeLoad) {
			return nil, err
		}
		return nil, apperrors.NewLoadError("failed to load dataset", err).WithContext("path", s.cfg.Path)
	}

	s.mu.Lock()
	s.table = table
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.metrics.RecordDatasetLoad(ctx, table.Source, table.Len(), nil)
	s.logger.InfoContext(ctx, "dataset ready",
		slog.String("source", table.Source),
		slog.Int("rows", table.Len()),
		slog.Duration("duration", time.Since(start)))

	return table, nil
}

func (s *DatasetStore) current() *domain.RentalTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Loaded reports whether the base table is in memory
func (s *DatasetStore) Loaded() bool {
	return s.current() != nil
}

// LoadedAt returns when the table was loaded, zero before that
func (s *DatasetStore) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// Info describes the loaded table, loading it if needed
func (s *DatasetStore) Info(ctx context.Context) (domain.DatasetInfo, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return domain.DatasetInfo{}, err
	}
	return table.Info(), nil
}
