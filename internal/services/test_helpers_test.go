package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bikepulse/pkg/contracts/domain"
)

// MockTableSource is a mock for the TableSource interface
type MockTableSource struct {
	mock.Mock
}

func (m *MockTableSource) Table(ctx context.Context) (*domain.RentalTable, error) {
	args := m.Called(ctx)
	if table, ok := args.Get(0).(*domain.RentalTable); ok {
		return table, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockDatasetProbe is a mock for the DatasetProbe interface
type MockDatasetProbe struct {
	mock.Mock
}

func (m *MockDatasetProbe) Loaded() bool {
	return m.Called().Bool(0)
}

func (m *MockDatasetProbe) Info(ctx context.Context) (domain.DatasetInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DatasetInfo), args.Error(1)
}
