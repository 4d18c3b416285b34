package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/theblitlabs/system-stats/internal/models"
)

type MockMetricsProvider struct {
	mock.Mock
}

func (m *MockMetricsProvider) record(args mock.Arguments) (*models.MetricRecord, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricRecord), args.Error(1)
}

func (m *MockMetricsProvider) SampleCPU(ctx context.Context) (*models.MetricRecord, error) {
	return m.record(m.Called(ctx))
}

func (m *MockMetricsProvider) SampleMemory(ctx context.Context) (*models.MetricRecord, error) {
	return m.record(m.Called(ctx))
}

func (m *MockMetricsProvider) SampleDisk(ctx context.Context) (*models.MetricRecord, error) {
	return m.record(m.Called(ctx))
}

func (m *MockMetricsProvider) SampleNetwork(ctx context.Context) (*models.MetricRecord, error) {
	return m.record(m.Called(ctx))
}

func (m *MockMetricsProvider) SampleAll(ctx context.Context) ([]*models.MetricRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MetricRecord), args.Error(1)
}
