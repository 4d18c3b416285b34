package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/theblitlabs/system-stats/internal/mocks"
	"github.com/theblitlabs/system-stats/internal/models"
)

func TestCollectSelected(t *testing.T) {
	for _, parallel := range []bool{true, false} {
		provider := new(mocks.MockMetricsProvider)
		provider.On("SampleCPU", mock.Anything).Return(models.NewCPURecord(50), nil)
		provider.On("SampleNetwork", mock.Anything).Return(models.NewNetworkRecord(1.5), nil)

		service := NewStatsService(provider, parallel)
		stats, err := service.Collect(context.Background(), models.MetricSelection{Network: true, CPU: true})
		require.NoError(t, err)

		require.Len(t, stats, 2)
		assert.Equal(t, models.CategoryCPU, stats[0].Category)
		assert.Equal(t, models.CategoryNetwork, stats[1].Category)
		provider.AssertExpectations(t)
		provider.AssertNotCalled(t, "SampleMemory", mock.Anything)
		provider.AssertNotCalled(t, "SampleDisk", mock.Anything)
		provider.AssertNotCalled(t, "SampleAll", mock.Anything)
	}
}

func TestCollectAllCategories(t *testing.T) {
	provider := new(mocks.MockMetricsProvider)
	provider.On("SampleCPU", mock.Anything).Return(models.NewCPURecord(10), nil)
	provider.On("SampleMemory", mock.Anything).Return(models.NewMemoryRecord(models.MemoryStats{Total: 1}), nil)
	provider.On("SampleDisk", mock.Anything).Return(models.NewDiskRecord(models.DiskStats{Path: "/"}), nil)
	provider.On("SampleNetwork", mock.Anything).Return(models.NewNetworkRecord(0), nil)

	stats, err := NewStatsService(provider, true).Collect(context.Background(),
		models.MetricSelection{CPU: true, Memory: true, Disk: true, Network: true})
	require.NoError(t, err)

	var categories []models.Category
	for _, s := range stats {
		categories = append(categories, s.Category)
	}
	assert.Equal(t, models.Categories, categories)
}

func TestCollectFallback(t *testing.T) {
	all := []*models.MetricRecord{
		models.NewCPURecord(10),
		models.NewMemoryRecord(models.MemoryStats{Total: 1}),
		nil,
		models.NewNetworkRecord(0),
	}
	provider := new(mocks.MockMetricsProvider)
	provider.On("SampleAll", mock.Anything).Return(all, nil)

	stats, err := NewStatsService(provider, true).Collect(context.Background(), models.MetricSelection{})
	require.NoError(t, err)

	require.Len(t, stats, 1)
	assert.Equal(t, models.CategoryAll, stats[0].Category)
	assert.Equal(t, all, stats[0].Records)
	provider.AssertNotCalled(t, "SampleCPU", mock.Anything)
}

func TestCollectFallbackWithoutReadings(t *testing.T) {
	provider := new(mocks.MockMetricsProvider)
	provider.On("SampleAll", mock.Anything).Return([]*models.MetricRecord{nil, nil, nil, nil}, nil)

	stats, err := NewStatsService(provider, true).Collect(context.Background(), models.MetricSelection{})
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrNoStatsCollected)
}

func TestCollectFallbackNilAggregate(t *testing.T) {
	provider := new(mocks.MockMetricsProvider)
	provider.On("SampleAll", mock.Anything).Return(nil, nil)

	stats, err := NewStatsService(provider, true).Collect(context.Background(), models.MetricSelection{})
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, ErrNoStatsCollected)
}

func TestCollectAllEntriesNil(t *testing.T) {
	provider := new(mocks.MockMetricsProvider)
	provider.On("SampleCPU", mock.Anything).Return(nil, nil)
	provider.On("SampleDisk", mock.Anything).Return(nil, nil)

	_, err := NewStatsService(provider, true).Collect(context.Background(), models.MetricSelection{CPU: true, Disk: true})
	assert.ErrorIs(t, err, ErrNoStatsCollected)
}

func TestCollectProviderFailure(t *testing.T) {
	cause := errors.New("Test Error")

	t.Run("selected category fails", func(t *testing.T) {
		provider := new(mocks.MockMetricsProvider)
		provider.On("SampleCPU", mock.Anything).Return(nil, cause)
		provider.On("SampleMemory", mock.Anything).Return(models.NewMemoryRecord(models.MemoryStats{}), nil)
		provider.On("SampleDisk", mock.Anything).Return(models.NewDiskRecord(models.DiskStats{}), nil)
		provider.On("SampleNetwork", mock.Anything).Return(models.NewNetworkRecord(0), nil)

		stats, err := NewStatsService(provider, true).Collect(context.Background(),
			models.MetricSelection{CPU: true, Memory: true, Disk: true, Network: true})
		assert.Nil(t, stats)
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("aggregate fails", func(t *testing.T) {
		provider := new(mocks.MockMetricsProvider)
		provider.On("SampleAll", mock.Anything).Return(nil, context.Canceled)

		_, err := NewStatsService(provider, false).Collect(context.Background(), models.MetricSelection{})
		assert.ErrorIs(t, err, ErrInternal)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
