package mocks

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/mock"
)

// MockSource stands in for the OS counter reader.
type MockSource struct {
	mock.Mock
}

func (m *MockSource) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mem.VirtualMemoryStat), args.Error(1)
}

func (m *MockSource) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*disk.UsageStat), args.Error(1)
}

func (m *MockSource) BytesReceived(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}
