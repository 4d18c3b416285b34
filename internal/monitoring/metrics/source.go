package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// Source is the raw OS counter reader behind the collector.
type Source interface {
	// CPUPercent blocks for window and returns the utilisation over it.
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error)
	// BytesReceived is the host-wide received byte counter.
	BytesReceived(ctx context.Context) (uint64, error)
}

// HostSource reads the local host through gopsutil.
type HostSource struct{}

func NewHostSource() *HostSource {
	return &HostSource{}
}

func (HostSource) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	percent, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(percent) == 0 {
		return 0, errors.New("no cpu usage reported")
	}
	return percent[0], nil
}

func (HostSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (HostSource) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

func (HostSource) BytesReceived(ctx context.Context) (uint64, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, err
	}
	if len(counters) == 0 {
		return 0, errors.New("no network counters reported")
	}
	return counters[0].BytesRecv, nil
}

var _ Source = (*HostSource)(nil)
