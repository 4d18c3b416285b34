package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/theblitlabs/system-stats/internal/core/ports"
	"github.com/theblitlabs/system-stats/internal/models"
	"github.com/theblitlabs/system-stats/internal/telemetry"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

// ErrProviderUnavailable wraps every failure to read the OS metric source.
var ErrProviderUnavailable = errors.New("metrics provider unavailable")

const (
	DefaultSampleWindow = time.Second
	DefaultDiskPath     = "/"

	bytesPerMegabyte = 1024 * 1024
)

var tracer = otel.Tracer("github.com/theblitlabs/system-stats/internal/monitoring/metrics")

type CollectorConfig struct {
	// DiskPath is the mount point reported by SampleDisk.
	DiskPath string
	// SampleWindow is how long CPU and network samples observe the host.
	SampleWindow time.Duration
	// Parallel lets SampleAll run the four samples at once.
	Parallel bool
}

// SystemMetricsCollector implements the MetricsProvider interface for host metrics
type SystemMetricsCollector struct {
	source   Source
	diskPath string
	window   time.Duration
	parallel bool
}

// NewSystemMetricsCollector creates a collector reading from source, or from
// the local host when source is nil.
func NewSystemMetricsCollector(cfg CollectorConfig, source Source) *SystemMetricsCollector {
	if source == nil {
		source = NewHostSource()
	}
	if cfg.SampleWindow <= 0 {
		cfg.SampleWindow = DefaultSampleWindow
	}
	if cfg.DiskPath == "" {
		cfg.DiskPath = DefaultDiskPath
	}

	return &SystemMetricsCollector{
		source:   source,
		diskPath: cfg.DiskPath,
		window:   cfg.SampleWindow,
		parallel: cfg.Parallel,
	}
}

// SampleCPU blocks for one sampling window.
func (c *SystemMetricsCollector) SampleCPU(ctx context.Context) (*models.MetricRecord, error) {
	return c.observe(ctx, models.CategoryCPU, func(ctx context.Context) (*models.MetricRecord, error) {
		percent, err := c.source.CPUPercent(ctx, c.window)
		if err != nil {
			return nil, err
		}
		log := logger.WithComponent("metrics")
		log.Info().Float64("cpu_percent", percent).Msg("CPU usage sampled")
		return models.NewCPURecord(percent), nil
	})
}

func (c *SystemMetricsCollector) SampleMemory(ctx context.Context) (*models.MetricRecord, error) {
	return c.observe(ctx, models.CategoryMemory, func(ctx context.Context) (*models.MetricRecord, error) {
		vm, err := c.source.VirtualMemory(ctx)
		if err != nil {
			return nil, err
		}
		log := logger.WithComponent("metrics")
		log.Info().
			Uint64("total", vm.Total).
			Uint64("used", vm.Used).
			Float64("percent", vm.UsedPercent).
			Msg("Memory usage sampled")
		return models.NewMemoryRecord(models.MemoryStats{
			Total:     vm.Total,
			Available: vm.Available,
			Percent:   vm.UsedPercent,
			Used:      vm.Used,
			Free:      vm.Free,
		}), nil
	})
}

func (c *SystemMetricsCollector) SampleDisk(ctx context.Context) (*models.MetricRecord, error) {
	return c.observe(ctx, models.CategoryDisk, func(ctx context.Context) (*models.MetricRecord, error) {
		usage, err := c.source.DiskUsage(ctx, c.diskPath)
		if err != nil {
			return nil, err
		}
		log := logger.WithComponent("metrics")
		log.Info().
			Str("path", c.diskPath).
			Uint64("used", usage.Used).
			Msg("Disk usage sampled")
		return models.NewDiskRecord(models.DiskStats{
			Path:    c.diskPath,
			Total:   usage.Total,
			Used:    usage.Used,
			Free:    usage.Free,
			Percent: usage.UsedPercent,
		}), nil
	})
}

// SampleNetwork reports megabytes received during one sampling window. A
// counter that goes backwards across the window yields 0.
func (c *SystemMetricsCollector) SampleNetwork(ctx context.Context) (*models.MetricRecord, error) {
	return c.observe(ctx, models.CategoryNetwork, func(ctx context.Context) (*models.MetricRecord, error) {
		start, err := c.source.BytesReceived(ctx)
		if err != nil {
			return nil, err
		}

		if err := sleep(ctx, c.window); err != nil {
			return nil, err
		}

		end, err := c.source.BytesReceived(ctx)
		if err != nil {
			return nil, err
		}

		var received uint64
		if end > start {
			received = end - start
		}
		mb := float64(received) / bytesPerMegabyte

		log := logger.WithComponent("metrics")
		log.Info().Float64("megabytes_received", mb).Msg("Network bandwidth sampled")
		return models.NewNetworkRecord(mb), nil
	})
}

// SampleAll samples every category. A failed category leaves a nil entry and
// does not stop the others; the slice is nil only when all of them failed.
func (c *SystemMetricsCollector) SampleAll(ctx context.Context) ([]*models.MetricRecord, error) {
	log := logger.WithComponent("metrics")
	samplers := []struct {
		category models.Category
		sample   func(context.Context) (*models.MetricRecord, error)
	}{
		{models.CategoryCPU, c.SampleCPU},
		{models.CategoryMemory, c.SampleMemory},
		{models.CategoryDisk, c.SampleDisk},
		{models.CategoryNetwork, c.SampleNetwork},
	}

	records := make([]*models.MetricRecord, len(samplers))
	var g errgroup.Group
	if !c.parallel {
		g.SetLimit(1)
	}

	for i, s := range samplers {
		i, s := i, s
		g.Go(func() error {
			record, err := s.sample(ctx)
			if err != nil {
				log.Error().Err(err).Str("category", string(s.category)).Msg("Sample failed")
				return nil
			}
			records[i] = record
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, r := range records {
		if r != nil {
			return records, nil
		}
	}
	return nil, nil
}

func (c *SystemMetricsCollector) observe(
	ctx context.Context,
	category models.Category,
	sample func(context.Context) (*models.MetricRecord, error),
) (*models.MetricRecord, error) {
	ctx, span := tracer.Start(ctx, "metrics.sample."+string(category))
	defer span.End()

	start := time.Now()
	record, err := sample(ctx)
	telemetry.RecordSample(ctx, string(category), time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %s: %w", ErrProviderUnavailable, category, err)
	}
	return record, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Ensure SystemMetricsCollector implements ports.MetricsProvider
var _ ports.MetricsProvider = (*SystemMetricsCollector)(nil)
