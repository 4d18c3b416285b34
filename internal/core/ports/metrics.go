package ports

import (
	"context"

	"github.com/theblitlabs/system-stats/internal/models"
)

// MetricsProvider produces point-in-time host readings. Each Sample call is
// independent and returns an error wrapping the provider failure.
type MetricsProvider interface {
	SampleCPU(ctx context.Context) (*models.MetricRecord, error)
	SampleMemory(ctx context.Context) (*models.MetricRecord, error)
	SampleDisk(ctx context.Context) (*models.MetricRecord, error)
	SampleNetwork(ctx context.Context) (*models.MetricRecord, error)
	// SampleAll returns one entry per category in response order, nil for
	// categories that failed, or a nil slice when nothing could be sampled.
	SampleAll(ctx context.Context) ([]*models.MetricRecord, error)
}
