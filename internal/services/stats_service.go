package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/theblitlabs/system-stats/internal/core/ports"
	"github.com/theblitlabs/system-stats/internal/models"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

type StatsService struct {
	provider ports.MetricsProvider
	parallel bool
}

// NewStatsService creates a service over provider. With parallel set, the
// selected categories of one request are sampled concurrently.
func NewStatsService(provider ports.MetricsProvider, parallel bool) *StatsService {
	return &StatsService{
		provider: provider,
		parallel: parallel,
	}
}

// Collect samples the selected categories in response order. An empty
// selection yields a single aggregate entry holding every category. Provider failures are returned
// wrapped in ErrInternal; a result without a single usable entry is
// ErrNoStatsCollected.
func (s *StatsService) Collect(ctx context.Context, selection models.MetricSelection) ([]*models.MetricRecord, error) {
	log := logger.WithComponent("stats_service")

	var stats []*models.MetricRecord
	if selection.Empty() {
		log.Info().Msg("Sending all stats")
		all, err := s.provider.SampleAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		if all != nil {
			stats = append(stats, models.NewAggregateRecord(all))
		}
	} else {
		selected, err := s.collectSelected(ctx, selection.Categories())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		stats = selected
	}

	if !hasStats(stats) {
		return nil, ErrNoStatsCollected
	}
	return stats, nil
}

func (s *StatsService) collectSelected(ctx context.Context, categories []models.Category) ([]*models.MetricRecord, error) {
	log := logger.WithComponent("stats_service")
	samplers := make([]func(context.Context) (*models.MetricRecord, error), len(categories))
	for i, category := range categories {
		sample, err := s.sampler(category)
		if err != nil {
			return nil, err
		}
		samplers[i] = sample
	}

	records := make([]*models.MetricRecord, len(categories))
	var g errgroup.Group
	if !s.parallel {
		g.SetLimit(1)
	}

	for i, category := range categories {
		i, category, sample := i, category, samplers[i]
		g.Go(func() error {
			log.Info().Str("category", string(category)).Msg("Checking usage")
			record, err := sample(ctx)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *StatsService) sampler(category models.Category) (func(context.Context) (*models.MetricRecord, error), error) {
	switch category {
	case models.CategoryCPU:
		return s.provider.SampleCPU, nil
	case models.CategoryMemory:
		return s.provider.SampleMemory, nil
	case models.CategoryDisk:
		return s.provider.SampleDisk, nil
	case models.CategoryNetwork:
		return s.provider.SampleNetwork, nil
	default:
		return nil, fmt.Errorf("unknown metric category %q", category)
	}
}

func hasStats(stats []*models.MetricRecord) bool {
	for _, stat := range stats {
		if stat.HasReadings() {
			return true
		}
	}
	return false
}

var _ IStatsService = (*StatsService)(nil)
