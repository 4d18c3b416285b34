package services

import (
	"context"

	"github.com/theblitlabs/system-stats/internal/models"
)

type IStatsService interface {
	Collect(ctx context.Context, selection models.MetricSelection) ([]*models.MetricRecord, error)
}
