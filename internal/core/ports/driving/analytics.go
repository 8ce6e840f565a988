package driving

import (
	"context"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// AnalyticsService aggregates corpus-level statistics
type AnalyticsService interface {
	// Trends returns popular tags, yearly stats and common keywords
	Trends(ctx context.Context) (*domain.Trends, error)

	// Timeline groups uploads by calendar month
	Timeline(ctx context.Context) ([]domain.TimelineBucket, error)
}
