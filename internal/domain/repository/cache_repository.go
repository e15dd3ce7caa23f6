package repository

import (
	"context"
	"time"

	"github.com/city-boundary-service/internal/domain"
)

// CacheRepository - кэш отрендеренных GeoJSON и статистики
type CacheRepository interface {
	GetGeoJSON(ctx context.Context, cityID string) ([]byte, error)
	SetGeoJSON(ctx context.Context, cityID string, data []byte, ttl time.Duration) error
	DeleteGeoJSON(ctx context.Context, cityID string) error

	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
