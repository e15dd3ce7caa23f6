package repository

import (
	"context"

	"github.com/city-boundary-service/internal/domain"
)

// BoundaryRepository - хранилище загруженных границ городов
type BoundaryRepository interface {
	// Upsert сохраняет границу, предварительно сделав backup предыдущей версии
	Upsert(ctx context.Context, boundary *domain.CityBoundary) error

	// GetByCityID возвращает границу города по его идентификатору
	GetByCityID(ctx context.Context, cityID string) (*domain.CityBoundary, error)

	// List возвращает сохранённые границы
	List(ctx context.Context, limit, offset int) ([]*domain.CityBoundary, error)

	// GetStatistics возвращает агрегированную статистику по границам
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
}
