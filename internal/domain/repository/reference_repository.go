package repository

import (
	"context"

	"github.com/city-boundary-service/internal/domain"
)

// ReferenceRepository - справочник городов: ожидаемые площади,
// известные relation ID и координаты центров
type ReferenceRepository interface {
	// GetByCityID возвращает справочные данные города
	GetByCityID(ctx context.Context, cityID string) (*domain.CityReference, error)

	// ListWithoutBoundary возвращает города из справочника без сохранённой границы
	ListWithoutBoundary(ctx context.Context, limit int) ([]*domain.CityReference, error)

	// Upsert сохраняет справочную запись
	Upsert(ctx context.Context, ref *domain.CityReference) error
}
