package repository

import (
	"context"

	"github.com/city-boundary-service/internal/domain"
)

// OverpassRepository - загрузка OSM relation с member ways через Overpass API
type OverpassRepository interface {
	DownloadRelation(ctx context.Context, relationID int64) (*domain.OverpassResponse, error)
}

// NominatimRepository - поиск boundary relation города через Nominatim
type NominatimRepository interface {
	FindCityRelation(ctx context.Context, cityName, country string, expected domain.Point) (*domain.RelationCandidate, error)
}
