package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/city-boundary-service/internal/domain"
)

// PipelineResult - итог прогона пайплайна для одного города
type PipelineResult struct {
	CityID           string          `json:"city_id"`
	Valid            bool            `json:"valid"`
	AreaKm2          float64         `json:"area_km2"`
	AreaRatio        *float64        `json:"area_ratio,omitempty"`
	QualityScore     float64         `json:"quality_score"`
	PointCount       int             `json:"point_count"`
	PolygonCount     int             `json:"polygon_count"`
	LeftoverSegments int             `json:"leftover_segments"`
	Issues           []string        `json:"issues,omitempty"`
	Warnings         []string        `json:"warnings,omitempty"`
	GeoJSON          json.RawMessage `json:"geojson,omitempty"`
}

// BoundarySummary - граница без geojson-тела, для листингов
type BoundarySummary struct {
	CityID        string    `json:"city_id"`
	Name          string    `json:"name"`
	Country       string    `json:"country"`
	OSMRelationID int64     `json:"osm_relation_id"`
	AreaKm2       float64   `json:"area_km2"`
	AreaRatio     *float64  `json:"area_ratio,omitempty"`
	QualityScore  float64   `json:"quality_score"`
	PointCount    int       `json:"point_count"`
	PolygonCount  int       `json:"polygon_count"`
	Source        string    `json:"source"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListBoundariesResponse - ответ на листинг границ
type ListBoundariesResponse struct {
	Boundaries []BoundarySummary `json:"boundaries"`
	Total      int               `json:"total"`
}

// EnqueueDownloadResponse - подтверждение постановки в очередь
type EnqueueDownloadResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	CityID string    `json:"city_id"`
	Status string    `json:"status"`
}

// ConvertBoundarySummary преобразует domain.CityBoundary в BoundarySummary
func ConvertBoundarySummary(b *domain.CityBoundary) BoundarySummary {
	return BoundarySummary{
		CityID:        b.CityID,
		Name:          b.Name,
		Country:       b.Country,
		OSMRelationID: b.OSMRelationID,
		AreaKm2:       b.AreaKm2,
		AreaRatio:     b.AreaRatio,
		QualityScore:  b.QualityScore,
		PointCount:    b.PointCount,
		PolygonCount:  b.PolygonCount,
		Source:        b.Source,
		UpdatedAt:     b.UpdatedAt,
	}
}
