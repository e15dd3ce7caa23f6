package dto

// ProcessSegmentsRequest - запрос на сборку границы из готовых сегментов.
// Каждый сегмент - список точек [lon, lat]
type ProcessSegmentsRequest struct {
	CityID          string        `json:"city_id" validate:"required,city_id"`
	Name            string        `json:"name" validate:"required,min=1"`
	Country         string        `json:"country" validate:"required,min=2"`
	Source          string        `json:"source" validate:"omitempty,max=128"`
	OSMRelationID   int64         `json:"osm_relation_id" validate:"omitempty,min=1"`
	ExpectedAreaKm2 *float64      `json:"expected_area_km2,omitempty" validate:"omitempty,gt=0"`
	Segments        [][][]float64 `json:"segments" validate:"required,min=1"`
}

// EnqueueDownloadRequest - запрос на постановку загрузки границы в очередь
type EnqueueDownloadRequest struct {
	CityID     string  `json:"city_id" validate:"required,city_id"`
	Name       string  `json:"name" validate:"required,min=1"`
	Country    string  `json:"country" validate:"required,min=2"`
	CenterLat  float64 `json:"center_lat" validate:"min=-90,max=90"`
	CenterLon  float64 `json:"center_lon" validate:"min=-180,max=180"`
	RelationID *int64  `json:"relation_id,omitempty" validate:"omitempty,min=1"`
}

// ListBoundariesRequest - параметры листинга границ
type ListBoundariesRequest struct {
	Limit  int `json:"limit" validate:"min=1,max=200"`
	Offset int `json:"offset" validate:"omitempty,min=0"`
}
