package domain

import "time"

// Point - точка в координатах WGS84 (longitude, latitude), в десятичных градусах
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Segment - открытая ломаная (OSM way с ролью "outer" или пустой ролью),
// один кусок границы административного relation
type Segment []Point

// Ring - замкнутый контур полигона: первая и последняя точка совпадают
// в пределах tolerance. Производится стичером, не мутируется после создания
type Ring []Point

// Boundary - граница города из одного или нескольких колец.
// Одно кольцо = Polygon, несколько = MultiPolygon
type Boundary struct {
	Rings      []Ring             `json:"rings"`
	Provenance BoundaryProvenance `json:"provenance"`
}

// BoundaryProvenance - метаданные происхождения границы,
// прозрачно прокидываются в properties GeoJSON
type BoundaryProvenance struct {
	Name           string `json:"name"`
	Source         string `json:"source"`
	OSMRelationID  int64  `json:"osm_relation_id"`
	ProcessingDate string `json:"processing_date"`
}

// PointCount - суммарное количество точек по всем кольцам
func (b Boundary) PointCount() int {
	total := 0
	for _, ring := range b.Rings {
		total += len(ring)
	}
	return total
}

// ValidationVerdict - результат валидации площади границы.
// Создаётся один раз на вызов Validate, иммутабельный
type ValidationVerdict struct {
	Valid        bool     `json:"valid"`
	AreaKm2      float64  `json:"area_km2"`
	AreaRatio    *float64 `json:"area_ratio,omitempty"`
	QualityScore float64  `json:"quality_score"`
	PointCount   int      `json:"point_count"`
	Issues       []string `json:"issues"`
	Warnings     []string `json:"warnings"`
}

// CityBoundary - сохранённая граница города (запись в city_boundaries)
type CityBoundary struct {
	ID            int64     `json:"id" db:"id"`
	CityID        string    `json:"city_id" db:"city_id"`
	Name          string    `json:"name" db:"name"`
	Country       string    `json:"country" db:"country"`
	OSMRelationID int64     `json:"osm_relation_id" db:"osm_relation_id"`
	GeoJSON       []byte    `json:"-" db:"geojson"`
	AreaKm2       float64   `json:"area_km2" db:"area_km2"`
	AreaRatio     *float64  `json:"area_ratio,omitempty" db:"area_ratio"`
	QualityScore  float64   `json:"quality_score" db:"quality_score"`
	PointCount    int       `json:"point_count" db:"point_count"`
	PolygonCount  int       `json:"polygon_count" db:"polygon_count"`
	Issues        []string  `json:"issues,omitempty" db:"-"`
	Source        string    `json:"source" db:"source"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// CityReference - справочные данные города для discovery и валидации.
// Бывшие хардкод-словари (known relations, known areas) как данные, не код
type CityReference struct {
	CityID          string   `json:"city_id" db:"city_id"`
	Name            string   `json:"name" db:"name"`
	Country         string   `json:"country" db:"country"`
	ExpectedAreaKm2 *float64 `json:"expected_area_km2,omitempty" db:"expected_area_km2"`
	KnownRelationID *int64   `json:"known_relation_id,omitempty" db:"known_relation_id"`
	CenterLon       float64  `json:"center_lon" db:"center_lon"`
	CenterLat       float64  `json:"center_lat" db:"center_lat"`
	AdminLevels     []int    `json:"admin_levels,omitempty" db:"-"`
}

// Statistics - агрегированная статистика по загруженным границам
type Statistics struct {
	TotalBoundaries int     `json:"total_boundaries"`
	ValidBoundaries int     `json:"valid_boundaries"`
	AvgQualityScore float64 `json:"avg_quality_score"`
	TotalAreaKm2    float64 `json:"total_area_km2"`
	MultiPolygons   int     `json:"multipolygon_count"`
}
