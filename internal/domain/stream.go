package domain

import "github.com/google/uuid"

// Названия Redis стримов
const (
	// StreamBoundaryDownload - очередь заданий на загрузку границ
	StreamBoundaryDownload = "stream:boundary:download"

	// StreamBoundaryDone - результаты обработки заданий
	StreamBoundaryDone = "stream:boundary:done"
)

// StreamMessage - сообщение из Redis стрима
type StreamMessage struct {
	ID   string
	Data map[string]interface{}
}

// BoundaryDownloadEvent - задание на загрузку границы города
type BoundaryDownloadEvent struct {
	JobID      uuid.UUID `json:"job_id"`
	CityID     string    `json:"city_id"`
	CityName   string    `json:"city_name"`
	Country    string    `json:"country"`
	CenterLon  float64   `json:"center_lon"`
	CenterLat  float64   `json:"center_lat"`
	RelationID *int64    `json:"relation_id,omitempty"`
}

// BoundaryDoneEvent - результат обработки задания
type BoundaryDoneEvent struct {
	JobID        uuid.UUID `json:"job_id"`
	CityID       string    `json:"city_id"`
	Success      bool      `json:"success"`
	AreaKm2      float64   `json:"area_km2,omitempty"`
	AreaRatio    *float64  `json:"area_ratio,omitempty"`
	QualityScore float64   `json:"quality_score,omitempty"`
	Issues       []string  `json:"issues,omitempty"`
	Error        string    `json:"error,omitempty"`
}
