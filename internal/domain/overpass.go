package domain

// OverpassResponse - ответ Overpass API на запрос relation + member ways
type OverpassResponse struct {
	Version   float64           `json:"version"`
	Generator string            `json:"generator"`
	Elements  []OverpassElement `json:"elements"`
}

// OverpassElement - элемент OSM: relation или way с геометрией
type OverpassElement struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Members  []OverpassMember  `json:"members,omitempty"`
	Geometry []OverpassNode    `json:"geometry,omitempty"`
	Tags     map[string]string `json:"tags,omitempty"`
}

// OverpassMember - член relation (way с ролью outer/inner)
type OverpassMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

// OverpassNode - узел геометрии way
type OverpassNode struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// OuterSegments извлекает внешние сегменты границы из ответа Overpass.
// Берутся ways с ролью "outer" или пустой ролью; ways с ролью "inner"
// (анклавы) игнорируются. Сегменты короче двух точек отбрасываются
func (r *OverpassResponse) OuterSegments() []Segment {
	outerRefs := make(map[int64]bool)
	for _, el := range r.Elements {
		if el.Type != "relation" {
			continue
		}
		for _, m := range el.Members {
			if m.Type == "way" && (m.Role == "outer" || m.Role == "") {
				outerRefs[m.Ref] = true
			}
		}
	}

	var segments []Segment
	for _, el := range r.Elements {
		if el.Type != "way" || !outerRefs[el.ID] {
			continue
		}
		if len(el.Geometry) < 2 {
			continue
		}

		segment := make(Segment, len(el.Geometry))
		for i, node := range el.Geometry {
			segment[i] = Point{Lon: node.Lon, Lat: node.Lat}
		}
		segments = append(segments, segment)
	}

	return segments
}

// NominatimResult - результат поиска Nominatim
type NominatimResult struct {
	OSMType     string `json:"osm_type"`
	OSMID       int64  `json:"osm_id"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Type        string `json:"type"`
	Class       string `json:"class"`
}

// RelationCandidate - подобранный кандидат relation для города
type RelationCandidate struct {
	RelationID  int64   `json:"relation_id"`
	DisplayName string  `json:"display_name"`
	Center      Point   `json:"center"`
	DistanceKm  float64 `json:"distance_km"`
}
