package geometry

import (
	"encoding/json"
	"fmt"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/city-boundary-service/internal/domain"
)

// EncodeBoundary рендерит границу в GeoJSON FeatureCollection с одной Feature.
// Одно кольцо - Polygon, несколько - MultiPolygon (по одному кольцу на полигон,
// без дырок). Provenance прокидывается в properties без обработки
func EncodeBoundary(b domain.Boundary) ([]byte, error) {
	g, err := toGeometry(b.Rings)
	if err != nil {
		return nil, err
	}

	feature := &geojson.Feature{
		Geometry: g,
		Properties: map[string]interface{}{
			"name":            b.Provenance.Name,
			"source":          b.Provenance.Source,
			"osm_relation_id": b.Provenance.OSMRelationID,
			"processing_date": b.Provenance.ProcessingDate,
			"polygon_count":   len(b.Rings),
			"total_points":    b.PointCount(),
		},
	}

	fc := &geojson.FeatureCollection{
		Features: []*geojson.Feature{feature},
	}

	return json.Marshal(fc)
}

func toGeometry(rings []domain.Ring) (geom.T, error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("boundary has no rings")
	}

	if len(rings) == 1 {
		return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ringCoords(rings[0])})
	}

	polygons := make([][][]geom.Coord, len(rings))
	for i, ring := range rings {
		polygons[i] = [][]geom.Coord{ringCoords(ring)}
	}
	return geom.NewMultiPolygon(geom.XY).SetCoords(polygons)
}

func ringCoords(ring domain.Ring) []geom.Coord {
	coords := make([]geom.Coord, len(ring))
	for i, p := range ring {
		coords[i] = geom.Coord{p.Lon, p.Lat}
	}
	return coords
}
