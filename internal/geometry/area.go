package geometry

import (
	"math"

	"github.com/city-boundary-service/internal/domain"
)

// kmPerDegree - километров в одном градусе широты (~111 км).
// Для долготы масштаб сжимается на cos(широты)
const kmPerDegree = 111.0

// RingArea вычисляет площадь кольца в км² по формуле шнурков (shoelace)
// в градусном пространстве с поправкой на среднюю широту.
// Это плоская аппроксимация, пригодная для городских масштабов (десятки км);
// на границах в несколько градусов накапливает ошибку. Точность сознательно
// согласована с широкими допусками валидации, менять на честную сферическую
// площадь без пересмотра порогов нельзя
func RingArea(ring domain.Ring) float64 {
	if len(ring) < 3 {
		return 0
	}

	coords := ring
	if coords[0] != coords[len(coords)-1] {
		coords = append(append(domain.Ring{}, coords...), coords[0])
	}

	areaDeg2 := 0.0
	n := len(coords) - 1
	for i := 0; i < n; i++ {
		x1, y1 := coords[i].Lon, coords[i].Lat
		x2, y2 := coords[i+1].Lon, coords[i+1].Lat
		areaDeg2 += x1*y2 - x2*y1
	}
	areaDeg2 = math.Abs(areaDeg2) / 2.0

	// Средняя широта для масштабирования долготы
	sumLat := 0.0
	for _, p := range coords {
		sumLat += p.Lat
	}
	avgLat := sumLat / float64(len(coords))

	lonKmPerDeg := kmPerDegree * math.Cos(toRadians(math.Abs(avgLat)))

	return areaDeg2 * kmPerDegree * lonKmPerDeg
}

// BoundaryArea - суммарная площадь колец границы.
// MultiPolygon = сумма внешних колец; дырки не вычитаются
func BoundaryArea(rings []domain.Ring) float64 {
	total := 0.0
	for _, ring := range rings {
		total += RingArea(ring)
	}
	return total
}

// BoundingBox возвращает габариты набора колец в градусах
func BoundingBox(rings []domain.Ring) (minLon, minLat, maxLon, maxLat float64) {
	minLon, minLat = math.Inf(1), math.Inf(1)
	maxLon, maxLat = math.Inf(-1), math.Inf(-1)

	for _, ring := range rings {
		for _, p := range ring {
			minLon = math.Min(minLon, p.Lon)
			maxLon = math.Max(maxLon, p.Lon)
			minLat = math.Min(minLat, p.Lat)
			maxLat = math.Max(maxLat, p.Lat)
		}
	}
	return minLon, minLat, maxLon, maxLat
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
