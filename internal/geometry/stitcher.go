package geometry

import (
	"math"

	"github.com/city-boundary-service/internal/domain"
)

// DefaultTolerance - допуск совпадения концов сегментов, в градусах.
// Евклидово расстояние в градусном пространстве: для городских масштабов
// этого достаточно, геодезическая точность здесь не нужна
const DefaultTolerance = 0.0001

// minRingPoints - минимум точек валидного кольца (3 уникальных + замыкающая)
const minRingPoints = 4

// Stitcher собирает неупорядоченный набор открытых сегментов (OSM ways)
// в замкнутые кольца жадным сопоставлением концов. Алгоритм детерминирован
// при фиксированном порядке входа; на неоднозначных стыках (>2 сегментов
// в одной точке) побеждает первое совпадение по порядку списка.
// Stateless - безопасен для конкурентных вызовов
type Stitcher struct {
	tolerance float64
}

// NewStitcher - создание нового Stitcher с заданным допуском
func NewStitcher(tolerance float64) *Stitcher {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Stitcher{tolerance: tolerance}
}

// StitchResult - результат сборки: кольца и количество сегментов,
// которые не удалось присоединить ни к одному кольцу
type StitchResult struct {
	Rings            []domain.Ring
	LeftoverSegments int
}

// Stitch собирает сегменты в замкнутые кольца.
// Никогда не возвращает ошибку: мусорный вход даёт пустой результат,
// решение принять/отклонить выносится в валидацию площади
func (s *Stitcher) Stitch(segments []domain.Segment) StitchResult {
	if len(segments) == 0 {
		return StitchResult{}
	}

	unused := make([]domain.Segment, 0, len(segments))
	leftover := 0
	for _, seg := range segments {
		if len(seg) < 2 {
			leftover++
			continue
		}
		unused = append(unused, seg)
	}

	var rings []domain.Ring

	for len(unused) > 0 {
		// Первый неиспользованный сегмент становится затравкой цепочки
		chain := make(domain.Ring, len(unused[0]))
		copy(chain, unused[0])
		unused = unused[1:]
		consumed := 1

		// Ограничение итераций страхует от зацикливания
		maxIterations := 2 * len(segments)
		for iter := 0; iter < maxIterations && len(unused) > 0; iter++ {
			if s.closed(chain) {
				break
			}

			idx, merged := s.connect(chain, unused)
			if idx < 0 {
				// Ни один сегмент не стыкуется - цепочка дальше не растёт
				break
			}

			chain = merged
			unused = append(unused[:idx], unused[idx+1:]...)
			consumed++
		}

		// Принудительное замыкание недозамкнутой цепочки
		if len(chain) >= 3 && !s.closed(chain) {
			chain = append(chain, chain[0])
		}

		if len(chain) >= minRingPoints {
			rings = append(rings, chain)
		} else {
			leftover += consumed
		}
	}

	return StitchResult{Rings: rings, LeftoverSegments: leftover}
}

// connect ищет первый сегмент, стыкующийся с концом или началом цепочки.
// Возвращает индекс сегмента и новую цепочку, либо -1
func (s *Stitcher) connect(chain domain.Ring, unused []domain.Segment) (int, domain.Ring) {
	chainStart := chain[0]
	chainEnd := chain[len(chain)-1]

	for i, way := range unused {
		if len(way) < 2 {
			continue
		}

		wayStart := way[0]
		wayEnd := way[len(way)-1]

		switch {
		case distanceDeg(chainEnd, wayStart) <= s.tolerance:
			// конец цепочки -> начало сегмента: дописываем без дублирующей точки
			return i, append(chain, way[1:]...)

		case distanceDeg(chainEnd, wayEnd) <= s.tolerance:
			// конец цепочки -> конец сегмента: дописываем развёрнутый сегмент
			return i, append(chain, reversed(way[:len(way)-1])...)

		case distanceDeg(chainStart, wayEnd) <= s.tolerance:
			// начало сегмента -> начало цепочки
			return i, prepend(chain, way[:len(way)-1])

		case distanceDeg(chainStart, wayStart) <= s.tolerance:
			return i, prepend(chain, reversed(way[1:]))
		}
	}

	return -1, nil
}

func (s *Stitcher) closed(chain domain.Ring) bool {
	return len(chain) >= 3 && distanceDeg(chain[0], chain[len(chain)-1]) <= s.tolerance
}

// distanceDeg - евклидово расстояние в градусном пространстве
func distanceDeg(a, b domain.Point) float64 {
	return math.Hypot(a.Lon-b.Lon, a.Lat-b.Lat)
}

func reversed(points []domain.Point) []domain.Point {
	result := make([]domain.Point, len(points))
	for i, p := range points {
		result[len(points)-1-i] = p
	}
	return result
}

func prepend(chain domain.Ring, points []domain.Point) domain.Ring {
	result := make(domain.Ring, 0, len(points)+len(chain))
	result = append(result, points...)
	return append(result, chain...)
}
