package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/geometry"
)

func squareRing(origin domain.Point, side float64) domain.Ring {
	return domain.Ring{
		origin,
		pt(origin.Lon+side, origin.Lat),
		pt(origin.Lon+side, origin.Lat+side),
		pt(origin.Lon, origin.Lat+side),
		origin,
	}
}

func TestRingArea(t *testing.T) {
	t.Run("degenerate ring yields zero", func(t *testing.T) {
		assert.Zero(t, geometry.RingArea(nil))
		assert.Zero(t, geometry.RingArea(domain.Ring{pt(0, 0), pt(1, 1)}))
	})

	t.Run("city-scale square near equator", func(t *testing.T) {
		// Квадрат 0.01°x0.01° ≈ 1.11x1.11 км ≈ 1.23 км²
		area := geometry.RingArea(squareRing(pt(0, 0), 0.01))
		assert.InDelta(t, 1.2321, area, 0.001)
	})

	t.Run("one-degree square shows the degree scale factor", func(t *testing.T) {
		// 1°x1° ≈ 111x111 км с поправкой на среднюю широту
		area := geometry.RingArea(squareRing(pt(0, 0), 1.0))
		assert.InDelta(t, 111.0*111.0, area, 111.0*111.0*0.01)
	})

	t.Run("longitude shrinks with latitude", func(t *testing.T) {
		equator := geometry.RingArea(squareRing(pt(0, 0), 0.01))
		milan := geometry.RingArea(squareRing(pt(9.19, 45.46), 0.01))
		assert.Less(t, milan, equator)
	})

	t.Run("non-negative for rotations and reflections", func(t *testing.T) {
		base := squareRing(pt(2.17, 41.38), 0.02)
		open := base[:len(base)-1]

		reference := geometry.RingArea(base)
		require.Greater(t, reference, 0.0)

		// Все ротации списка точек
		for shift := 0; shift < len(open); shift++ {
			rotated := make(domain.Ring, 0, len(open)+1)
			for i := 0; i < len(open); i++ {
				rotated = append(rotated, open[(i+shift)%len(open)])
			}
			rotated = append(rotated, rotated[0])

			area := geometry.RingArea(rotated)
			assert.GreaterOrEqual(t, area, 0.0)
			// Средняя широта чуть меняется от того, какая точка задублирована
			// замыканием, поэтому допуск не нулевой
			assert.InDelta(t, reference, area, 1e-3)
		}

		// Обратный обход (отражение)
		reversed := make(domain.Ring, len(base))
		for i, p := range base {
			reversed[len(base)-1-i] = p
		}
		assert.InDelta(t, reference, geometry.RingArea(reversed), 1e-9)
	})

	t.Run("unclosed ring is closed implicitly", func(t *testing.T) {
		closed := squareRing(pt(0, 0), 0.01)
		open := closed[:len(closed)-1]
		assert.InDelta(t, geometry.RingArea(closed), geometry.RingArea(open), 1e-6)
	})
}

func TestBoundaryArea(t *testing.T) {
	t.Run("sums all rings", func(t *testing.T) {
		rings := []domain.Ring{
			squareRing(pt(0, 0), 0.01),
			squareRing(pt(1, 0), 0.01),
		}

		total := geometry.BoundaryArea(rings)
		assert.InDelta(t, 2*geometry.RingArea(rings[0]), total, 1e-6)
	})

	t.Run("empty boundary has zero area", func(t *testing.T) {
		assert.Zero(t, geometry.BoundaryArea(nil))
	})
}

func TestBoundingBox(t *testing.T) {
	rings := []domain.Ring{
		squareRing(pt(0, 0), 0.01),
		squareRing(pt(1, 2), 0.01),
	}

	minLon, minLat, maxLon, maxLat := geometry.BoundingBox(rings)
	assert.Equal(t, 0.0, minLon)
	assert.Equal(t, 0.0, minLat)
	assert.Equal(t, 1.01, maxLon)
	assert.Equal(t, 2.01, maxLat)
}
