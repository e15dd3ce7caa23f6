package geometry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/geometry"
)

func pt(lon, lat float64) domain.Point {
	return domain.Point{Lon: lon, Lat: lat}
}

// unitSquare - четыре сегмента единичного квадрата в перемешанном порядке,
// два из них развёрнуты против естественного обхода
func unitSquare(scale float64) []domain.Segment {
	return []domain.Segment{
		{pt(0, 0), pt(scale, 0)},
		{pt(scale, scale), pt(scale, 0)},
		{pt(0, scale), pt(scale, scale)},
		{pt(0, 0), pt(0, scale)},
	}
}

func TestStitcher_Stitch(t *testing.T) {
	stitcher := geometry.NewStitcher(geometry.DefaultTolerance)

	t.Run("empty input returns empty result", func(t *testing.T) {
		result := stitcher.Stitch(nil)
		assert.Empty(t, result.Rings)
		assert.Zero(t, result.LeftoverSegments)
	})

	t.Run("scrambled reversed square closes into one ring", func(t *testing.T) {
		result := stitcher.Stitch(unitSquare(1.0))

		require.Len(t, result.Rings, 1)
		assert.Zero(t, result.LeftoverSegments)

		ring := result.Rings[0]
		// 4 уникальных точки + замыкающая
		assert.Len(t, ring, 5)
		assert.Equal(t, ring[0], ring[len(ring)-1])
	})

	t.Run("ring endpoints within tolerance", func(t *testing.T) {
		// Концы сегментов совпадают не точно, а в пределах допуска
		segments := []domain.Segment{
			{pt(0, 0), pt(1, 0)},
			{pt(1, 0.00005), pt(1, 1)},
			{pt(1, 1.00005), pt(0, 1)},
			{pt(0, 1), pt(0.00005, 0)},
		}

		result := stitcher.Stitch(segments)

		require.Len(t, result.Rings, 1)
		ring := result.Rings[0]
		first, last := ring[0], ring[len(ring)-1]
		assert.InDelta(t, first.Lon, last.Lon, geometry.DefaultTolerance)
		assert.InDelta(t, first.Lat, last.Lat, geometry.DefaultTolerance)
	})

	t.Run("dangling two-point stub is discarded", func(t *testing.T) {
		segments := []domain.Segment{
			{pt(10, 10), pt(11, 11)},
		}

		result := stitcher.Stitch(segments)

		assert.Empty(t, result.Rings)
		assert.Equal(t, 1, result.LeftoverSegments)
	})

	t.Run("unconnected stub reported as leftover", func(t *testing.T) {
		segments := append(unitSquare(1.0), domain.Segment{pt(50, 50), pt(51, 51)})

		result := stitcher.Stitch(segments)

		require.Len(t, result.Rings, 1)
		assert.Equal(t, 1, result.LeftoverSegments)
	})

	t.Run("two disjoint squares produce two rings", func(t *testing.T) {
		segments := append(unitSquare(1.0), []domain.Segment{
			{pt(5, 5), pt(6, 5)},
			{pt(6, 5), pt(6, 6)},
			{pt(6, 6), pt(5, 6)},
			{pt(5, 6), pt(5, 5)},
		}...)

		result := stitcher.Stitch(segments)

		require.Len(t, result.Rings, 2)
		assert.Zero(t, result.LeftoverSegments)

		total := geometry.BoundaryArea(result.Rings)
		single := geometry.RingArea(result.Rings[0])
		assert.Greater(t, total, single)
	})

	t.Run("open chain with three points is force-closed", func(t *testing.T) {
		// Два сегмента образуют незамкнутый угол из трёх точек
		segments := []domain.Segment{
			{pt(0, 0), pt(1, 0)},
			{pt(1, 0), pt(1, 1)},
		}

		result := stitcher.Stitch(segments)

		require.Len(t, result.Rings, 1)
		ring := result.Rings[0]
		assert.Len(t, ring, 4)
		assert.Equal(t, ring[0], ring[len(ring)-1])
	})

	t.Run("point conservation", func(t *testing.T) {
		segments := unitSquare(1.0)
		inputPoints := 0
		for _, seg := range segments {
			inputPoints += len(seg)
		}

		result := stitcher.Stitch(segments)

		distinct := map[domain.Point]struct{}{}
		for _, ring := range result.Rings {
			for _, p := range ring {
				distinct[p] = struct{}{}
			}
		}
		// Слияние только убирает дублирующиеся стыки, новых точек не появляется
		assert.LessOrEqual(t, len(distinct), inputPoints)
	})
}

func TestStitcher_OrderIndependence(t *testing.T) {
	// Для однозначного входа (не более двух сегментов в каждом стыке)
	// площадь результата не зависит от порядка сегментов
	stitcher := geometry.NewStitcher(geometry.DefaultTolerance)

	base := unitSquare(0.01)
	orders := [][]int{
		{0, 1, 2, 3},
		{3, 2, 1, 0},
		{2, 0, 3, 1},
		{1, 3, 0, 2},
	}

	var areas []float64
	for _, order := range orders {
		segments := make([]domain.Segment, len(order))
		for i, idx := range order {
			segments[i] = base[idx]
		}

		result := stitcher.Stitch(segments)
		require.Len(t, result.Rings, 1)
		areas = append(areas, geometry.BoundaryArea(result.Rings))
	}

	for _, area := range areas[1:] {
		assert.InDelta(t, areas[0], area, 1e-6)
	}
}

func TestStitcher_DeterministicForFixedOrder(t *testing.T) {
	stitcher := geometry.NewStitcher(geometry.DefaultTolerance)
	segments := unitSquare(1.0)

	first := stitcher.Stitch(segments)
	second := stitcher.Stitch(segments)

	assert.Equal(t, first, second)
}
