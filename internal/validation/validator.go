package validation

import (
	"fmt"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/geometry"
)

// Thresholds - пороги качества границы. Явная конфигурация вместо
// модульных глобалов; передаётся в валидатор при создании
type Thresholds struct {
	// Границы отношения вычисленной площади к ожидаемой
	MinAreaRatio float64
	MaxAreaRatio float64

	// Вне этой полосы принятая граница получает предупреждение
	// (расхождение city proper vs metro area)
	WarnLowRatio  float64
	WarnHighRatio float64

	// Абсолютные границы площади, когда справочной площади нет
	MinAbsoluteAreaKm2 float64
	MaxAbsoluteAreaKm2 float64

	// Минимум точек границы до предупреждения о низкой детализации
	MinPoints int

	// Максимальное отношение сторон bounding box
	MaxAspectRatio float64
}

// DefaultThresholds - пороги по умолчанию. Полоса 0.1-10x выбрана широкой
// намеренно: справочники для city proper и metro area расходятся в 2-5 раз
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinAreaRatio:       0.1,
		MaxAreaRatio:       10.0,
		WarnLowRatio:       0.3,
		WarnHighRatio:      3.0,
		MinAbsoluteAreaKm2: 1.0,
		MaxAbsoluteAreaKm2: 50000.0,
		MinPoints:          10,
		MaxAspectRatio:     20.0,
	}
}

// AreaValidator оценивает правдоподобность вычисленной площади границы.
// Чистая функция без I/O и без состояния между вызовами
type AreaValidator struct {
	thresholds Thresholds
}

// NewAreaValidator - создание валидатора с заданными порогами
func NewAreaValidator(thresholds Thresholds) *AreaValidator {
	return &AreaValidator{thresholds: thresholds}
}

// Validate выносит вердикт по площади. expectedAreaKm2 == nil деградирует
// проверку до абсолютных границ - это не ошибка, для новых городов
// справочной площади обычно нет. rings опциональны: без них пропускаются
// проверки детализации и вытянутости
func (v *AreaValidator) Validate(areaKm2 float64, expectedAreaKm2 *float64, rings []domain.Ring) domain.ValidationVerdict {
	verdict := domain.ValidationVerdict{
		AreaKm2:  areaKm2,
		Issues:   []string{},
		Warnings: []string{},
	}

	if areaKm2 <= 0 {
		verdict.Issues = append(verdict.Issues, "zero or negative area")
		return verdict
	}

	if expectedAreaKm2 != nil && *expectedAreaKm2 > 0 {
		v.validateAgainstReference(&verdict, areaKm2, *expectedAreaKm2)
	} else {
		v.validateAbsolute(&verdict, areaKm2)
	}

	if len(rings) > 0 {
		v.checkDetail(&verdict, rings)
		v.checkAspectRatio(&verdict, rings)
	}

	return verdict
}

func (v *AreaValidator) validateAgainstReference(verdict *domain.ValidationVerdict, areaKm2, expected float64) {
	ratio := areaKm2 / expected
	verdict.AreaRatio = &ratio

	if ratio < v.thresholds.MinAreaRatio {
		verdict.Issues = append(verdict.Issues,
			fmt.Sprintf("area ratio %.2fx below %.1fx floor", ratio, v.thresholds.MinAreaRatio))
		return
	}
	if ratio > v.thresholds.MaxAreaRatio {
		verdict.Issues = append(verdict.Issues,
			fmt.Sprintf("area ratio %.2fx above %.1fx ceiling (likely metro vs city)", ratio, v.thresholds.MaxAreaRatio))
		return
	}

	verdict.Valid = true
	verdict.QualityScore = qualityScore(ratio)

	if ratio < v.thresholds.WarnLowRatio || ratio > v.thresholds.WarnHighRatio {
		verdict.Warnings = append(verdict.Warnings,
			fmt.Sprintf("area ratio %.2fx may be metro vs city-proper mismatch", ratio))
	}
}

func (v *AreaValidator) validateAbsolute(verdict *domain.ValidationVerdict, areaKm2 float64) {
	if areaKm2 < v.thresholds.MinAbsoluteAreaKm2 {
		verdict.Issues = append(verdict.Issues,
			fmt.Sprintf("area %.1f km² too small for a plausible city, absent a reference", areaKm2))
		return
	}
	if areaKm2 > v.thresholds.MaxAbsoluteAreaKm2 {
		verdict.Issues = append(verdict.Issues,
			fmt.Sprintf("area %.1f km² too large for a plausible city, absent a reference", areaKm2))
		return
	}

	verdict.Valid = true
	verdict.QualityScore = 0.7
	verdict.Warnings = append(verdict.Warnings, "no reference area for validation")
}

func (v *AreaValidator) checkDetail(verdict *domain.ValidationVerdict, rings []domain.Ring) {
	total := 0
	for _, ring := range rings {
		total += len(ring)
	}
	verdict.PointCount = total

	for _, ring := range rings {
		if len(ring) < v.thresholds.MinPoints {
			verdict.Warnings = append(verdict.Warnings,
				fmt.Sprintf("low detail: ring with %d points", len(ring)))
			return
		}
	}
}

func (v *AreaValidator) checkAspectRatio(verdict *domain.ValidationVerdict, rings []domain.Ring) {
	minLon, minLat, maxLon, maxLat := geometry.BoundingBox(rings)
	width := maxLon - minLon
	height := maxLat - minLat
	if width <= 0 || height <= 0 {
		return
	}

	aspect := width / height
	if aspect < 1 {
		aspect = 1 / aspect
	}

	if aspect > v.thresholds.MaxAspectRatio {
		verdict.Warnings = append(verdict.Warnings,
			fmt.Sprintf("extreme elongation %.1f:1, verify coastal/river city", aspect))
	}
}

// qualityScore - оценка качества по точности совпадения площади
func qualityScore(ratio float64) float64 {
	switch {
	case ratio >= 0.8 && ratio <= 1.2:
		return 1.0
	case ratio >= 0.5 && ratio <= 2.0:
		return 0.8
	case ratio >= 0.2 && ratio <= 5.0:
		return 0.6
	default:
		return 0.3
	}
}
