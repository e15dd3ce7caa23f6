package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/domain/repository"
	"github.com/city-boundary-service/internal/geometry"
	"github.com/city-boundary-service/internal/pkg/errors"
	"github.com/city-boundary-service/internal/pkg/metrics"
	"github.com/city-boundary-service/internal/pkg/utils"
	"github.com/city-boundary-service/internal/usecase/dto"
	"github.com/city-boundary-service/internal/validation"
)

// PipelineUseCase - полный цикл получения границы города:
// discovery -> download -> stitch -> validate -> persist.
// Отбракованные границы никогда не сохраняются - плохая загрузка
// не должна затирать хорошие данные
type PipelineUseCase struct {
	overpassRepo  repository.OverpassRepository
	nominatimRepo repository.NominatimRepository
	boundaryRepo  repository.BoundaryRepository
	referenceRepo repository.ReferenceRepository
	cacheRepo     repository.CacheRepository
	stitcher      *geometry.Stitcher
	validator     *validation.AreaValidator
	logger        *zap.Logger
}

// NewPipelineUseCase создает новый экземпляр PipelineUseCase
func NewPipelineUseCase(
	overpassRepo repository.OverpassRepository,
	nominatimRepo repository.NominatimRepository,
	boundaryRepo repository.BoundaryRepository,
	referenceRepo repository.ReferenceRepository,
	cacheRepo repository.CacheRepository,
	stitcher *geometry.Stitcher,
	validator *validation.AreaValidator,
	logger *zap.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		overpassRepo:  overpassRepo,
		nominatimRepo: nominatimRepo,
		boundaryRepo:  boundaryRepo,
		referenceRepo: referenceRepo,
		cacheRepo:     cacheRepo,
		stitcher:      stitcher,
		validator:     validator,
		logger:        logger,
	}
}

// Run выполняет пайплайн для одного задания на загрузку
func (uc *PipelineUseCase) Run(ctx context.Context, event *domain.BoundaryDownloadEvent) (*dto.PipelineResult, error) {
	started := time.Now()
	defer func() {
		metrics.PipelineDuration.Observe(time.Since(started).Seconds())
	}()

	uc.logger.Info("Pipeline started",
		zap.String("city_id", event.CityID),
		zap.String("city", event.CityName),
		zap.String("country", event.Country))

	// Справочник может дать ожидаемую площадь и известный relation ID
	ref, err := uc.referenceRepo.GetByCityID(ctx, event.CityID)
	if err != nil && err != errors.ErrReferenceNotFound {
		uc.logger.Warn("Failed to load city reference", zap.String("city_id", event.CityID), zap.Error(err))
	}

	// Фаза 1: discovery
	relationID, err := uc.discoverRelation(ctx, event, ref)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusDiscoveryFailed).Inc()
		uc.logger.Error("Relation discovery failed",
			zap.String("city_id", event.CityID),
			zap.Error(err))
		return nil, err
	}

	// Фаза 2: download
	resp, err := uc.overpassRepo.DownloadRelation(ctx, relationID)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusDownloadFailed).Inc()
		uc.logger.Error("Relation download failed",
			zap.String("city_id", event.CityID),
			zap.Int64("relation_id", relationID),
			zap.Error(err))
		return nil, errors.ErrUpstreamError.WithDetails(map[string]interface{}{
			"relation_id": relationID,
		})
	}

	segments := resp.OuterSegments()
	if len(segments) == 0 {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusDownloadFailed).Inc()
		return nil, errors.ErrEmptySegments.WithDetails(map[string]interface{}{
			"relation_id": relationID,
		})
	}

	var expected *float64
	if ref != nil {
		expected = ref.ExpectedAreaKm2
	}

	return uc.assemble(ctx, assembleInput{
		CityID:        event.CityID,
		Name:          event.CityName,
		Country:       event.Country,
		Source:        "overpass",
		OSMRelationID: relationID,
		Expected:      expected,
		Segments:      segments,
	})
}

// ProcessSegments собирает и валидирует границу из готовых сегментов,
// минуя discovery и download
func (uc *PipelineUseCase) ProcessSegments(ctx context.Context, req dto.ProcessSegmentsRequest) (*dto.PipelineResult, error) {
	segments := make([]domain.Segment, 0, len(req.Segments))
	for _, raw := range req.Segments {
		segment := make(domain.Segment, 0, len(raw))
		for _, coords := range raw {
			if len(coords) != 2 || !utils.ValidateCoordinates(coords[1], coords[0]) {
				return nil, errors.ErrInvalidCoordinates
			}
			segment = append(segment, domain.Point{Lon: coords[0], Lat: coords[1]})
		}
		segments = append(segments, segment)
	}

	source := req.Source
	if source == "" {
		source = "manual"
	}

	return uc.assemble(ctx, assembleInput{
		CityID:        req.CityID,
		Name:          req.Name,
		Country:       req.Country,
		Source:        source,
		OSMRelationID: req.OSMRelationID,
		Expected:      req.ExpectedAreaKm2,
		Segments:      segments,
	})
}

type assembleInput struct {
	CityID        string
	Name          string
	Country       string
	Source        string
	OSMRelationID int64
	Expected      *float64
	Segments      []domain.Segment
}

// assemble - общий хвост пайплайна: stitch -> validate -> persist
func (uc *PipelineUseCase) assemble(ctx context.Context, in assembleInput) (*dto.PipelineResult, error) {
	// Фаза 3: stitch
	stitched := uc.stitcher.Stitch(in.Segments)
	metrics.SegmentsStitched.Add(float64(len(in.Segments)))
	metrics.SegmentsLeftover.Add(float64(stitched.LeftoverSegments))

	if len(stitched.Rings) == 0 {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusStitchFailed).Inc()
		uc.logger.Warn("Stitching produced no rings",
			zap.String("city_id", in.CityID),
			zap.Int("segments", len(in.Segments)),
			zap.Int("leftover", stitched.LeftoverSegments))
		return nil, errors.ErrStitchingFailed.WithDetails(map[string]interface{}{
			"segments": len(in.Segments),
			"leftover": stitched.LeftoverSegments,
		})
	}

	// Фаза 4: validate
	areaKm2 := geometry.BoundaryArea(stitched.Rings)
	verdict := uc.validator.Validate(areaKm2, in.Expected, stitched.Rings)

	result := &dto.PipelineResult{
		CityID:           in.CityID,
		Valid:            verdict.Valid,
		AreaKm2:          verdict.AreaKm2,
		AreaRatio:        verdict.AreaRatio,
		QualityScore:     verdict.QualityScore,
		PointCount:       verdict.PointCount,
		PolygonCount:     len(stitched.Rings),
		LeftoverSegments: stitched.LeftoverSegments,
		Issues:           verdict.Issues,
		Warnings:         verdict.Warnings,
	}

	if !verdict.Valid {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusRejected).Inc()
		metrics.ValidationRejections.Inc()
		uc.logger.Warn("Boundary rejected by validation",
			zap.String("city_id", in.CityID),
			zap.Float64("area_km2", verdict.AreaKm2),
			zap.Strings("issues", verdict.Issues))
		// Результат возвращаем вместе с вердиктом, но ничего не сохраняем
		return result, errors.ErrBoundaryRejected.WithDetails(map[string]interface{}{
			"area_km2": verdict.AreaKm2,
			"issues":   verdict.Issues,
		})
	}

	boundary := domain.Boundary{
		Rings: stitched.Rings,
		Provenance: domain.BoundaryProvenance{
			Name:           in.Name,
			Source:         in.Source,
			OSMRelationID:  in.OSMRelationID,
			ProcessingDate: time.Now().UTC().Format(time.RFC3339),
		},
	}

	geojson, err := geometry.EncodeBoundary(boundary)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusPersistFailed).Inc()
		uc.logger.Error("Failed to encode boundary", zap.String("city_id", in.CityID), zap.Error(err))
		return nil, err
	}
	result.GeoJSON = geojson

	// Фаза 5: persist
	record := &domain.CityBoundary{
		CityID:        in.CityID,
		Name:          in.Name,
		Country:       in.Country,
		OSMRelationID: in.OSMRelationID,
		GeoJSON:       geojson,
		AreaKm2:       verdict.AreaKm2,
		AreaRatio:     verdict.AreaRatio,
		QualityScore:  verdict.QualityScore,
		PointCount:    verdict.PointCount,
		PolygonCount:  len(stitched.Rings),
		Issues:        verdict.Warnings,
		Source:        in.Source,
	}

	if err := uc.boundaryRepo.Upsert(ctx, record); err != nil {
		metrics.PipelineRuns.WithLabelValues(metrics.StatusPersistFailed).Inc()
		return nil, err
	}

	// Сбрасываем устаревший GeoJSON из кеша
	if err := uc.cacheRepo.DeleteGeoJSON(ctx, in.CityID); err != nil {
		uc.logger.Warn("Failed to invalidate boundary cache",
			zap.String("city_id", in.CityID),
			zap.Error(err))
	}

	metrics.PipelineRuns.WithLabelValues(metrics.StatusSuccess).Inc()
	uc.logger.Info("Pipeline completed",
		zap.String("city_id", in.CityID),
		zap.Float64("area_km2", verdict.AreaKm2),
		zap.Float64("quality_score", verdict.QualityScore),
		zap.Int("polygon_count", len(stitched.Rings)),
		zap.Int("leftover_segments", stitched.LeftoverSegments))

	return result, nil
}

// discoverRelation определяет relation ID: явный из события, затем
// известный из справочника, затем поиск через Nominatim
func (uc *PipelineUseCase) discoverRelation(
	ctx context.Context,
	event *domain.BoundaryDownloadEvent,
	ref *domain.CityReference,
) (int64, error) {
	if event.RelationID != nil {
		return *event.RelationID, nil
	}

	if ref != nil && ref.KnownRelationID != nil {
		uc.logger.Debug("Using known relation from reference",
			zap.String("city_id", event.CityID),
			zap.Int64("relation_id", *ref.KnownRelationID))
		return *ref.KnownRelationID, nil
	}

	center := domain.Point{Lon: event.CenterLon, Lat: event.CenterLat}
	candidate, err := uc.nominatimRepo.FindCityRelation(ctx, event.CityName, event.Country, center)
	if err != nil {
		return 0, errors.ErrUpstreamError.WithDetails(map[string]interface{}{
			"city":   event.CityName,
			"reason": err.Error(),
		})
	}

	uc.logger.Info("Relation discovered via Nominatim",
		zap.String("city_id", event.CityID),
		zap.Int64("relation_id", candidate.RelationID),
		zap.Float64("distance_km", candidate.DistanceKm))

	return candidate.RelationID, nil
}
