package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/domain/repository"
	"github.com/city-boundary-service/internal/pkg/errors"
	"github.com/city-boundary-service/internal/usecase/dto"
)

const defaultListLimit = 50

// BoundaryUseCase - чтение сохранённых границ и постановка загрузок в очередь
type BoundaryUseCase struct {
	boundaryRepo  repository.BoundaryRepository
	referenceRepo repository.ReferenceRepository
	cacheRepo     repository.CacheRepository
	streamRepo    repository.StreamRepository
	logger        *zap.Logger
	cacheTTL      time.Duration
}

// NewBoundaryUseCase создает новый экземпляр BoundaryUseCase
func NewBoundaryUseCase(
	boundaryRepo repository.BoundaryRepository,
	referenceRepo repository.ReferenceRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *BoundaryUseCase {
	return &BoundaryUseCase{
		boundaryRepo:  boundaryRepo,
		referenceRepo: referenceRepo,
		cacheRepo:     cacheRepo,
		streamRepo:    streamRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
	}
}

// GetBoundaryGeoJSON возвращает GeoJSON границы, используя кеш когда возможно
func (uc *BoundaryUseCase) GetBoundaryGeoJSON(ctx context.Context, cityID string) ([]byte, error) {
	if cityID == "" {
		return nil, errors.ErrInvalidCityID
	}

	// 1. Проверяем кеш
	cached, err := uc.cacheRepo.GetGeoJSON(ctx, cityID)
	if err == nil && cached != nil {
		uc.logger.Debug("Boundary GeoJSON fetched from cache", zap.String("city_id", cityID))
		return cached, nil
	}
	if err != nil {
		uc.logger.Warn("Failed to get boundary from cache", zap.String("city_id", cityID), zap.Error(err))
	}

	// 2. Получаем из БД
	boundary, err := uc.boundaryRepo.GetByCityID(ctx, cityID)
	if err != nil {
		return nil, err
	}

	// 3. Кешируем
	if err := uc.cacheRepo.SetGeoJSON(ctx, cityID, boundary.GeoJSON, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache boundary", zap.String("city_id", cityID), zap.Error(err))
		// Не возвращаем ошибку, т.к. данные уже получены
	}

	return boundary.GeoJSON, nil
}

// GetBoundary возвращает запись границы со всеми метаданными
func (uc *BoundaryUseCase) GetBoundary(ctx context.Context, cityID string) (*domain.CityBoundary, error) {
	if cityID == "" {
		return nil, errors.ErrInvalidCityID
	}
	return uc.boundaryRepo.GetByCityID(ctx, cityID)
}

// List возвращает листинг сохранённых границ
func (uc *BoundaryUseCase) List(ctx context.Context, req dto.ListBoundariesRequest) (*dto.ListBoundariesResponse, error) {
	if req.Limit == 0 {
		req.Limit = defaultListLimit
	}

	boundaries, err := uc.boundaryRepo.List(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.BoundarySummary, 0, len(boundaries))
	for _, b := range boundaries {
		summaries = append(summaries, dto.ConvertBoundarySummary(b))
	}

	return &dto.ListBoundariesResponse{
		Boundaries: summaries,
		Total:      len(summaries),
	}, nil
}

// EnqueueDownload публикует задание на загрузку границы в стрим
func (uc *BoundaryUseCase) EnqueueDownload(ctx context.Context, req dto.EnqueueDownloadRequest) (*dto.EnqueueDownloadResponse, error) {
	event := domain.BoundaryDownloadEvent{
		JobID:      uuid.New(),
		CityID:     req.CityID,
		CityName:   req.Name,
		Country:    req.Country,
		CenterLon:  req.CenterLon,
		CenterLat:  req.CenterLat,
		RelationID: req.RelationID,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamBoundaryDownload, event); err != nil {
		uc.logger.Error("Failed to enqueue boundary download",
			zap.String("city_id", req.CityID),
			zap.Error(err))
		return nil, errors.ErrCacheError
	}

	uc.logger.Info("Boundary download enqueued",
		zap.String("job_id", event.JobID.String()),
		zap.String("city_id", req.CityID))

	return &dto.EnqueueDownloadResponse{
		JobID:  event.JobID,
		CityID: req.CityID,
		Status: "queued",
	}, nil
}

// RefreshBoundary ставит в очередь перезагрузку уже известного города.
// Координаты центра и relation берутся из справочника
func (uc *BoundaryUseCase) RefreshBoundary(ctx context.Context, cityID string) (*dto.EnqueueDownloadResponse, error) {
	if cityID == "" {
		return nil, errors.ErrInvalidCityID
	}

	ref, err := uc.referenceRepo.GetByCityID(ctx, cityID)
	if err != nil {
		return nil, err
	}

	return uc.EnqueueDownload(ctx, dto.EnqueueDownloadRequest{
		CityID:     ref.CityID,
		Name:       ref.Name,
		Country:    ref.Country,
		CenterLat:  ref.CenterLat,
		CenterLon:  ref.CenterLon,
		RelationID: ref.KnownRelationID,
	})
}

// EnqueueMissing ставит в очередь загрузку всех городов справочника без границы
func (uc *BoundaryUseCase) EnqueueMissing(ctx context.Context, limit int) (int, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	refs, err := uc.referenceRepo.ListWithoutBoundary(ctx, limit)
	if err != nil {
		return 0, err
	}

	enqueued := 0
	for _, ref := range refs {
		_, err := uc.EnqueueDownload(ctx, dto.EnqueueDownloadRequest{
			CityID:     ref.CityID,
			Name:       ref.Name,
			Country:    ref.Country,
			CenterLat:  ref.CenterLat,
			CenterLon:  ref.CenterLon,
			RelationID: ref.KnownRelationID,
		})
		if err != nil {
			uc.logger.Warn("Failed to enqueue city", zap.String("city_id", ref.CityID), zap.Error(err))
			continue
		}
		enqueued++
	}

	uc.logger.Info("Missing boundaries enqueued",
		zap.Int("candidates", len(refs)),
		zap.Int("enqueued", enqueued))
	return enqueued, nil
}
