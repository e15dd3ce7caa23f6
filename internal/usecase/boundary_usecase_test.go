package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/pkg/errors"
	"github.com/city-boundary-service/internal/usecase"
	"github.com/city-boundary-service/internal/usecase/dto"
)

func newBoundaryUC() (*usecase.BoundaryUseCase, *MockBoundaryRepository, *MockReferenceRepository, *MockCacheRepository, *MockStreamRepository) {
	boundaryRepo := &MockBoundaryRepository{}
	referenceRepo := &MockReferenceRepository{}
	cacheRepo := &MockCacheRepository{}
	streamRepo := &MockStreamRepository{}

	uc := usecase.NewBoundaryUseCase(
		boundaryRepo, referenceRepo, cacheRepo, streamRepo,
		zap.NewNop(), time.Hour,
	)
	return uc, boundaryRepo, referenceRepo, cacheRepo, streamRepo
}

func TestBoundaryUseCase_GetBoundaryGeoJSON(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips database", func(t *testing.T) {
		uc, boundaryRepo, _, cacheRepo, _ := newBoundaryUC()

		cached := []byte(`{"type":"FeatureCollection"}`)
		cacheRepo.On("GetGeoJSON", ctx, "milan").Return(cached, nil)

		data, err := uc.GetBoundaryGeoJSON(ctx, "milan")
		require.NoError(t, err)
		assert.Equal(t, cached, data)

		boundaryRepo.AssertNotCalled(t, "GetByCityID", mock.Anything, mock.Anything)
	})

	t.Run("cache miss falls through to database and fills cache", func(t *testing.T) {
		uc, boundaryRepo, _, cacheRepo, _ := newBoundaryUC()

		geojson := []byte(`{"type":"FeatureCollection"}`)
		cacheRepo.On("GetGeoJSON", ctx, "milan").Return(nil, nil)
		boundaryRepo.On("GetByCityID", ctx, "milan").Return(&domain.CityBoundary{
			CityID:  "milan",
			GeoJSON: geojson,
		}, nil)
		cacheRepo.On("SetGeoJSON", ctx, "milan", geojson, time.Hour).Return(nil)

		data, err := uc.GetBoundaryGeoJSON(ctx, "milan")
		require.NoError(t, err)
		assert.Equal(t, geojson, data)

		cacheRepo.AssertExpectations(t)
	})

	t.Run("not found propagates", func(t *testing.T) {
		uc, boundaryRepo, _, cacheRepo, _ := newBoundaryUC()

		cacheRepo.On("GetGeoJSON", ctx, "atlantis").Return(nil, nil)
		boundaryRepo.On("GetByCityID", ctx, "atlantis").Return(nil, errors.ErrBoundaryNotFound)

		data, err := uc.GetBoundaryGeoJSON(ctx, "atlantis")
		assert.ErrorIs(t, err, errors.ErrBoundaryNotFound)
		assert.Nil(t, data)
	})

	t.Run("empty city id rejected", func(t *testing.T) {
		uc, _, _, _, _ := newBoundaryUC()

		data, err := uc.GetBoundaryGeoJSON(ctx, "")
		assert.ErrorIs(t, err, errors.ErrInvalidCityID)
		assert.Nil(t, data)
	})
}

func TestBoundaryUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("applies default limit", func(t *testing.T) {
		uc, boundaryRepo, _, _, _ := newBoundaryUC()

		boundaryRepo.On("List", ctx, 50, 0).Return([]*domain.CityBoundary{
			{CityID: "milan", Name: "Milano", AreaKm2: 181.8},
			{CityID: "rome", Name: "Roma", AreaKm2: 1287.0},
		}, nil)

		resp, err := uc.List(ctx, dto.ListBoundariesRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Total)
		assert.Equal(t, "milan", resp.Boundaries[0].CityID)

		boundaryRepo.AssertExpectations(t)
	})
}

func TestBoundaryUseCase_EnqueueDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes event to download stream", func(t *testing.T) {
		uc, _, _, _, streamRepo := newBoundaryUC()

		streamRepo.On("PublishToStream", ctx, domain.StreamBoundaryDownload,
			mock.MatchedBy(func(e domain.BoundaryDownloadEvent) bool {
				return e.CityID == "milan" && e.CityName == "Milano" && e.JobID.String() != ""
			})).Return(nil)

		resp, err := uc.EnqueueDownload(ctx, dto.EnqueueDownloadRequest{
			CityID:    "milan",
			Name:      "Milano",
			Country:   "Italy",
			CenterLat: 45.46,
			CenterLon: 9.19,
		})

		require.NoError(t, err)
		assert.Equal(t, "queued", resp.Status)
		assert.Equal(t, "milan", resp.CityID)
		streamRepo.AssertExpectations(t)
	})

	t.Run("publish failure surfaces", func(t *testing.T) {
		uc, _, _, _, streamRepo := newBoundaryUC()

		streamRepo.On("PublishToStream", ctx, domain.StreamBoundaryDownload, mock.Anything).
			Return(assert.AnError)

		resp, err := uc.EnqueueDownload(ctx, dto.EnqueueDownloadRequest{
			CityID:  "milan",
			Name:    "Milano",
			Country: "Italy",
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestBoundaryUseCase_RefreshBoundary(t *testing.T) {
	ctx := context.Background()

	t.Run("reuses reference data for the job", func(t *testing.T) {
		uc, _, referenceRepo, _, streamRepo := newBoundaryUC()

		relID := int64(44915)
		referenceRepo.On("GetByCityID", ctx, "milan").Return(&domain.CityReference{
			CityID:          "milan",
			Name:            "Milano",
			Country:         "Italy",
			CenterLat:       45.46,
			CenterLon:       9.19,
			KnownRelationID: &relID,
		}, nil)

		streamRepo.On("PublishToStream", ctx, domain.StreamBoundaryDownload,
			mock.MatchedBy(func(e domain.BoundaryDownloadEvent) bool {
				return e.CityID == "milan" && e.RelationID != nil && *e.RelationID == 44915
			})).Return(nil)

		resp, err := uc.RefreshBoundary(ctx, "milan")
		require.NoError(t, err)
		assert.Equal(t, "queued", resp.Status)

		referenceRepo.AssertExpectations(t)
		streamRepo.AssertExpectations(t)
	})

	t.Run("unknown city fails", func(t *testing.T) {
		uc, _, referenceRepo, _, _ := newBoundaryUC()

		referenceRepo.On("GetByCityID", ctx, "atlantis").Return(nil, errors.ErrReferenceNotFound)

		resp, err := uc.RefreshBoundary(ctx, "atlantis")
		assert.ErrorIs(t, err, errors.ErrReferenceNotFound)
		assert.Nil(t, resp)
	})
}

func TestBoundaryUseCase_EnqueueMissing(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues every city without boundary", func(t *testing.T) {
		uc, _, referenceRepo, _, streamRepo := newBoundaryUC()

		referenceRepo.On("ListWithoutBoundary", ctx, 50).Return([]*domain.CityReference{
			{CityID: "milan", Name: "Milano", Country: "Italy"},
			{CityID: "rome", Name: "Roma", Country: "Italy"},
		}, nil)
		streamRepo.On("PublishToStream", ctx, domain.StreamBoundaryDownload, mock.Anything).
			Return(nil).Twice()

		enqueued, err := uc.EnqueueMissing(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, enqueued)

		streamRepo.AssertExpectations(t)
	})
}

func TestStatsUseCase_GetStatistics(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit", func(t *testing.T) {
		boundaryRepo := &MockBoundaryRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := usecase.NewStatsUseCase(boundaryRepo, cacheRepo, zap.NewNop(), time.Minute)

		cacheRepo.On("GetStats", ctx).Return(&domain.Statistics{TotalBoundaries: 7}, nil)

		stats, err := uc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, stats.TotalBoundaries)

		boundaryRepo.AssertNotCalled(t, "GetStatistics", mock.Anything)
	})

	t.Run("cache miss loads from db and caches", func(t *testing.T) {
		boundaryRepo := &MockBoundaryRepository{}
		cacheRepo := &MockCacheRepository{}
		uc := usecase.NewStatsUseCase(boundaryRepo, cacheRepo, zap.NewNop(), time.Minute)

		fresh := &domain.Statistics{TotalBoundaries: 3, ValidBoundaries: 2, AvgQualityScore: 0.9}
		cacheRepo.On("GetStats", ctx).Return(nil, nil)
		boundaryRepo.On("GetStatistics", ctx).Return(fresh, nil)
		cacheRepo.On("SetStats", ctx, fresh, time.Minute).Return(nil)

		stats, err := uc.GetStatistics(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalBoundaries)

		cacheRepo.AssertExpectations(t)
	})
}
