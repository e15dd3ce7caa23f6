package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/city-boundary-service/internal/domain"
)

// MockBoundaryRepository is a mock of BoundaryRepository
type MockBoundaryRepository struct {
	mock.Mock
}

func (m *MockBoundaryRepository) Upsert(ctx context.Context, boundary *domain.CityBoundary) error {
	args := m.Called(ctx, boundary)
	return args.Error(0)
}

func (m *MockBoundaryRepository) GetByCityID(ctx context.Context, cityID string) (*domain.CityBoundary, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityBoundary), args.Error(1)
}

func (m *MockBoundaryRepository) List(ctx context.Context, limit, offset int) ([]*domain.CityBoundary, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CityBoundary), args.Error(1)
}

func (m *MockBoundaryRepository) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

// MockReferenceRepository is a mock of ReferenceRepository
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) GetByCityID(ctx context.Context, cityID string) (*domain.CityReference, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CityReference), args.Error(1)
}

func (m *MockReferenceRepository) ListWithoutBoundary(ctx context.Context, limit int) ([]*domain.CityReference, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CityReference), args.Error(1)
}

func (m *MockReferenceRepository) Upsert(ctx context.Context, ref *domain.CityReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetGeoJSON(ctx context.Context, cityID string) ([]byte, error) {
	args := m.Called(ctx, cityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) SetGeoJSON(ctx context.Context, cityID string, data []byte, ttl time.Duration) error {
	args := m.Called(ctx, cityID, data, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteGeoJSON(ctx context.Context, cityID string) error {
	args := m.Called(ctx, cityID)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockOverpassRepository is a mock of OverpassRepository
type MockOverpassRepository struct {
	mock.Mock
}

func (m *MockOverpassRepository) DownloadRelation(ctx context.Context, relationID int64) (*domain.OverpassResponse, error) {
	args := m.Called(ctx, relationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OverpassResponse), args.Error(1)
}

// MockNominatimRepository is a mock of NominatimRepository
type MockNominatimRepository struct {
	mock.Mock
}

func (m *MockNominatimRepository) FindCityRelation(ctx context.Context, cityName, country string, expected domain.Point) (*domain.RelationCandidate, error) {
	args := m.Called(ctx, cityName, country, expected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RelationCandidate), args.Error(1)
}
