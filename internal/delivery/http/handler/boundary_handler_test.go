package handler_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/delivery/http/handler"
	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/usecase"
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

func newListApp(repo *MockBoundaryRepository) *fiber.App {
	logger := zap.NewNop()
	boundaryUC := usecase.NewBoundaryUseCase(repo, nil, nil, nil, logger, time.Hour)
	h := handler.NewBoundaryHandler(boundaryUC, nil, logger)

	app := fiber.New()
	app.Get("/api/v1/boundaries", h.List)
	return app
}

func TestBoundaryHandler_List(t *testing.T) {
	t.Run("zero limit rejected with 400", func(t *testing.T) {
		repo := &MockBoundaryRepository{}
		app := newListApp(repo)

		req := httptest.NewRequest("GET", "/api/v1/boundaries?limit=0", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative limit rejected with 400", func(t *testing.T) {
		repo := &MockBoundaryRepository{}
		app := newListApp(repo)

		req := httptest.NewRequest("GET", "/api/v1/boundaries?limit=-5", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized limit rejected with 400", func(t *testing.T) {
		repo := &MockBoundaryRepository{}
		app := newListApp(repo)

		req := httptest.NewRequest("GET", "/api/v1/boundaries?limit=1000", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing limit falls back to default", func(t *testing.T) {
		repo := &MockBoundaryRepository{}
		repo.On("List", mock.Anything, 50, 0).
			Return([]*domain.CityBoundary{}, nil)

		app := newListApp(repo)

		req := httptest.NewRequest("GET", "/api/v1/boundaries", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body struct {
			Meta struct {
				Limit int `json:"limit"`
				Page  int `json:"page"`
			} `json:"meta"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 50, body.Meta.Limit)
		assert.Equal(t, 1, body.Meta.Page)

		repo.AssertExpectations(t)
	})
}
