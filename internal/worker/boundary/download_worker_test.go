package boundary_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/usecase/dto"
	"github.com/city-boundary-service/internal/worker/boundary"
)

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

// MockPipelineRunner is a mock of PipelineRunner
type MockPipelineRunner struct {
	mock.Mock
}

func (m *MockPipelineRunner) Run(ctx context.Context, event *domain.BoundaryDownloadEvent) (*dto.PipelineResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PipelineResult), args.Error(1)
}

func TestDownloadWorker_StopIsIdempotent(t *testing.T) {
	w := boundary.NewDownloadWorker(&MockStreamRepository{}, &MockPipelineRunner{}, "test-group", zap.NewNop())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestDownloadWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockPipeline := &MockPipelineRunner{}

	w := boundary.NewDownloadWorker(mockStream, mockPipeline, "test-group", zap.NewNop())

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBoundaryDownload, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}

func TestDownloadWorker_BatchProcessing(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockPipeline := &MockPipelineRunner{}

	w := boundary.NewDownloadWorker(mockStream, mockPipeline, "test-group", zap.NewNop())

	jobID := uuid.New()
	event := &domain.BoundaryDownloadEvent{
		JobID:     jobID,
		CityID:    "milan",
		CityName:  "Milano",
		Country:   "Italy",
		CenterLon: 9.19,
		CenterLat: 45.46,
	}
	eventJSON, _ := json.Marshal(event)

	messages := []domain.StreamMessage{
		{
			ID: "1234567890-0",
			Data: map[string]interface{}{
				"data": string(eventJSON),
			},
		},
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBoundaryDownload, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)

	ratio := 0.83
	mockPipeline.On("Run", mock.Anything, mock.MatchedBy(func(e *domain.BoundaryDownloadEvent) bool {
		return e.CityID == "milan" && e.JobID == jobID
	})).Return(&dto.PipelineResult{
		CityID:       "milan",
		Valid:        true,
		AreaKm2:      150.0,
		AreaRatio:    &ratio,
		QualityScore: 1.0,
	}, nil)

	mockStream.On("PublishToStream", mock.Anything, domain.StreamBoundaryDone,
		mock.MatchedBy(func(e *domain.BoundaryDoneEvent) bool {
			return e.Success && e.CityID == "milan" && e.JobID == jobID && e.AreaKm2 == 150.0
		})).Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamBoundaryDownload, "test-group", "1234567890-0").
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	mockStream.AssertExpectations(t)
	mockPipeline.AssertExpectations(t)
}

func TestDownloadWorker_FailedJobPublishesError(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockPipeline := &MockPipelineRunner{}

	w := boundary.NewDownloadWorker(mockStream, mockPipeline, "test-group", zap.NewNop())

	event := &domain.BoundaryDownloadEvent{
		JobID:    uuid.New(),
		CityID:   "atlantis",
		CityName: "Atlantis",
		Country:  "Nowhere",
	}
	eventJSON, _ := json.Marshal(event)

	messages := []domain.StreamMessage{
		{ID: "1-0", Data: map[string]interface{}{"data": string(eventJSON)}},
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBoundaryDownload, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)

	mockPipeline.On("Run", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	mockStream.On("PublishToStream", mock.Anything, domain.StreamBoundaryDone,
		mock.MatchedBy(func(e *domain.BoundaryDoneEvent) bool {
			return !e.Success && e.CityID == "atlantis" && e.Error != ""
		})).Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamBoundaryDownload, "test-group", "1-0").
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	mockStream.AssertExpectations(t)
	mockPipeline.AssertExpectations(t)
}

func TestDownloadWorker_MalformedMessageIsAcked(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockPipeline := &MockPipelineRunner{}

	w := boundary.NewDownloadWorker(mockStream, mockPipeline, "test-group", zap.NewNop())

	messages := []domain.StreamMessage{
		{ID: "bad-0", Data: map[string]interface{}{"data": "{not json"}},
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamBoundaryDownload, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamBoundaryDownload, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamBoundaryDownload, "test-group", "bad-0").
		Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(300 * time.Millisecond)
	cancel()
	<-done

	mockPipeline.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	mockStream.AssertExpectations(t)
}
