package boundary

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/city-boundary-service/internal/domain"
	"github.com/city-boundary-service/internal/domain/repository"
	"github.com/city-boundary-service/internal/usecase/dto"
	"github.com/city-boundary-service/internal/worker"
)

const (
	maxBatchSize    = 5                      // Overpass не любит параллельные забросы
	emptyQueueSleep = 500 * time.Millisecond // пауза если очередь пуста
)

// PipelineRunner - интерфейс пайплайна загрузки границы
type PipelineRunner interface {
	Run(ctx context.Context, event *domain.BoundaryDownloadEvent) (*dto.PipelineResult, error)
}

// DownloadWorker обрабатывает задания на загрузку границ городов
type DownloadWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	pipelineUC   PipelineRunner
	consumerName string
}

// NewDownloadWorker создает новый DownloadWorker
func NewDownloadWorker(
	streamRepo repository.StreamRepository,
	pipelineUC PipelineRunner,
	consumerGroup string,
	logger *zap.Logger,
) *DownloadWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &DownloadWorker{
		BaseWorker:   worker.NewBaseWorker("boundary-download", consumerGroup, logger),
		streamRepo:   streamRepo,
		pipelineUC:   pipelineUC,
		consumerName: consumerName,
	}
}

// Start запускает воркер
func (w *DownloadWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting DownloadWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamBoundaryDownload, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			// Если ничего не обработали - короткая пауза
			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает batch заданий.
// Возвращает количество обработанных сообщений
func (w *DownloadWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamBoundaryDownload,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch",
		zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			_ = w.streamRepo.AckMessage(ctx, domain.StreamBoundaryDownload, w.ConsumerGroup(), msg.ID)
			continue
		}

		// Задания идут по одному: пайплайн тяжёлый, а Overpass
		// наказывает за параллельные запросы
		doneEvent := w.runJob(ctx, event)

		if err := w.streamRepo.PublishToStream(ctx, domain.StreamBoundaryDone, doneEvent); err != nil {
			logger.Error("Failed to publish done event",
				zap.String("city_id", event.CityID),
				zap.Error(err))
			// Продолжаем с остальными
		}

		if err := w.streamRepo.AckMessage(ctx, domain.StreamBoundaryDownload, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// Не критично - сообщение будет переобработано
		}
	}

	return len(messages), nil
}

// runJob прогоняет пайплайн для одного задания и строит событие результата
func (w *DownloadWorker) runJob(ctx context.Context, event *domain.BoundaryDownloadEvent) *domain.BoundaryDoneEvent {
	logger := w.Logger()

	result, err := w.pipelineUC.Run(ctx, event)

	doneEvent := &domain.BoundaryDoneEvent{
		JobID:  event.JobID,
		CityID: event.CityID,
	}

	if err != nil {
		logger.Warn("Pipeline failed",
			zap.String("city_id", event.CityID),
			zap.Error(err))
		doneEvent.Error = err.Error()
		// Вердикт отбраковки сохраняем в событии, если он есть
		if result != nil {
			doneEvent.AreaKm2 = result.AreaKm2
			doneEvent.AreaRatio = result.AreaRatio
			doneEvent.Issues = result.Issues
		}
		return doneEvent
	}

	doneEvent.Success = true
	doneEvent.AreaKm2 = result.AreaKm2
	doneEvent.AreaRatio = result.AreaRatio
	doneEvent.QualityScore = result.QualityScore
	doneEvent.Issues = result.Warnings

	return doneEvent
}

// parseMessage парсит сообщение из стрима в BoundaryDownloadEvent
func (w *DownloadWorker) parseMessage(msg domain.StreamMessage) (*domain.BoundaryDownloadEvent, error) {
	data, ok := msg.Data["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.BoundaryDownloadEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &event, nil
}
