package cleanup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/metrics"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/worker"
	"go.uber.org/zap"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
	retryDelay      = 50 * time.Millisecond
)

// RegionCleanupWorker убирает из списков пользователей id регионов, которые
// им больше не принадлежат (удалены или переназначены другому владельцу)
type RegionCleanupWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	store        repository.Store
	cache        repository.CacheRepository
	metrics      *metrics.Collector
	consumerName string
	maxRetries   int
}

// NewRegionCleanupWorker; cache может быть nil
func NewRegionCleanupWorker(
	streamRepo repository.StreamRepository,
	store repository.Store,
	cache repository.CacheRepository,
	collector *metrics.Collector,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *RegionCleanupWorker {
	hostname, _ := os.Hostname()
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &RegionCleanupWorker{
		BaseWorker:   worker.NewBaseWorker("region-cleanup", consumerGroup, logger),
		streamRepo:   streamRepo,
		store:        store,
		cache:        cache,
		metrics:      collector,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
	}
}

// Start создаёт consumer group и обрабатывает события до Stop или отмены ctx
func (w *RegionCleanupWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RegionCleanupWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRegionEvents, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Sleep(ctx, errorSleep)
			continue
		}

		if processed == 0 {
			w.Sleep(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает до maxBatchSize событий и подтверждает все прочитанные.
// Возвращает количество прочитанных сообщений.
func (w *RegionCleanupWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamRegionEvents,
		w.ConsumerGroup(),
		w.consumerName,
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Debug("Processing batch", zap.Int("message_count", len(messages)))

	messageIDs := make([]string, 0, len(messages))
	for _, msg := range messages {
		messageIDs = append(messageIDs, msg.ID)

		event, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем вместе с остальными, чтобы не застревало
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			w.metrics.CleanupEvent(metrics.OutcomeError)
			continue
		}

		w.metrics.CleanupEvent(w.handleEvent(ctx, event))
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamRegionEvents, w.ConsumerGroup(), messageIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	return len(messages), nil
}

// handleEvent возвращает outcome для метрик
func (w *RegionCleanupWorker) handleEvent(ctx context.Context, event *domain.RegionEvent) string {
	logger := w.Logger()

	owner := event.StaleOwner()
	if owner == "" {
		return metrics.OutcomeEmpty
	}

	var (
		removed bool
		err     error
	)
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		removed, err = w.removeStale(ctx, owner, event.RegionID)
		if err == nil {
			break
		}

		logger.Warn("Region cleanup attempt failed",
			zap.String("region_id", event.RegionID),
			zap.String("user_id", owner),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < w.maxRetries && !w.Sleep(ctx, retryDelay*time.Duration(attempt)) {
			break
		}
	}

	if err != nil {
		logger.Error("Region cleanup failed, giving up",
			zap.String("type", string(event.Type)),
			zap.String("region_id", event.RegionID),
			zap.String("user_id", owner),
			zap.Error(err))
		return metrics.OutcomeError
	}

	if !removed {
		return metrics.OutcomeEmpty
	}

	if w.cache != nil {
		if err := w.cache.InvalidateUser(ctx, owner); err != nil {
			logger.Warn("Failed to invalidate user cache", zap.String("user_id", owner), zap.Error(err))
		}
	}

	logger.Info("Removed stale region id from user",
		zap.String("type", string(event.Type)),
		zap.String("region_id", event.RegionID),
		zap.String("user_id", owner))

	return metrics.OutcomeSuccess
}

// removeStale удаляет id из списка владельца, если регион ему уже не принадлежит.
// Блокировка строки владельца исключает гонку с созданием или переназначением региона.
func (w *RegionCleanupWorker) removeStale(ctx context.Context, owner, regionID string) (bool, error) {
	var removed bool

	err := w.store.InTx(ctx, func(tx repository.Store) error {
		exists, err := tx.Users().LockForUpdate(ctx, owner)
		if err != nil || !exists {
			return err
		}

		region, err := tx.Regions().GetByID(ctx, regionID)
		switch {
		case errors.Is(err, errors.ErrRegionNotFound):
			// регион удалён
		case err != nil:
			return err
		case region.UserID == owner:
			// регион вернулся к этому владельцу раньше, чем пришло событие
			return nil
		}

		removed, err = tx.Users().RemoveRegion(ctx, owner, regionID)
		return err
	})

	return removed, err
}

func parseMessage(msg domain.StreamMessage) (*domain.RegionEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.RegionEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.RegionID == "" {
		return nil, fmt.Errorf("event without region_id")
	}

	return &event, nil
}
