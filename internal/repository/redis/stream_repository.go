package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"go.uber.org/zap"
)

type streamRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewStreamRepository создает новый экземпляр StreamRepository
func NewStreamRepository(client *redis.Client, logger *zap.Logger) repository.StreamRepository {
	return &streamRepository{
		client: client,
		logger: logger,
	}
}

// CreateConsumerGroup создаёт consumer group для стрима
func (r *streamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	// Начинаем с "$" (только новые сообщения); MKSTREAM создаст стрим при необходимости
	err := r.client.XGroupCreateMkStream(ctx, stream, group, "$").Err()
	if err != nil {
		// BUSYGROUP - группа уже существует
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			r.logger.Debug("Consumer group already exists",
				zap.String("stream", stream),
				zap.String("group", group))
			return nil
		}
		r.logger.Error("Failed to create consumer group",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	r.logger.Info("Consumer group created successfully",
		zap.String("stream", stream),
		zap.String("group", group))
	return nil
}

// ConsumeBatch читает до maxCount непрочитанных сообщений группы без ожидания
func (r *streamRepository) ConsumeBatch(
	ctx context.Context,
	stream, group, consumer string,
	maxCount int,
) ([]domain.StreamMessage, error) {
	// Block < 0 - команда отправляется без BLOCK
	result, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    group,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    int64(maxCount),
		Block:    -1,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("Failed to read from stream",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Error(err))
		return nil, fmt.Errorf("failed to read from stream: %w", err)
	}

	messages := make([]domain.StreamMessage, 0, maxCount)
	for _, s := range result {
		for _, msg := range s.Messages {
			// JSON данные лежат в поле "data"; без него сообщение отдаём пустым,
			// воркер подтвердит его как битое
			data, _ := msg.Values["data"].(string)
			if data == "" {
				r.logger.Warn("Message does not contain 'data' field",
					zap.String("message_id", msg.ID))
			}
			messages = append(messages, domain.StreamMessage{
				ID:   msg.ID,
				Data: data,
			})
		}
	}

	return messages, nil
}

// AckMessage подтверждает обработку сообщения
func (r *streamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	return r.AckMessages(ctx, stream, group, []string{messageID})
}

// AckMessages подтверждает обработку нескольких сообщений
func (r *streamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	err := r.client.XAck(ctx, stream, group, messageIDs...).Err()
	if err != nil {
		r.logger.Error("Failed to acknowledge messages",
			zap.String("stream", stream),
			zap.String("group", group),
			zap.Strings("message_ids", messageIDs),
			zap.Error(err))
		return fmt.Errorf("failed to acknowledge messages: %w", err)
	}

	r.logger.Debug("Messages acknowledged",
		zap.Int("count", len(messageIDs)))
	return nil
}

// PublishToStream публикует сообщение в стрим
func (r *streamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error("Failed to marshal data",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	result, err := r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data": string(jsonData),
		},
	}).Result()
	if err != nil {
		r.logger.Error("Failed to publish to stream",
			zap.String("stream", stream),
			zap.Error(err))
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	r.logger.Debug("Message published to stream",
		zap.String("stream", stream),
		zap.String("message_id", result))
	return nil
}
