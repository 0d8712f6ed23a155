package repository

import (
	"context"

	"github.com/region-service/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeBatch читает до maxCount новых сообщений (неблокирующий режим)
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// AckMessages подтверждает обработку нескольких сообщений одной командой
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
