package repository

import (
	"context"
	"time"

	"github.com/region-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу (nil, nil при промахе)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetUser получает пользователя из кеша (nil, nil при промахе)
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// SetUser сохраняет пользователя в кеше
	SetUser(ctx context.Context, user *domain.User, ttl time.Duration) error

	// InvalidateUser удаляет пользователя из кеша
	InvalidateUser(ctx context.Context, id string) error
}
