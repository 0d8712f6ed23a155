package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"go.uber.org/zap"
)

const userKeyPrefix = "user:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return NewCacheRepositoryFromClient(redis.Client(), redis.logger)
}

// NewCacheRepositoryFromClient - кеш поверх готового клиента (тесты, общий клиент)
func NewCacheRepositoryFromClient(client *redis.Client, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetUser получает пользователя из кеша
func (r *cacheRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	data, err := r.Get(ctx, userKey(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		r.logger.Error("Failed to unmarshal user from cache", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}

	return &user, nil
}

// SetUser сохраняет пользователя в кеше
func (r *cacheRepository) SetUser(ctx context.Context, user *domain.User, ttl time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		r.logger.Error("Failed to marshal user", zap.String("id", user.ID), zap.Error(err))
		return fmt.Errorf("marshal user: %w", err)
	}

	return r.Set(ctx, userKey(user.ID), data, ttl)
}

// InvalidateUser удаляет пользователя из кеша
func (r *cacheRepository) InvalidateUser(ctx context.Context, id string) error {
	return r.Delete(ctx, userKey(id))
}
