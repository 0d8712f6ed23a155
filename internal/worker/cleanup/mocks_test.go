package cleanup_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
)

type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeBatch(
	ctx context.Context,
	stream, group, consumer string,
	maxCount int,
) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
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

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) LockForUpdate(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AppendRegion(ctx context.Context, userID, regionID string) error {
	return m.Called(ctx, userID, regionID).Error(0)
}

func (m *MockUserRepository) RemoveRegion(ctx context.Context, userID, regionID string) (bool, error) {
	args := m.Called(ctx, userID, regionID)
	return args.Bool(0), args.Error(1)
}

type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionRepository) FindDuplicate(
	ctx context.Context,
	key domain.RegionKey,
	excludeID string,
) (*domain.Region, error) {
	args := m.Called(ctx, key, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Region, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Region), args.Error(1)
}

func (m *MockRegionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockRegionRepository) Create(ctx context.Context, region *domain.Region) error {
	return m.Called(ctx, region).Error(0)
}

func (m *MockRegionRepository) Update(ctx context.Context, region *domain.Region) error {
	return m.Called(ctx, region).Error(0)
}

func (m *MockRegionRepository) Delete(ctx context.Context, id string) (*domain.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

func (m *MockRegionRepository) FindByPoint(ctx context.Context, point domain.Coordinates) ([]*domain.Region, error) {
	args := m.Called(ctx, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Region), args.Error(1)
}

func (m *MockRegionRepository) FindWithinRadius(
	ctx context.Context,
	center domain.Coordinates,
	radiusRadians float64,
) ([]*domain.RegionWithUser, error) {
	args := m.Called(ctx, center, radiusRadians)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RegionWithUser), args.Error(1)
}

type MockStore struct {
	users   *MockUserRepository
	regions *MockRegionRepository
}

func newMockStore() *MockStore {
	return &MockStore{users: &MockUserRepository{}, regions: &MockRegionRepository{}}
}

func (s *MockStore) Users() repository.UserRepository     { return s.users }
func (s *MockStore) Regions() repository.RegionRepository { return s.regions }

func (s *MockStore) InTx(_ context.Context, fn func(tx repository.Store) error) error {
	return fn(s)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockCacheRepository) SetUser(ctx context.Context, user *domain.User, ttl time.Duration) error {
	return m.Called(ctx, user, ttl).Error(0)
}

func (m *MockCacheRepository) InvalidateUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
