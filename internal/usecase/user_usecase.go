package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/metrics"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/usecase/dto"
	"go.uber.org/zap"
)

type UserUseCase struct {
	store    repository.Store
	cache    repository.CacheRepository
	resolver LocationResolver
	cacheTTL time.Duration
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// NewUserUseCase; cache и resolver могут быть nil (без кеша / без геокодера)
func NewUserUseCase(
	store repository.Store,
	cache repository.CacheRepository,
	resolver LocationResolver,
	cacheTTL time.Duration,
	collector *metrics.Collector,
	logger *zap.Logger,
) *UserUseCase {
	return &UserUseCase{
		store:    store,
		cache:    cache,
		resolver: resolver,
		cacheTTL: cacheTTL,
		metrics:  collector,
		logger:   logger,
	}
}

// Create требует ровно одно из address/coordinates; второе поле дополняется резолвером
func (uc *UserUseCase) Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if (req.Address == nil) == (req.Coordinates == nil) {
		uc.logger.Warn("User create rejected: address and coordinates are mutually exclusive")
		return nil, errors.ErrInvalidParameter.
			WithMessage("Provide only address or coordinates, not both or neither")
	}

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address.ToDomain(),
		Coordinates: req.Coordinates.ToDomain(),
		Regions:     []string{},
	}

	if err := uc.resolve(ctx, user, true); err != nil {
		return nil, err
	}

	if err := uc.store.Users().Create(ctx, user); err != nil {
		uc.logger.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	uc.logger.Info("User created", zap.String("id", user.ID))

	return user, nil
}

// GetByID - read-through кеш; ошибки кеша не прерывают запрос
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetUser(ctx, id)
		switch {
		case err != nil:
			uc.metrics.CacheLookup("error")
			uc.logger.Warn("User cache lookup failed", zap.String("id", id), zap.Error(err))
		case cached != nil:
			uc.metrics.CacheLookup("hit")
			return cached, nil
		default:
			uc.metrics.CacheLookup("miss")
		}
	}

	user, err := uc.store.Users().GetByID(ctx, id)
	if err != nil {
		logFailure(uc.logger, "Failed to get user", err, zap.String("id", id))
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetUser(ctx, user, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache user", zap.String("id", id), zap.Error(err))
		}
	}

	return user, nil
}

func (uc *UserUseCase) List(ctx context.Context, req dto.ListRequest) (*dto.UserListResponse, error) {
	req = req.Normalize()

	users, err := uc.store.Users().List(ctx, req.Limit, req.Offset())
	if err != nil {
		uc.logger.Error("Failed to list users", zap.Error(err))
		return nil, err
	}

	total, err := uc.store.Users().Count(ctx)
	if err != nil {
		uc.logger.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	return &dto.UserListResponse{
		Users: users,
		Total: total,
		Page:  req.Page,
		Limit: req.Limit,
	}, nil
}

// Update применяет только переданные поля; новый адрес или новые координаты
// дополняются резолвером
func (uc *UserUseCase) Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := uc.store.Users().GetByID(ctx, id)
	if err != nil {
		logFailure(uc.logger, "Failed to load user for update", err, zap.String("id", id))
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	// Резолвим только если передано ровно одно из полей
	switch {
	case req.Address != nil && req.Coordinates != nil:
		user.Address = req.Address.ToDomain()
		user.Coordinates = req.Coordinates.ToDomain()
	case req.Address != nil:
		user.Address = req.Address.ToDomain()
		user.Coordinates = nil
		if err := uc.resolve(ctx, user, false); err != nil {
			return nil, err
		}
	case req.Coordinates != nil:
		user.Coordinates = req.Coordinates.ToDomain()
		user.Address = nil
		if err := uc.resolve(ctx, user, false); err != nil {
			return nil, err
		}
	}

	if err := uc.store.Users().Update(ctx, user); err != nil {
		logFailure(uc.logger, "Failed to update user", err, zap.String("id", id))
		return nil, err
	}

	uc.invalidate(ctx, id)

	return user, nil
}

// Delete не удаляет регионы пользователя
func (uc *UserUseCase) Delete(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.store.Users().Delete(ctx, id)
	if err != nil {
		logFailure(uc.logger, "Failed to delete user", err, zap.String("id", id))
		return nil, err
	}

	uc.invalidate(ctx, id)

	uc.logger.Info("User deleted",
		zap.String("id", id),
		zap.Int("orphaned_regions", len(user.Regions)))

	return user, nil
}

// resolve дополняет пустое из address/coordinates. Без резолвера - no-op.
func (uc *UserUseCase) resolve(ctx context.Context, user *domain.User, creating bool) error {
	if uc.resolver == nil {
		return nil
	}

	in := domain.Location{Address: user.Address, Coordinates: user.Coordinates}
	out, err := uc.resolver.ResolveLocation(ctx, in)
	if err != nil {
		uc.logger.Error("Failed to resolve user location",
			zap.String("id", user.ID),
			zap.Bool("creating", creating),
			zap.Error(err))
		return err
	}

	if user.Address == nil && out.Address != nil {
		user.Address = out.Address
	}
	if user.Coordinates == nil && out.Coordinates != nil {
		user.Coordinates = out.Coordinates
	}

	return nil
}

func (uc *UserUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.InvalidateUser(ctx, id); err != nil {
		uc.logger.Warn("Failed to invalidate user cache", zap.String("id", id), zap.Error(err))
	}
}
