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

// RegionUseCase - запись регионов с проверкой дубликатов и поддержкой списка регионов владельца.
// Создание и переназначение выполняются в одной транзакции с блокировкой строки владельца.
type RegionUseCase struct {
	store   repository.Store
	cache   repository.CacheRepository
	stream  repository.StreamRepository
	metrics *metrics.Collector
	logger  *zap.Logger
}

// NewRegionUseCase; cache и stream могут быть nil
func NewRegionUseCase(
	store repository.Store,
	cache repository.CacheRepository,
	stream repository.StreamRepository,
	collector *metrics.Collector,
	logger *zap.Logger,
) *RegionUseCase {
	return &RegionUseCase{
		store:   store,
		cache:   cache,
		stream:  stream,
		metrics: collector,
		logger:  logger,
	}
}

func (uc *RegionUseCase) Create(ctx context.Context, req dto.CreateRegionRequest) (region *domain.Region, err error) {
	defer func() { uc.metrics.RegionOperation("create", err) }()

	region = &domain.Region{
		ID:          req.ID,
		Name:        req.Name,
		UserID:      req.UserID,
		Coordinates: req.Coordinates.ToDomain(),
	}

	err = uc.store.InTx(ctx, func(tx repository.Store) error {
		// Блокировка строки владельца сериализует создание регионов одного пользователя
		ownerExists, err := tx.Users().LockForUpdate(ctx, region.UserID)
		if err != nil {
			return err
		}

		if err := uc.ensureUnique(ctx, tx, region.Key(), ""); err != nil {
			return err
		}

		if !ownerExists {
			return errors.ErrOwnerNotFound.WithDetails(map[string]interface{}{"user": region.UserID})
		}

		if region.ID == "" {
			region.ID = uuid.NewString()
		}

		if err := tx.Regions().Create(ctx, region); err != nil {
			return err
		}

		return tx.Users().AppendRegion(ctx, region.UserID, region.ID)
	})
	if err != nil {
		uc.logFailure("Failed to create region", err,
			zap.String("user", region.UserID),
			zap.String("name", region.Name))
		return nil, err
	}

	uc.invalidateUsers(ctx, region.UserID)
	uc.publish(ctx, &domain.RegionEvent{
		Type:     domain.RegionCreated,
		RegionID: region.ID,
		UserID:   region.UserID,
	})

	uc.logger.Info("Region created",
		zap.String("id", region.ID),
		zap.String("user", region.UserID))

	return region, nil
}

func (uc *RegionUseCase) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	region, err := uc.store.Regions().GetByID(ctx, id)
	if err != nil {
		uc.logFailure("Failed to get region", err, zap.String("id", id))
		return nil, err
	}

	return region, nil
}

func (uc *RegionUseCase) List(ctx context.Context, req dto.ListRequest) (*dto.RegionListResponse, error) {
	req = req.Normalize()

	regions, err := uc.store.Regions().List(ctx, req.Limit, req.Offset())
	if err != nil {
		uc.logger.Error("Failed to list regions", zap.Error(err))
		return nil, err
	}

	total, err := uc.store.Regions().Count(ctx)
	if err != nil {
		uc.logger.Error("Failed to count regions", zap.Error(err))
		return nil, err
	}

	return &dto.RegionListResponse{
		Regions: regions,
		Total:   total,
		Page:    req.Page,
		Limit:   req.Limit,
	}, nil
}

// Update применяет только переданные поля. Проверка дубликата идёт по
// предлагаемому кортежу с новым владельцем и исключает сам регион.
func (uc *RegionUseCase) Update(
	ctx context.Context,
	id string,
	req dto.UpdateRegionRequest,
) (updated *domain.Region, err error) {
	defer func() { uc.metrics.RegionOperation("update", err) }()

	var previousOwner string

	err = uc.store.InTx(ctx, func(tx repository.Store) error {
		current, err := tx.Regions().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !req.HasChanges() {
			updated = current
			return nil
		}

		proposed := *current
		if req.Name != nil {
			proposed.Name = *req.Name
		}
		if req.Coordinates != nil {
			proposed.Coordinates = req.Coordinates.ToDomain()
		}
		if req.UserID != nil {
			proposed.UserID = *req.UserID
		}

		// Блокировка владельца кортежа сериализует изменения с Create и другими Update того же пользователя
		ownerChanged := proposed.UserID != current.UserID
		ownerExists, err := tx.Users().LockForUpdate(ctx, proposed.UserID)
		if err != nil {
			return err
		}

		if err := uc.ensureUnique(ctx, tx, proposed.Key(), id); err != nil {
			return err
		}

		// Регион удалённого пользователя можно править, но переназначить на несуществующего нельзя
		if ownerChanged && !ownerExists {
			return errors.ErrOwnerNotFound.WithDetails(map[string]interface{}{"user": proposed.UserID})
		}

		if err := tx.Regions().Update(ctx, &proposed); err != nil {
			return err
		}

		if ownerChanged {
			if err := tx.Users().AppendRegion(ctx, proposed.UserID, proposed.ID); err != nil {
				return err
			}
			previousOwner = current.UserID
		}

		updated = &proposed
		return nil
	})
	if err != nil {
		uc.logFailure("Failed to update region", err, zap.String("id", id))
		return nil, err
	}

	if !req.HasChanges() {
		return updated, nil
	}

	if previousOwner != "" {
		uc.invalidateUsers(ctx, updated.UserID, previousOwner)
	}
	uc.publish(ctx, &domain.RegionEvent{
		Type:           domain.RegionUpdated,
		RegionID:       updated.ID,
		UserID:         updated.UserID,
		PreviousUserID: previousOwner,
	})

	return updated, nil
}

// Delete не трогает список владельца: лишний id убирает воркер очистки по событию region.deleted
func (uc *RegionUseCase) Delete(ctx context.Context, id string) (deleted *domain.Region, err error) {
	defer func() { uc.metrics.RegionOperation("delete", err) }()

	deleted, err = uc.store.Regions().Delete(ctx, id)
	if err != nil {
		uc.logFailure("Failed to delete region", err, zap.String("id", id))
		return nil, err
	}

	uc.publish(ctx, &domain.RegionEvent{
		Type:     domain.RegionDeleted,
		RegionID: deleted.ID,
		UserID:   deleted.UserID,
	})

	uc.logger.Info("Region deleted",
		zap.String("id", deleted.ID),
		zap.String("user", deleted.UserID))

	return deleted, nil
}

func (uc *RegionUseCase) ensureUnique(
	ctx context.Context,
	tx repository.Store,
	key domain.RegionKey,
	excludeID string,
) error {
	dup, err := tx.Regions().FindDuplicate(ctx, key, excludeID)
	if err != nil {
		return err
	}
	if dup != nil {
		return errors.ErrDuplicateRegion.WithDetails(map[string]interface{}{"existing_id": dup.ID})
	}
	return nil
}

func (uc *RegionUseCase) invalidateUsers(ctx context.Context, ids ...string) {
	if uc.cache == nil {
		return
	}
	for _, id := range ids {
		if err := uc.cache.InvalidateUser(ctx, id); err != nil {
			uc.logger.Warn("Failed to invalidate user cache", zap.String("user", id), zap.Error(err))
		}
	}
}

// publish - ошибка публикации не откатывает уже зафиксированное изменение
func (uc *RegionUseCase) publish(ctx context.Context, event *domain.RegionEvent) {
	if uc.stream == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()

	if err := uc.stream.PublishToStream(ctx, domain.StreamRegionEvents, event); err != nil {
		uc.logger.Error("Failed to publish region event",
			zap.String("type", string(event.Type)),
			zap.String("region_id", event.RegionID),
			zap.Error(err))
	}
}

// logFailure: ошибки клиента - warn, остальное - error
func (uc *RegionUseCase) logFailure(msg string, err error, fields ...zap.Field) {
	logFailure(uc.logger, msg, err, fields...)
}

func logFailure(logger *zap.Logger, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if appErr, ok := errors.As(err); ok && appErr.StatusCode < 500 {
		logger.Warn(msg, fields...)
		return
	}
	logger.Error(msg, fields...)
}
