package repository

import (
	"context"

	"github.com/region-service/internal/domain"
)

// RegionRepository определяет методы для работы с регионами
type RegionRepository interface {
	// GetByID возвращает регион по ID (errors.ErrRegionNotFound если нет)
	GetByID(ctx context.Context, id string) (*domain.Region, error)

	// FindDuplicate ищет регион с точным совпадением кортежа (user, name, coordinates),
	// исключая excludeID (пустая строка - без исключения). nil, nil если не найден.
	FindDuplicate(ctx context.Context, key domain.RegionKey, excludeID string) (*domain.Region, error)

	// List возвращает регионы (limit 0 - без ограничения)
	List(ctx context.Context, limit, offset int) ([]*domain.Region, error)

	// Count возвращает общее количество регионов
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, region *domain.Region) error

	Update(ctx context.Context, region *domain.Region) error

	// Delete удаляет регион и возвращает удалённую запись
	Delete(ctx context.Context, id string) (*domain.Region, error)

	// FindByPoint возвращает регионы, центроид которых точно совпадает с точкой
	FindByPoint(ctx context.Context, point domain.Coordinates) ([]*domain.Region, error)

	// FindWithinRadius возвращает регионы внутри сферической шапки
	// (радиус в радианах) вместе с владельцами
	FindWithinRadius(ctx context.Context, center domain.Coordinates, radiusRadians float64) ([]*domain.RegionWithUser, error)
}
