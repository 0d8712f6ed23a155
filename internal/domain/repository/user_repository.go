package repository

import (
	"context"

	"github.com/region-service/internal/domain"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// GetByID возвращает пользователя по ID (errors.ErrUserNotFound если нет)
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// LockForUpdate блокирует строку пользователя до конца транзакции.
	// Возвращает false, если пользователя нет.
	LockForUpdate(ctx context.Context, id string) (bool, error)

	// List возвращает пользователей (limit 0 - без ограничения)
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// Count возвращает общее количество пользователей
	Count(ctx context.Context) (int, error)

	Create(ctx context.Context, user *domain.User) error

	// Update сохраняет name/email/address/coordinates; список регионов не трогает
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя и возвращает удалённую запись
	Delete(ctx context.Context, id string) (*domain.User, error)

	// AppendRegion атомарно добавляет ID региона в конец списка пользователя; уже присутствующий ID не дублируется
	AppendRegion(ctx context.Context, userID, regionID string) error

	// RemoveRegion удаляет ID региона из списка пользователя.
	// Возвращает false, если пользователя нет или ID в списке не было.
	RemoveRegion(ctx context.Context, userID, regionID string) (bool, error)
}
