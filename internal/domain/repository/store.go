package repository

import "context"

// Store объединяет репозитории и даёт единицу работы поверх обеих сущностей
type Store interface {
	Users() UserRepository
	Regions() RegionRepository

	// InTx выполняет fn в одной транзакции: все изменения фиксируются вместе
	// или откатываются, если fn вернула ошибку
	InTx(ctx context.Context, fn func(tx Store) error) error
}
