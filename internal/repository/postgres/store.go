package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// queryer - общий интерфейс *sqlx.DB и *sqlx.Tx
type queryer interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// Store - реализация repository.Store поверх PostgreSQL
type Store struct {
	db      *DB
	tx      *sqlx.Tx
	users   *userRepository
	regions *regionRepository
}

func NewStore(db *DB) *Store {
	return newStore(db, db.DB, nil)
}

func newStore(db *DB, q queryer, tx *sqlx.Tx) *Store {
	return &Store{
		db:      db,
		tx:      tx,
		users:   &userRepository{db: q, logger: db.logger},
		regions: &regionRepository{db: q, logger: db.logger},
	}
}

func (s *Store) Users() repository.UserRepository {
	return s.users
}

func (s *Store) Regions() repository.RegionRepository {
	return s.regions
}

// InTx открывает транзакцию; вложенный вызов переиспользует текущую
func (s *Store) InTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.db.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.db.logger.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if err = fn(newStore(s.db, tx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		s.db.logger.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("%w: commit: %v", errors.ErrDatabaseError, err)
	}

	return nil
}
