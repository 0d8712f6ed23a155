package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/repository/postgres"
	"go.uber.org/zap"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewUserRepositoryForTest creates a user repository with test database and logger
func NewUserRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.UserRepository {
	return postgres.NewUserRepository(NewDBForTest(db, logger))
}

// NewRegionRepositoryForTest creates a region repository with test database and logger
func NewRegionRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.RegionRepository {
	return postgres.NewRegionRepository(NewDBForTest(db, logger))
}

// NewStoreForTest creates a transactional store with test database and logger
func NewStoreForTest(db *sqlx.DB, logger *zap.Logger) repository.Store {
	return postgres.NewStore(NewDBForTest(db, logger))
}
