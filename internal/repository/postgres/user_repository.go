package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const userColumns = `id, name, email, street, city, zip_code, latitude, longitude, region_ids, created_at, updated_at`

type userRepository struct {
	db     queryer
	logger *zap.Logger
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type userRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Email     string          `db:"email"`
	Street    sql.NullString  `db:"street"`
	City      sql.NullString  `db:"city"`
	ZipCode   sql.NullString  `db:"zip_code"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
	RegionIDs pq.StringArray  `db:"region_ids"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Regions:   []string(r.RegionIDs),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if u.Regions == nil {
		u.Regions = []string{}
	}
	if r.Street.Valid || r.City.Valid || r.ZipCode.Valid {
		u.Address = &domain.Address{
			Street:  r.Street.String,
			City:    r.City.String,
			ZipCode: r.ZipCode.String,
		}
	}
	u.Coordinates = coordinatesFromNull(r.Latitude, r.Longitude)
	return u
}

// addressArgs - адрес в виде nullable колонок
func addressArgs(a *domain.Address) (street, city, zip sql.NullString) {
	if a == nil {
		return
	}
	return sql.NullString{String: a.Street, Valid: true},
		sql.NullString{String: a.City, Valid: true},
		sql.NullString{String: a.ZipCode, Valid: true}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get user by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *userRepository) LockForUpdate(ctx context.Context, id string) (bool, error) {
	var lockedID string
	err := r.db.GetContext(ctx, &lockedID, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.logger.Error("Failed to lock user", zap.String("id", id), zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return true, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at, id`
	args := []interface{}{}
	argIdx := 1

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, limit)
		argIdx++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, offset)
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`); err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return total, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, street, city, zip_code, latitude, longitude, region_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	street, city, zip := addressArgs(user.Address)
	lat, lon := coordinatesToNull(user.Coordinates)
	if user.Regions == nil {
		user.Regions = []string{}
	}

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Email,
		street, city, zip,
		lat, lon,
		pq.StringArray(user.Regions),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create user", zap.String("id", user.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, street = $4, city = $5, zip_code = $6,
			latitude = $7, longitude = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	street, city, zip := addressArgs(user.Address)
	lat, lon := coordinatesToNull(user.Coordinates)

	err := r.db.QueryRowxContext(ctx, query,
		user.ID, user.Name, user.Email,
		street, city, zip,
		lat, lon,
	).Scan(&user.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update user", zap.String("id", user.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns

	var row userRow
	err := r.db.GetContext(ctx, &row, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("Failed to delete user", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *userRepository) AppendRegion(ctx context.Context, userID, regionID string) error {
	query := `
		UPDATE users
		SET region_ids = CASE
				WHEN $2::text = ANY(region_ids) THEN region_ids
				ELSE array_append(region_ids, $2::text)
			END,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, userID, regionID)
	if err != nil {
		r.logger.Error("Failed to append region to user",
			zap.String("user_id", userID),
			zap.String("region_id", regionID),
			zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.Error(err))
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrOwnerNotFound
	}

	return nil
}

func (r *userRepository) RemoveRegion(ctx context.Context, userID, regionID string) (bool, error) {
	query := `
		UPDATE users
		SET region_ids = array_remove(region_ids, $2::text), updated_at = NOW()
		WHERE id = $1 AND $2::text = ANY(region_ids)
	`

	res, err := r.db.ExecContext(ctx, query, userID, regionID)
	if err != nil {
		r.logger.Error("Failed to remove region from user",
			zap.String("user_id", userID),
			zap.String("region_id", regionID),
			zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to read affected rows", zap.Error(err))
		return false, errors.ErrDatabaseError
	}

	return affected > 0, nil
}
