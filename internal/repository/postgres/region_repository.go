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

const regionColumns = `id, name, latitude, longitude, user_id, created_at, updated_at`

type regionRepository struct {
	db     queryer
	logger *zap.Logger
}

func NewRegionRepository(db *DB) repository.RegionRepository {
	return &regionRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

type regionRow struct {
	ID        string          `db:"id"`
	Name      string          `db:"name"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
	UserID    string          `db:"user_id"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (r regionRow) toDomain() *domain.Region {
	return &domain.Region{
		ID:          r.ID,
		Name:        r.Name,
		Coordinates: coordinatesFromNull(r.Latitude, r.Longitude),
		UserID:      r.UserID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// regionOwnerRow - регион с LEFT JOIN владельца (колонки владельца nullable)
type regionOwnerRow struct {
	regionRow
	OwnerID        sql.NullString  `db:"owner_id"`
	OwnerName      sql.NullString  `db:"owner_name"`
	OwnerEmail     sql.NullString  `db:"owner_email"`
	OwnerStreet    sql.NullString  `db:"owner_street"`
	OwnerCity      sql.NullString  `db:"owner_city"`
	OwnerZipCode   sql.NullString  `db:"owner_zip_code"`
	OwnerLatitude  sql.NullFloat64 `db:"owner_latitude"`
	OwnerLongitude sql.NullFloat64 `db:"owner_longitude"`
	OwnerRegionIDs pq.StringArray  `db:"owner_region_ids"`
	OwnerCreatedAt sql.NullTime    `db:"owner_created_at"`
	OwnerUpdatedAt sql.NullTime    `db:"owner_updated_at"`
}

func (r regionOwnerRow) toDomain() *domain.RegionWithUser {
	result := &domain.RegionWithUser{
		ID:          r.ID,
		Name:        r.Name,
		Coordinates: coordinatesFromNull(r.Latitude, r.Longitude),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}

	if r.OwnerID.Valid {
		result.User = userRow{
			ID:        r.OwnerID.String,
			Name:      r.OwnerName.String,
			Email:     r.OwnerEmail.String,
			Street:    r.OwnerStreet,
			City:      r.OwnerCity,
			ZipCode:   r.OwnerZipCode,
			Latitude:  r.OwnerLatitude,
			Longitude: r.OwnerLongitude,
			RegionIDs: r.OwnerRegionIDs,
			CreatedAt: r.OwnerCreatedAt.Time,
			UpdatedAt: r.OwnerUpdatedAt.Time,
		}.toDomain()
	}

	return result
}

func (r *regionRepository) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions WHERE id = $1`

	var row regionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrRegionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get region by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *regionRepository) FindDuplicate(
	ctx context.Context,
	key domain.RegionKey,
	excludeID string,
) (*domain.Region, error) {
	// IS NOT DISTINCT FROM: регион без координат совпадает только с регионом без координат
	query := `
		SELECT ` + regionColumns + `
		FROM regions
		WHERE user_id = $1
			AND name = $2
			AND latitude IS NOT DISTINCT FROM $3
			AND longitude IS NOT DISTINCT FROM $4
			AND id <> $5
		LIMIT 1
	`

	lat, lon := coordinatesToNull(key.Coordinates)

	var row regionRow
	err := r.db.GetContext(ctx, &row, query, key.UserID, key.Name, lat, lon, excludeID)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to look up duplicate region",
			zap.String("user_id", key.UserID),
			zap.String("name", key.Name),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *regionRepository) List(ctx context.Context, limit, offset int) ([]*domain.Region, error) {
	query := `SELECT ` + regionColumns + ` FROM regions ORDER BY created_at, id`
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

	return r.selectRegions(ctx, "list regions", query, args...)
}

func (r *regionRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM regions`); err != nil {
		r.logger.Error("Failed to count regions", zap.Error(err))
		return 0, errors.ErrDatabaseError
	}

	return total, nil
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) error {
	query := `
		INSERT INTO regions (id, name, latitude, longitude, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	lat, lon := coordinatesToNull(region.Coordinates)

	err := r.db.QueryRowxContext(ctx, query,
		region.ID, region.Name, lat, lon, region.UserID,
	).Scan(&region.CreatedAt, &region.UpdatedAt)
	if isUniqueViolation(err) {
		return errors.ErrRegionIDConflict
	}
	if err != nil {
		r.logger.Error("Failed to create region", zap.String("id", region.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *regionRepository) Update(ctx context.Context, region *domain.Region) error {
	query := `
		UPDATE regions
		SET name = $2, latitude = $3, longitude = $4, user_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	lat, lon := coordinatesToNull(region.Coordinates)

	err := r.db.QueryRowxContext(ctx, query,
		region.ID, region.Name, lat, lon, region.UserID,
	).Scan(&region.UpdatedAt)
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.ErrRegionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update region", zap.String("id", region.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}

func (r *regionRepository) Delete(ctx context.Context, id string) (*domain.Region, error) {
	query := `DELETE FROM regions WHERE id = $1 RETURNING ` + regionColumns

	var row regionRow
	err := r.db.GetContext(ctx, &row, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrRegionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to delete region", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return row.toDomain(), nil
}

func (r *regionRepository) FindByPoint(ctx context.Context, point domain.Coordinates) ([]*domain.Region, error) {
	query := `
		SELECT ` + regionColumns + `
		FROM regions
		WHERE latitude = $1 AND longitude = $2
		ORDER BY created_at, id
	`

	return r.selectRegions(ctx, "find regions by point", query, point.Latitude, point.Longitude)
}

func (r *regionRepository) FindWithinRadius(
	ctx context.Context,
	center domain.Coordinates,
	radiusRadians float64,
) ([]*domain.RegionWithUser, error) {
	// Сферическая шапка: угловой радиус переводится в метры на сфере PostGIS
	query := `
		WITH center AS (
			SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography AS geog
		)
		SELECT
			r.id, r.name, r.latitude, r.longitude, r.user_id, r.created_at, r.updated_at,
			u.id AS owner_id, u.name AS owner_name, u.email AS owner_email,
			u.street AS owner_street, u.city AS owner_city, u.zip_code AS owner_zip_code,
			u.latitude AS owner_latitude, u.longitude AS owner_longitude,
			u.region_ids AS owner_region_ids,
			u.created_at AS owner_created_at, u.updated_at AS owner_updated_at
		FROM regions r
		CROSS JOIN center
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.location IS NOT NULL
			AND ST_DWithin(r.location::geography, center.geog, $3, false)
		ORDER BY ST_Distance(r.location::geography, center.geog, false), r.created_at, r.id
	`

	radiusMeters := radiusRadians * sphereRadiusMeters

	var rows []regionOwnerRow
	if err := r.db.SelectContext(ctx, &rows, query, center.Longitude, center.Latitude, radiusMeters); err != nil {
		r.logger.Error("Failed to find regions within radius",
			zap.Float64("lat", center.Latitude),
			zap.Float64("lon", center.Longitude),
			zap.Float64("radius_rad", radiusRadians),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	regions := make([]*domain.RegionWithUser, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, row.toDomain())
	}

	return regions, nil
}

func (r *regionRepository) selectRegions(
	ctx context.Context,
	op string,
	query string,
	args ...interface{},
) ([]*domain.Region, error) {
	var rows []regionRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to "+op, zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	regions := make([]*domain.Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, row.toDomain())
	}

	return regions, nil
}
