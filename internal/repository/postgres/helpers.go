package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/region-service/internal/domain"
)

const uniqueViolationCode = "23505"

// sphereRadiusMeters - средний радиус WGS84, который PostGIS использует
// для geography при use_spheroid = false
const sphereRadiusMeters = 6371008.7714

// isUniqueViolation - нарушение PRIMARY KEY / UNIQUE; понимает ошибки обоих драйверов (pgx в сервисе, lib/pq в тестах)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode
}

func coordinatesToNull(c *domain.Coordinates) (lat, lon sql.NullFloat64) {
	if c == nil {
		return
	}
	return sql.NullFloat64{Float64: c.Latitude, Valid: true},
		sql.NullFloat64{Float64: c.Longitude, Valid: true}
}

func coordinatesFromNull(lat, lon sql.NullFloat64) *domain.Coordinates {
	if !lat.Valid || !lon.Valid {
		return nil
	}
	return &domain.Coordinates{Latitude: lat.Float64, Longitude: lon.Float64}
}
