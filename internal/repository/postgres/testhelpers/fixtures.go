package testhelpers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/region-service/internal/domain"
	"github.com/stretchr/testify/require"
)

// InsertUser inserts a user row directly and returns it
func InsertUser(t *testing.T, db *sqlx.DB, name string, regionIDs ...string) *domain.User {
	t.Helper()

	if regionIDs == nil {
		regionIDs = []string{}
	}

	user := &domain.User{
		ID:      uuid.NewString(),
		Name:    name,
		Email:   name + "@example.com",
		Regions: regionIDs,
	}

	err := db.QueryRowxContext(context.Background(),
		`INSERT INTO users (id, name, email, region_ids) VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		user.ID, user.Name, user.Email, pq.StringArray(regionIDs),
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	require.NoError(t, err)

	return user
}

// InsertRegion inserts a region row directly without touching the owner's list
func InsertRegion(t *testing.T, db *sqlx.DB, userID, name string, coords *domain.Coordinates) *domain.Region {
	t.Helper()

	region := &domain.Region{
		ID:          uuid.NewString(),
		Name:        name,
		UserID:      userID,
		Coordinates: coords,
	}

	var lat, lon interface{}
	if coords != nil {
		lat, lon = coords.Latitude, coords.Longitude
	}

	err := db.QueryRowxContext(context.Background(),
		`INSERT INTO regions (id, name, latitude, longitude, user_id) VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`,
		region.ID, region.Name, lat, lon, region.UserID,
	).Scan(&region.CreatedAt, &region.UpdatedAt)
	require.NoError(t, err)

	return region
}

// UserRegionIDs reads the stored region list of a user
func UserRegionIDs(t *testing.T, db *sqlx.DB, userID string) []string {
	t.Helper()

	var ids pq.StringArray
	err := db.GetContext(context.Background(), &ids, `SELECT region_ids FROM users WHERE id = $1`, userID)
	require.NoError(t, err)

	return []string(ids)
}
