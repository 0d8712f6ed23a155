package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"pgx unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped pgx unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"lib/pq unique violation", &pq.Error{Code: "23505"}, true},
		{"pgx other error", &pgconn.PgError{Code: "23503"}, false},
		{"lib/pq other error", &pq.Error{Code: "42P01"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
