package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceToRadians(t *testing.T) {
	assert.InDelta(t, 2/6371.0, DistanceToRadians(2), 1e-12)
	assert.Equal(t, 0.0, DistanceToRadians(0))
}

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		want       float64
		delta      float64
	}{
		{"same point", 40.689247, -74.044502, 40.689247, -74.044502, 0, 1e-9},
		{"liberty to ellis island", 40.689247, -74.044502, 40.699471, -74.039560, 1.21, 0.05},
		{"one degree of longitude on equator", 0, 0, 0, 1, 111.19, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestCentralAngle_MatchesDistanceToRadians(t *testing.T) {
	angle := CentralAngle(0, 0, 0, 1)
	dist := HaversineDistance(0, 0, 0, 1)
	assert.InDelta(t, DistanceToRadians(dist), angle, 1e-12)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.False(t, ValidateCoordinates(91, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
}
