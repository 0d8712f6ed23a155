package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRegionEvent_StaleOwner(t *testing.T) {
	regionID := uuid.NewString()

	tests := []struct {
		name     string
		event    RegionEvent
		expected string
	}{
		{
			name:     "deleted region leaves id in owner list",
			event:    RegionEvent{Type: RegionDeleted, RegionID: regionID, UserID: "owner"},
			expected: "owner",
		},
		{
			name:     "reassigned region leaves id in previous owner list",
			event:    RegionEvent{Type: RegionUpdated, RegionID: regionID, UserID: "new", PreviousUserID: "old"},
			expected: "old",
		},
		{
			name:     "update without owner change",
			event:    RegionEvent{Type: RegionUpdated, RegionID: regionID, UserID: "owner"},
			expected: "",
		},
		{
			name:     "update with same previous owner",
			event:    RegionEvent{Type: RegionUpdated, RegionID: regionID, UserID: "owner", PreviousUserID: "owner"},
			expected: "",
		},
		{
			name:     "created region",
			event:    RegionEvent{Type: RegionCreated, RegionID: regionID, UserID: "owner"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.StaleOwner())
		})
	}
}
