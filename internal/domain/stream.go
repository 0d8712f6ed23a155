package domain

import "time"

// Stream names
const (
	StreamRegionEvents = "stream:region:events"
)

// RegionEventType - тип события жизненного цикла региона
type RegionEventType string

const (
	RegionCreated RegionEventType = "region.created"
	RegionUpdated RegionEventType = "region.updated"
	RegionDeleted RegionEventType = "region.deleted"
)

// RegionEvent - событие, публикуемое после фиксации изменения региона
type RegionEvent struct {
	Type           RegionEventType `json:"type"`
	RegionID       string          `json:"region_id"`
	UserID         string          `json:"user_id"`
	PreviousUserID string          `json:"previous_user_id,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// StaleOwner возвращает владельца, в списке которого остался лишний идентификатор региона.
// Пустая строка - чистить нечего.
func (e *RegionEvent) StaleOwner() string {
	switch e.Type {
	case RegionDeleted:
		return e.UserID
	case RegionUpdated:
		if e.PreviousUserID != "" && e.PreviousUserID != e.UserID {
			return e.PreviousUserID
		}
	}
	return ""
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
