package domain

import "time"

// User - владелец регионов
type User struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Address     *Address     `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	// Regions - идентификаторы регионов пользователя в порядке создания
	Regions   []string  `json:"regions"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasRegion проверяет наличие региона в списке пользователя
func (u *User) HasRegion(regionID string) bool {
	for _, id := range u.Regions {
		if id == regionID {
			return true
		}
	}
	return false
}
