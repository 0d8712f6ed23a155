package domain

import "time"

// Region - именованная точка (центроид), принадлежащая пользователю
type Region struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	UserID      string       `json:"user"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// RegionKey - кортеж, по которому определяются дубликаты регионов
type RegionKey struct {
	UserID      string
	Name        string
	Coordinates *Coordinates
}

// Key возвращает кортеж дубликата для региона
func (r *Region) Key() RegionKey {
	return RegionKey{UserID: r.UserID, Name: r.Name, Coordinates: r.Coordinates}
}

// Matches - структурное сравнение кортежей
func (k RegionKey) Matches(other RegionKey) bool {
	return k.UserID == other.UserID &&
		k.Name == other.Name &&
		SameCoordinates(k.Coordinates, other.Coordinates)
}

// RegionWithUser - регион с подставленным владельцем (владелец может быть удалён)
type RegionWithUser struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	User        *User        `json:"user"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
