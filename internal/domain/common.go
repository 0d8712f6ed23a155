package domain

import "fmt"

// Coordinates - значение-точка (широта/долгота). Сравнение строго по значению, без допуска.
type Coordinates struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}

// Equal - точное сравнение координат
func (c Coordinates) Equal(other Coordinates) bool {
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}

// String - формат "lat,lng" для запросов к геокодеру
func (c Coordinates) String() string {
	return fmt.Sprintf("%v,%v", c.Latitude, c.Longitude)
}

// SameCoordinates сравнивает необязательные координаты:
// две пустые равны, пустая и заданная - не равны
func SameCoordinates(a, b *Coordinates) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// Address - почтовый адрес пользователя
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// String - формат "street, city, zipCode" для запросов к геокодеру
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s", a.Street, a.City, a.ZipCode)
}

// Location - вход и выход GeoResolver: адрес или координаты
type Location struct {
	Address     *Address     `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}
