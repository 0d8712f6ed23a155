package dto

import "github.com/region-service/internal/domain"

const (
	DefaultPage  = 1
	DefaultLimit = 50
	MaxLimit     = 500
)

// AddressInput - почтовый адрес во входящих запросах
type AddressInput struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
}

func (a *AddressInput) ToDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{Street: a.Street, City: a.City, ZipCode: a.ZipCode}
}

// CoordinatesInput - указатели, чтобы 0 отличался от отсутствующего значения
type CoordinatesInput struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (c *CoordinatesInput) ToDomain() *domain.Coordinates {
	if c == nil || c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	return &domain.Coordinates{Latitude: *c.Latitude, Longitude: *c.Longitude}
}

// CreateUserRequest - ровно одно из address/coordinates
type CreateUserRequest struct {
	Name        string            `json:"name" validate:"required"`
	Email       string            `json:"email" validate:"required,email"`
	Address     *AddressInput     `json:"address,omitempty"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
}

// UpdateUserRequest - частичное обновление, nil поля не меняются
type UpdateUserRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1"`
	Email       *string           `json:"email,omitempty" validate:"omitempty,email"`
	Address     *AddressInput     `json:"address,omitempty"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
}

// CreateRegionRequest - id необязателен, при отсутствии генерируется
type CreateRegionRequest struct {
	ID          string            `json:"id,omitempty" validate:"omitempty,max=64"`
	Name        string            `json:"name" validate:"required"`
	UserID      string            `json:"user" validate:"required"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
}

// UpdateRegionRequest - частичное обновление; user переназначает владельца
type UpdateRegionRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1"`
	UserID      *string           `json:"user,omitempty" validate:"omitempty,min=1"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
}

// HasChanges - передано ли хотя бы одно поле
func (r UpdateRegionRequest) HasChanges() bool {
	return r.Name != nil || r.UserID != nil || r.Coordinates != nil
}

// ListRequest - page/limit передаются насквозь
type ListRequest struct {
	Page  int `query:"page" validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// Normalize подставляет значения по умолчанию
func (r ListRequest) Normalize() ListRequest {
	if r.Page == 0 {
		r.Page = DefaultPage
	}
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	return r
}

func (r ListRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// ContainingPointRequest - запрос регионов в точке
type ContainingPointRequest struct {
	Latitude  *float64 `query:"latitude"`
	Longitude *float64 `query:"longitude"`
}

// WithinDistanceRequest - запрос регионов в радиусе (distance в километрах)
type WithinDistanceRequest struct {
	Latitude  *float64 `query:"latitude"`
	Longitude *float64 `query:"longitude"`
	Distance  *float64 `query:"distance"`
}

// ResolveLocationRequest - вход GeoResolver
type ResolveLocationRequest struct {
	Address     *AddressInput     `json:"address,omitempty"`
	Coordinates *CoordinatesInput `json:"coordinates,omitempty"`
}

func (r ResolveLocationRequest) ToDomain() domain.Location {
	return domain.Location{
		Address:     r.Address.ToDomain(),
		Coordinates: r.Coordinates.ToDomain(),
	}
}
