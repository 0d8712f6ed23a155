package dto

import "github.com/region-service/internal/domain"

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users []*domain.User `json:"rows"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// RegionListResponse - страница регионов
type RegionListResponse struct {
	Regions []*domain.Region `json:"rows"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}
