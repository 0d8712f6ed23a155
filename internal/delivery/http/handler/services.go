package handler

import (
	"context"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/usecase"
	"github.com/region-service/internal/usecase/dto"
)

// UserService - операции над пользователями, которые нужны обработчикам
type UserService interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, req dto.ListRequest) (*dto.UserListResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateUserRequest) (*domain.User, error)
	Delete(ctx context.Context, id string) (*domain.User, error)
}

// RegionService - запись и чтение регионов
type RegionService interface {
	Create(ctx context.Context, req dto.CreateRegionRequest) (*domain.Region, error)
	GetByID(ctx context.Context, id string) (*domain.Region, error)
	List(ctx context.Context, req dto.ListRequest) (*dto.RegionListResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRegionRequest) (*domain.Region, error)
	Delete(ctx context.Context, id string) (*domain.Region, error)
}

// GeoQueryService - геозапросы по регионам
type GeoQueryService interface {
	RegionsContainingPoint(ctx context.Context, req dto.ContainingPointRequest) ([]*domain.Region, error)
	RegionsWithinDistance(ctx context.Context, req dto.WithinDistanceRequest) ([]*domain.RegionWithUser, error)
}

var (
	_ UserService     = (*usecase.UserUseCase)(nil)
	_ RegionService   = (*usecase.RegionUseCase)(nil)
	_ GeoQueryService = (*usecase.GeoQueryUseCase)(nil)
)
