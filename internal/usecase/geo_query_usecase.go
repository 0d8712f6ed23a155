package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/pkg/utils"
	"github.com/region-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// GeoQueryUseCase - запросы регионов по точке и по расстоянию
type GeoQueryUseCase struct {
	regionRepo repository.RegionRepository
	logger     *zap.Logger
}

func NewGeoQueryUseCase(regionRepo repository.RegionRepository, logger *zap.Logger) *GeoQueryUseCase {
	return &GeoQueryUseCase{
		regionRepo: regionRepo,
		logger:     logger,
	}
}

// RegionsContainingPoint возвращает регионы, центроид которых точно совпадает с точкой.
// Пустой результат - не ошибка.
func (uc *GeoQueryUseCase) RegionsContainingPoint(
	ctx context.Context,
	req dto.ContainingPointRequest,
) ([]*domain.Region, error) {
	missing := missingParams(
		param{"latitude", req.Latitude},
		param{"longitude", req.Longitude},
	)
	if len(missing) > 0 {
		uc.logger.Warn("Containing-point query with missing parameters", zap.Strings("missing", missing))
		return nil, missingParameterError(missing)
	}

	point := domain.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := ensureFinite(
		param{"latitude", req.Latitude},
		param{"longitude", req.Longitude},
	); err != nil {
		return nil, err
	}
	if !utils.ValidateCoordinates(point.Latitude, point.Longitude) {
		return nil, invalidCoordinatesError(point)
	}

	regions, err := uc.regionRepo.FindByPoint(ctx, point)
	if err != nil {
		uc.logger.Error("Failed to find regions by point", zap.Error(err))
		return nil, err
	}

	if len(regions) == 0 {
		uc.logger.Warn("No regions found at point",
			zap.Float64("lat", point.Latitude),
			zap.Float64("lon", point.Longitude))
	}

	return regions, nil
}

// RegionsWithinDistance возвращает регионы внутри сферической шапки радиусом
// distance/EarthRadiusKm радиан вместе с владельцами. Пустой результат - ErrNoRegionsFound.
func (uc *GeoQueryUseCase) RegionsWithinDistance(
	ctx context.Context,
	req dto.WithinDistanceRequest,
) ([]*domain.RegionWithUser, error) {
	missing := missingParams(
		param{"latitude", req.Latitude},
		param{"longitude", req.Longitude},
		param{"distance", req.Distance},
	)
	if len(missing) > 0 {
		uc.logger.Warn("Within-distance query with missing parameters", zap.Strings("missing", missing))
		return nil, missingParameterError(missing)
	}

	center := domain.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := ensureFinite(
		param{"latitude", req.Latitude},
		param{"longitude", req.Longitude},
		param{"distance", req.Distance},
	); err != nil {
		return nil, err
	}
	if !utils.ValidateCoordinates(center.Latitude, center.Longitude) {
		return nil, invalidCoordinatesError(center)
	}

	distanceKm := *req.Distance
	if distanceKm < 0 {
		return nil, errors.ErrInvalidParameter.
			WithMessage("distance must not be negative").
			WithDetails(map[string]interface{}{"distance": distanceKm})
	}

	radius := utils.DistanceToRadians(distanceKm)

	regions, err := uc.regionRepo.FindWithinRadius(ctx, center, radius)
	if err != nil {
		uc.logger.Error("Failed to find regions within distance", zap.Error(err))
		return nil, err
	}

	if len(regions) == 0 {
		uc.logger.Warn("No regions found within distance",
			zap.Float64("lat", center.Latitude),
			zap.Float64("lon", center.Longitude),
			zap.Float64("distance_km", distanceKm))
		return nil, errors.ErrNoRegionsFound
	}

	return regions, nil
}

type param struct {
	name  string
	value *float64
}

func missingParams(params ...param) []string {
	var missing []string
	for _, p := range params {
		if p.value == nil {
			missing = append(missing, p.name)
		}
	}
	return missing
}

// ensureFinite отсекает NaN и ±Inf до обращения к PostGIS
func ensureFinite(params ...param) error {
	for _, p := range params {
		if math.IsNaN(*p.value) || math.IsInf(*p.value, 0) {
			return errors.ErrInvalidParameter.
				WithMessage(p.name + " must be a finite number").
				WithDetails(map[string]interface{}{p.name: fmt.Sprint(*p.value)})
		}
	}
	return nil
}

func missingParameterError(missing []string) error {
	return errors.ErrMissingParameter.WithDetails(map[string]interface{}{"missing": missing})
}

func invalidCoordinatesError(c domain.Coordinates) error {
	return errors.ErrInvalidParameter.
		WithMessage("latitude must be within [-90, 90] and longitude within [-180, 180]").
		WithDetails(map[string]interface{}{"latitude": c.Latitude, "longitude": c.Longitude})
}
