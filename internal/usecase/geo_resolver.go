package usecase

import (
	"context"
	"strings"

	"github.com/region-service/internal/domain"
	"github.com/region-service/internal/domain/repository"
	"github.com/region-service/internal/pkg/errors"
	"go.uber.org/zap"
)

// LocationResolver - адрес <-> координаты
type LocationResolver interface {
	ResolveLocation(ctx context.Context, location domain.Location) (domain.Location, error)
}

// GeoResolver разрешает адрес в координаты и обратно через внешний геокодер.
// Без кеша и повторов: одна попытка на вызов.
type GeoResolver struct {
	geocoder repository.GeocoderRepository
	logger   *zap.Logger
}

func NewGeoResolver(geocoder repository.GeocoderRepository, logger *zap.Logger) *GeoResolver {
	return &GeoResolver{
		geocoder: geocoder,
		logger:   logger,
	}
}

// ResolveLocation возвращает {Coordinates} для адреса или {Address} для координат.
// Если совпадений нет, возвращается исходное значение.
func (r *GeoResolver) ResolveLocation(ctx context.Context, location domain.Location) (domain.Location, error) {
	switch {
	case location.Address != nil:
		query := location.Address.String()
		first, err := r.firstMatch(ctx, query)
		if err != nil || first == nil {
			return location, err
		}

		coords := first.Coordinates
		return domain.Location{Coordinates: &coords}, nil

	case location.Coordinates != nil:
		query := location.Coordinates.String()
		first, err := r.firstMatch(ctx, query)
		if err != nil || first == nil {
			return location, err
		}

		addr := parseFormattedAddress(first.Formatted)
		return domain.Location{Address: &addr}, nil
	}

	return location, nil
}

func (r *GeoResolver) firstMatch(ctx context.Context, query string) (*domain.GeocodeResult, error) {
	results, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		r.logger.Error("Location resolution failed", zap.String("query", query), zap.Error(err))
		return nil, errors.ErrResolution.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		})
	}

	if len(results) == 0 {
		r.logger.Warn("Geocoder returned no matches, keeping input", zap.String("query", query))
		return nil, nil
	}

	return &results[0], nil
}

// parseFormattedAddress делит строку провайдера по первым двум запятым:
// street, city, остаток - zipCode
func parseFormattedAddress(formatted string) domain.Address {
	parts := strings.SplitN(formatted, ",", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	return domain.Address{
		Street:  strings.TrimSpace(parts[0]),
		City:    strings.TrimSpace(parts[1]),
		ZipCode: strings.TrimSpace(parts[2]),
	}
}

var _ LocationResolver = (*GeoResolver)(nil)
