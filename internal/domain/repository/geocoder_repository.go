package repository

import (
	"context"

	"github.com/region-service/internal/domain"
)

// GeocoderRepository - внешний провайдер геокодирования.
// Один вызов - один HTTP запрос, без кеша и повторов.
type GeocoderRepository interface {
	// Geocode выполняет прямой или обратный поиск по строке запроса
	// ("street, city, zip" или "lat,lng"). Пустой срез - совпадений нет.
	Geocode(ctx context.Context, query string) ([]domain.GeocodeResult, error)
}
