package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/pkg/utils"
	"github.com/region-service/internal/usecase"
	"github.com/region-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// GeocodeHandler - прямой доступ к GeoResolver
type GeocodeHandler struct {
	resolver usecase.LocationResolver
	logger   *zap.Logger
}

// NewGeocodeHandler; resolver == nil, если геокодер не настроен
func NewGeocodeHandler(resolver usecase.LocationResolver, logger *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Resolve godoc
// @Summary Resolve location
// @Description Адрес -> координаты или координаты -> адрес. Без совпадений возвращается вход
// @Tags Geocode
// @Accept json
// @Produce json
// @Param request body dto.ResolveLocationRequest true "Address or coordinates"
// @Success 200 {object} utils.SuccessResponse{data=domain.Location}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/geocode/resolve [post]
func (h *GeocodeHandler) Resolve(c *fiber.Ctx) error {
	var req dto.ResolveLocationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if h.resolver == nil {
		h.logger.Warn("Geocode request while geocoder is not configured")
		return utils.SendError(c, errors.ErrResolution.WithMessage("Geocoder is not configured"))
	}

	location, err := h.resolver.ResolveLocation(c.UserContext(), req.ToDomain())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, location, nil)
}
