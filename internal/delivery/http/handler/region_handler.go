package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/region-service/internal/pkg/utils"
	"github.com/region-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// RegionHandler - CRUD регионов и геозапросы
type RegionHandler struct {
	regionUC RegionService
	geoUC    GeoQueryService
	logger   *zap.Logger
}

func NewRegionHandler(regionUC RegionService, geoUC GeoQueryService, logger *zap.Logger) *RegionHandler {
	return &RegionHandler{
		regionUC: regionUC,
		geoUC:    geoUC,
		logger:   logger,
	}
}

// Create godoc
// @Summary Create region
// @Description Создаёт регион и добавляет его id в список регионов владельца
// @Tags Regions
// @Accept json
// @Produce json
// @Param request body dto.CreateRegionRequest true "Region"
// @Success 201 {object} utils.SuccessResponse{data=domain.Region}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse "Duplicate region"
// @Failure 500 {object} utils.ErrorResponse "Owner not found"
// @Router /api/v1/regions [post]
func (h *RegionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRegionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	region, err := h.regionUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, region, nil)
}

// List godoc
// @Summary List regions
// @Tags Regions
// @Produce json
// @Param page query int false "Page (from 1)"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Region}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/regions [get]
func (h *RegionHandler) List(c *fiber.Ctx) error {
	req, err := parseListRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.regionUC.List(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Regions, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Get godoc
// @Summary Get region
// @Tags Regions
// @Produce json
// @Param id path string true "Region ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Region}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id} [get]
func (h *RegionHandler) Get(c *fiber.Ctx) error {
	region, err := h.regionUC.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, region, nil)
}

// Update godoc
// @Summary Update region
// @Description Частичное обновление; смена user переносит регион к новому владельцу
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path string true "Region ID"
// @Param request body dto.UpdateRegionRequest true "Fields to update"
// @Success 200 {object} utils.SuccessResponse{data=domain.Region}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id} [put]
func (h *RegionHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateRegionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	region, err := h.regionUC.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, region, nil)
}

// Delete godoc
// @Summary Delete region
// @Tags Regions
// @Produce json
// @Param id path string true "Region ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Region}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/{id} [delete]
func (h *RegionHandler) Delete(c *fiber.Ctx) error {
	region, err := h.regionUC.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, region, nil)
}

// Containing godoc
// @Summary Regions at a point
// @Description Регионы, центроид которых совпадает с точкой. Пустой список - не ошибка
// @Tags Regions
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Region}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/regions/containing [get]
func (h *RegionHandler) Containing(c *fiber.Ctx) error {
	var req dto.ContainingPointRequest
	var err error

	if req.Latitude, err = queryFloat(c, "latitude"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Longitude, err = queryFloat(c, "longitude"); err != nil {
		return utils.SendError(c, err)
	}

	regions, err := h.geoUC.RegionsContainingPoint(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, regions, &utils.Meta{Total: len(regions)})
}

// WithinDistance godoc
// @Summary Regions within distance
// @Description Регионы в радиусе distance километров вместе с владельцами
// @Tags Regions
// @Produce json
// @Param latitude query number true "Latitude"
// @Param longitude query number true "Longitude"
// @Param distance query number true "Distance in kilometers"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.RegionWithUser}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/regions/within-distance [get]
func (h *RegionHandler) WithinDistance(c *fiber.Ctx) error {
	var req dto.WithinDistanceRequest
	var err error

	if req.Latitude, err = queryFloat(c, "latitude"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Longitude, err = queryFloat(c, "longitude"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Distance, err = queryFloat(c, "distance"); err != nil {
		return utils.SendError(c, err)
	}

	regions, err := h.geoUC.RegionsWithinDistance(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, regions, &utils.Meta{Total: len(regions)})
}
