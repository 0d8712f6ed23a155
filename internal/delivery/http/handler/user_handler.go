package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/region-service/internal/pkg/utils"
	"github.com/region-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// UserHandler - обработчик запросов к пользователям
type UserHandler struct {
	userUC UserService
	logger *zap.Logger
}

// NewUserHandler - создание нового UserHandler
func NewUserHandler(userUC UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userUC: userUC,
		logger: logger,
	}
}

// Create godoc
// @Summary Create user
// @Description Создаёт пользователя. Нужно передать ровно одно из address/coordinates, второе вычисляется геокодером
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, user, nil)
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param page query int false "Page (from 1)"
// @Param limit query int false "Page size"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	req, err := parseListRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.userUC.List(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.Users, &utils.Meta{
		Total: result.Total,
		Page:  result.Page,
		Limit: result.Limit,
	})
}

// Get godoc
// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userUC.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}

// Update godoc
// @Summary Update user
// @Description Частичное обновление; новый адрес или новые координаты дополняются геокодером
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.userUC.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}

// Delete godoc
// @Summary Delete user
// @Description Удаляет пользователя; его регионы остаются
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	user, err := h.userUC.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, user, nil)
}
