package handler

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/region-service/internal/pkg/errors"
	"github.com/region-service/internal/pkg/validator"
	"github.com/region-service/internal/usecase/dto"
)

// queryFloat читает необязательный числовой query-параметр; nil - параметр не передан
func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, errors.ErrInvalidParameter.
			WithMessage(name + " must be a finite number").
			WithDetails(map[string]interface{}{name: raw})
	}

	return &v, nil
}

func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ErrInvalidParameter.
			WithMessage(name + " must be an integer").
			WithDetails(map[string]interface{}{name: raw})
	}

	return v, nil
}

// parseListRequest - page и limit из query, значения по умолчанию подставляет use case
func parseListRequest(c *fiber.Ctx) (dto.ListRequest, error) {
	var req dto.ListRequest
	var err error

	if req.Page, err = queryInt(c, "page"); err != nil {
		return req, err
	}
	if req.Limit, err = queryInt(c, "limit"); err != nil {
		return req, err
	}

	return req, validator.Validate(&req)
}

// parseBody - разбор JSON тела и валидация DTO
func parseBody(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return validator.Validate(req)
}
