package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompareController interface {
	RegisterRoutes(r fiber.Router)
	Compare(ctx *fiber.Ctx) error
}

type compareController struct {
	compareService service.ICompareService
}

func NewCompareController(compareService service.ICompareService) ICompareController {
	return &compareController{compareService: compareService}
}

func (c *compareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/compare/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Compare)
}

func (c *compareController) Compare(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.CompareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.compareService.Compare(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Documents compared", res))
}
