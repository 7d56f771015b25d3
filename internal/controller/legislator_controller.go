package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILegislatorController interface {
	RegisterRoutes(r fiber.Router)
	Lookup(ctx *fiber.Ctx) error
}

type legislatorController struct {
	legislatorService service.ILegislatorService
}

func NewLegislatorController(legislatorService service.ILegislatorService) ILegislatorController {
	return &legislatorController{legislatorService: legislatorService}
}

func (c *legislatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/legislator/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("lookup", c.Lookup)
}

func (c *legislatorController) Lookup(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.LookupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.legislatorService.Lookup(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Legislator lookup", res))
}
