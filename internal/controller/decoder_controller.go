package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDecoderController interface {
	RegisterRoutes(r fiber.Router)
	Decode(ctx *fiber.Ctx) error
}

type decoderController struct {
	decoderService service.IDecoderService
}

func NewDecoderController(decoderService service.IDecoderService) IDecoderController {
	return &decoderController{decoderService: decoderService}
}

func (c *decoderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/decoder/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Decode)
}

func (c *decoderController) Decode(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.DecodeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.decoderService.Decode(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document analyzed", res))
}
