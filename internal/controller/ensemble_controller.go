package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEnsembleController interface {
	RegisterRoutes(r fiber.Router)
	Decode(ctx *fiber.Ctx) error
}

type ensembleController struct {
	ensembleService service.IEnsembleService
}

func NewEnsembleController(ensembleService service.IEnsembleService) IEnsembleController {
	return &ensembleController{ensembleService: ensembleService}
}

func (c *ensembleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ensemble/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Decode)
}

func (c *ensembleController) Decode(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.EnsembleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ensembleService.Decode(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Ensemble analysis", res))
}
