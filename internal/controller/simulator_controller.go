package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISimulatorController interface {
	RegisterRoutes(r fiber.Router)
	Simulate(ctx *fiber.Ctx) error
}

type simulatorController struct {
	simulatorService service.ISimulatorService
}

func NewSimulatorController(simulatorService service.ISimulatorService) ISimulatorController {
	return &simulatorController{simulatorService: simulatorService}
}

func (c *simulatorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/simulator/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Simulate)
}

func (c *simulatorController) Simulate(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.SimulateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.simulatorService.Simulate(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Impact simulated", res))
}
