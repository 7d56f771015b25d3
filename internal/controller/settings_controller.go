package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	Update(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type settingsController struct {
	settingsService service.ISettingsService
}

func NewSettingsController(settingsService service.ISettingsService) ISettingsController {
	return &settingsController{settingsService: settingsService}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Put("", c.Update)
	h.Get("", c.Show)
}

func (c *settingsController) Update(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.UpdateSettingsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.settingsService.Update(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Settings updated", res))
}

func (c *settingsController) Show(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	res, err := c.settingsService.Show(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current settings", res))
}
