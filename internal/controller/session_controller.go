package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	ActivitySummary(ctx *fiber.Ctx) error
	ContentSummary(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type sessionController struct {
	trackerService service.ITrackerService
}

func NewSessionController(trackerService service.ITrackerService) ISessionController {
	return &sessionController{trackerService: trackerService}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create) // Unauthenticated: this is how a session starts
	h.Get("summary/activity", serverutils.SessionMiddleware, c.ActivitySummary)
	h.Get("summary/content", serverutils.SessionMiddleware, c.ContentSummary)
	h.Delete("", serverutils.SessionMiddleware, c.Clear)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.trackerService.CreateSession(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session created", res))
}

func (c *sessionController) ActivitySummary(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	summary := c.trackerService.ActivitySummary(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Activity summary", dto.SummaryResponse{Summary: summary}))
}

func (c *sessionController) ContentSummary(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	summary := c.trackerService.ContentSummary(sessionID)
	return ctx.JSON(serverutils.SuccessResponse("Content summary", dto.SummaryResponse{Summary: summary}))
}

func (c *sessionController) Clear(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	if err := c.trackerService.ClearSession(ctx.Context(), sessionID); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session cleared", nil))
}
