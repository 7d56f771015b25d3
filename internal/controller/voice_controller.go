package controller

import (
	"errors"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IVoiceController interface {
	RegisterRoutes(r fiber.Router)
	Synthesize(ctx *fiber.Ctx) error
}

type voiceController struct {
	voiceService service.IVoiceService
}

func NewVoiceController(voiceService service.IVoiceService) IVoiceController {
	return &voiceController{voiceService: voiceService}
}

func (c *voiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/voice/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Synthesize)
}

func (c *voiceController) Synthesize(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.VoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	audio, err := c.voiceService.Synthesize(ctx.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVoiceCredentials):
			return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Text-to-speech credentials are missing or invalid"))
		case errors.Is(err, service.ErrVoiceRateLimit):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.ErrorResponse(429, "Text-to-speech rate limit reached, try again shortly"))
		default:
			return err
		}
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	return ctx.Send(audio)
}
