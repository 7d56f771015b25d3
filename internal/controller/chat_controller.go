package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat reply", res))
}
