package controller

import (
	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQuizController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type quizController struct {
	quizService service.IQuizService
}

func NewQuizController(quizService service.IQuizService) IQuizController {
	return &quizController{quizService: quizService}
}

func (c *quizController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/quiz/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Generate)
}

func (c *quizController) Generate(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.QuizRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.quizService.Generate(ctx.Context(), sessionID, &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Quiz generated", res))
}
