package controller

import (
	"io"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	UploadText(ctx *fiber.Ctx) error
	UploadPDF(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{documentService: documentService}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.UploadText)
	h.Post("upload", c.UploadPDF)
	h.Get("", c.List)
}

func (c *documentController) UploadText(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.UploadTextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.UploadText(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Document stored", res))
}

func (c *documentController) UploadPDF(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "PDF file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.documentService.UploadPDF(ctx.Context(), sessionID, fileHeader.Filename, data)
	if err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(serverutils.ErrorResponse(422, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Document uploaded", res))
}

func (c *documentController) List(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	res, err := c.documentService.List(ctx.Context(), sessionID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session documents", res))
}
