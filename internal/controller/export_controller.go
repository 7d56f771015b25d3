package controller

import (
	"path/filepath"

	"policy-compass-be/internal/dto"
	"policy-compass-be/internal/pkg/serverutils"
	"policy-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IExportController interface {
	RegisterRoutes(r fiber.Router)
	Export(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type exportController struct {
	exportService service.IExportService
	reportDir     string
}

func NewExportController(exportService service.IExportService, reportDir string) IExportController {
	return &exportController{exportService: exportService, reportDir: reportDir}
}

func (c *exportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/export/v1")
	h.Use(serverutils.SessionMiddleware)
	h.Post("", c.Export)
	h.Get("download/:filename", c.Download)
}

func (c *exportController) Export(ctx *fiber.Ctx) error {
	sessionID := serverutils.SessionID(ctx)

	var req dto.ExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.exportService.Export(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Report exported", res))
}

func (c *exportController) Download(ctx *fiber.Ctx) error {
	// filepath.Base strips any traversal components from the parameter.
	filename := filepath.Base(ctx.Params("filename"))
	if filename == "." || filename == "/" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid report filename"))
	}
	return ctx.Download(filepath.Join(c.reportDir, filename))
}
