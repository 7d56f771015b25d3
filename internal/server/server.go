package server

import (
	"log"

	"policy-compass-be/internal/bootstrap"
	"policy-compass-be/internal/config"
	"policy-compass-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, enough for bill PDFs
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Generated reports are also reachable without the download endpoint
	app.Static("/reports", "./"+cfg.App.ReportDir)

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.SessionController.RegisterRoutes(api)
	c.SettingsController.RegisterRoutes(api)

	c.DocumentController.RegisterRoutes(api)
	c.DecoderController.RegisterRoutes(api)
	c.CompareController.RegisterRoutes(api)
	c.ChatController.RegisterRoutes(api)
	c.EnsembleController.RegisterRoutes(api)

	c.SimulatorController.RegisterRoutes(api)
	c.LegislatorController.RegisterRoutes(api)
	c.QuizController.RegisterRoutes(api)
	c.VoiceController.RegisterRoutes(api)
	c.ExportController.RegisterRoutes(api)

	c.ActivityFeedHandler.RegisterRoutes(api)
}
