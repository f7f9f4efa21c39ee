package server

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"assessform-client/internal/config"
	"assessform-client/internal/controller"
	"assessform-client/internal/pkg/serverutils"
	"assessform-client/internal/repository/filestore"
)

// Server is the development stand-in for the remote questionnaire
// collaborator: the same wire contract the production deployment exposes,
// backed by a local data directory.
type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, PUT, OPTIONS",
		ExposeHeaders: "Content-Length, Content-Type",
	}))

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Static
	app.Static("/files", cfg.App.DataDir)

	registerRoutes(app, cfg)

	return &Server{
		app: app,
		cfg: cfg,
	}
}

func registerRoutes(app *fiber.App, cfg *config.Config) {
	store := filestore.NewResponseFileStore(cfg.App.DataDir)

	controller.NewConfigController().RegisterRoutes(app)
	controller.NewResponseController(store).RegisterRoutes(app)
	controller.NewUploadController(store).RegisterRoutes(app)
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Mock collaborator is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}
