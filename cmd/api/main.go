package main

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"threadbox/internal/config"
	"threadbox/internal/handler"
	"threadbox/internal/middleware"
	"threadbox/internal/repository"
	"threadbox/internal/service"
	"threadbox/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (tree caching disabled)", err)
		redisClient = nil
	}

	hub := ws.NewHub()
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, hub, cfg)
	handlers := handler.NewHandlers(services, hub)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	comments := v1.Group("/comments")
	comments.Get("/", middleware.OptionalAuth(services.Auth), h.Comment.List)
	comments.Post("/", middleware.AuthRequired(services.Auth), h.Comment.Create)
	comments.Get("/my", middleware.AuthRequired(services.Auth), h.Comment.ListOwn)
	comments.Patch("/:commentId", middleware.AuthRequired(services.Auth), h.Comment.Update)
	comments.Delete("/:commentId", middleware.AuthRequired(services.Auth), h.Comment.Delete)
	comments.Patch("/:commentId/restore", middleware.AuthRequired(services.Auth), h.Comment.Restore)

	notifications := v1.Group("/notifications", middleware.AuthRequired(services.Auth))
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.ToggleRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	app.Use("/ws", h.WS.UpgradeRequired)
	app.Get("/ws/notifications", websocket.New(h.WS.Serve))
}
