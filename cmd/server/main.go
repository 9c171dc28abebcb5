package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/localnerve/agenthub/internal/config"
	"github.com/localnerve/agenthub/internal/database"
	"github.com/localnerve/agenthub/internal/handlers"
	"github.com/localnerve/agenthub/internal/middleware"
	"github.com/localnerve/agenthub/internal/services"
	"github.com/localnerve/agenthub/internal/utils"

	_ "github.com/localnerve/agenthub/docs/api" // Swagger docs
)

// @title AgentHub API
// @version 1.0.0
// @description Multi-tenant chat agent platform backend
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/agenthub
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("No .env file loaded: %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Identity provider and completion engine clients
	identity, err := services.NewIdentityVerifier(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}
	completion := services.NewCompletionClient(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          utils.AppErrorHandler,
		BodyLimit:             services.MaxFileSize + 1024*1024,
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())
	app.Use(middleware.RequestID())

	// Prometheus metrics
	prometheus := fiberprometheus.New("agenthub")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	authHandler := &handlers.AuthHandler{DB: db, Provider: identity}
	projectHandler := &handlers.ProjectHandler{DB: db}
	chatHandler := &handlers.ChatHandler{
		DB:   db,
		Chat: &services.ChatService{DB: db, Completion: completion},
	}
	fileHandler := &handlers.FileHandler{DB: db}

	// Liveness
	app.Get("/", healthHandler.Root)

	// API routes under /api
	api := app.Group("/api")
	api.Get("/health", healthHandler.Health)

	// Auth routes (no token required)
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.Auth(identity), authHandler.Me)

	// Project routes
	projects := api.Group("/projects", middleware.Auth(identity))
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.Get)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Post("/:id/files", fileHandler.Upload)
	projects.Get("/:id/files", fileHandler.List)
	projects.Delete("/:id/files/:fid", fileHandler.Delete)

	// Chat routes; completions are rate limited per client
	chat := api.Group("/chat", middleware.Auth(identity))
	chat.Post("/:id", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
	}), chatHandler.Post)
	chat.Get("/:id/history", chatHandler.History)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
