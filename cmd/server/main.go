package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"zezim/internal/config"
	"zezim/internal/handlers"
	"zezim/internal/llm"
	"zezim/internal/logging"
	"zezim/internal/middleware"
	"zezim/internal/services"
	"zezim/pkg/auth"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting Zezim server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, Model: %s)", cfg.Port, cfg.Model)

	if cfg.OpenRouterAPIKey == "" {
		log.Fatal("❌ OPENROUTER_API_KEY environment variable is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable is required. Generate with: openssl rand -hex 32")
	}

	adminAuth, err := auth.NewAdminAuth(cfg.JWTSecret, cfg.AdminUser, cfg.AdminPassword, cfg.AdminSessionExpiry)
	if err != nil {
		log.Fatalf("❌ Failed to initialize admin auth: %v", err)
	}

	// Service wiring: document store -> settings -> conversations -> chat
	documents := services.NewDocumentStore()
	settings := services.NewSettingsService(documents)
	conversations := services.NewConversationService(settings, cfg.SessionTTL)
	provider := llm.NewOpenRouter(cfg.OpenRouterAPIKey, cfg.OpenRouterBaseURL, cfg.Referrer, cfg.AppTitle)
	chatService := services.NewChatService(provider, conversations, cfg)

	app := fiber.New(fiber.Config{
		AppName:      "Zezim v1.0",
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second, // completion calls dominate request latency
		BodyLimit:    16 * 1024 * 1024,  // context document uploads
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("zezim")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// CORS configuration with environment-based origins
	allowedOrigins := cfg.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: allowedOrigins != "*",
	}))

	app.Use(middleware.Session())
	app.Use(middleware.AdminContext(adminAuth))

	rateLimitConfig := middleware.LoadRateLimitConfig()
	log.Printf("🛡️  [RATE-LIMIT] Login=%d/%s, Chat=%d/%s",
		rateLimitConfig.LoginMax, rateLimitConfig.LoginExpiration,
		rateLimitConfig.ChatMax, rateLimitConfig.ChatExpiration,
	)

	// Handlers
	homeHandler := handlers.NewHomeHandler(settings)
	authHandler := handlers.NewAuthHandler(adminAuth, conversations, cfg.AdminSessionExpiry)
	adminHandler := handlers.NewAdminHandler(settings)
	chatHandler := handlers.NewChatHandler(chatService, conversations)

	// Routes
	app.Get("/", homeHandler.GetHome)
	app.Get("/health", handlers.Health)

	app.Post("/login", middleware.LoginRateLimiter(rateLimitConfig), authHandler.Login)
	app.Get("/logout", authHandler.Logout)

	app.Post("/config", middleware.RequireAdmin(), adminHandler.UpdateConfig)
	app.Delete("/api/documents/:id", middleware.RequireAdmin(), adminHandler.RemoveDocument)

	app.Post("/chat", middleware.ChatRateLimiter(rateLimitConfig), chatHandler.SendMessage)
	app.Post("/reset_chat", chatHandler.ResetChat)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
