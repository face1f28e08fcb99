package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/leap-ai/toonify-backend/internal/config"
	"github.com/leap-ai/toonify-backend/internal/handler"
	"github.com/leap-ai/toonify-backend/internal/middleware"
	"github.com/leap-ai/toonify-backend/internal/models"
	"github.com/leap-ai/toonify-backend/internal/plans"
	"github.com/leap-ai/toonify-backend/internal/repository"
	"github.com/leap-ai/toonify-backend/internal/service"
	"github.com/leap-ai/toonify-backend/pkg/database"
	"github.com/leap-ai/toonify-backend/pkg/email"
	"github.com/leap-ai/toonify-backend/pkg/logger"
	"github.com/leap-ai/toonify-backend/pkg/storage"
	"github.com/leap-ai/toonify-backend/pkg/stylize"
	"github.com/leap-ai/toonify-backend/pkg/utils"
)

func main() {
	// Load .env (optional outside development)
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	zapLog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	// Initialize database
	db := database.NewDatabase(cfg.DatabaseURL)

	// Run migrations
	if err := db.AutoMigrate(
		&models.User{},
		&models.CreditTransaction{},
		&models.Payment{},
		&models.Generation{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	generationRepo := repository.NewGenerationRepository(db)

	// Storage
	r2Storage, err := storage.NewR2Storage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}

	// External services
	emailService := email.NewEmailService(cfg.Resend.APIKey, cfg.Resend.FromAddress, cfg.Resend.FromName, zapLog)
	falClient := stylize.NewFalClient(cfg.FalAPIKey)

	// Plan catalog
	catalog := plans.Default()

	// Services
	authService := service.NewAuthService(userRepo, emailService, cfg.JWTSecret)
	userService := service.NewUserService(userRepo, r2Storage)
	creditService := service.NewCreditService(ledgerRepo)
	webhookService := service.NewWebhookService(ledgerRepo, userRepo, catalog, emailService, zapLog)
	generationService := service.NewGenerationService(generationRepo, creditService, falClient, zapLog)
	subscriptionService := service.NewSubscriptionService(userRepo, catalog)
	paymentService := service.NewPaymentService(paymentRepo)

	// Validator
	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService)
	creditHandler := handler.NewCreditHandler(creditService, validator)
	generationHandler := handler.NewGenerationHandler(generationService, validator)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	paymentHandler := handler.NewPaymentHandler(webhookService, paymentService, cfg.RevenueCatSecret)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// RevenueCat webhook (public; authenticated by shared secret header)
	api.Post("/payments/webhook", paymentHandler.HandleRevenueCatWebhook)

	// Protected routes
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Post("/profile-picture", userHandler.UploadProfilePicture)

		credits := api.Group("/credits")
		credits.Get("/balance", creditHandler.GetBalance)
		credits.Get("/history", creditHandler.GetHistory)
		credits.Post("/purchase", creditHandler.PurchaseCredits)
		credits.Post("/add", creditHandler.AddCredits)

		generation := api.Group("/generation")
		generation.Post("/create", generationHandler.CreateGeneration)
		generation.Get("/history", generationHandler.GetGenerationHistory)

		subscription := api.Group("/subscription")
		subscription.Get("/plans", subscriptionHandler.GetPlans)
		subscription.Get("/pro", subscriptionHandler.GetProStatus)
		subscription.Get("/balance", creditHandler.GetBalance)

		payments := api.Group("/payments")
		payments.Get("/history", paymentHandler.GetPaymentHistory)
	}

	log.Fatal(app.Listen(":" + cfg.Port))
}
