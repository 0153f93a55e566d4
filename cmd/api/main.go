package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"skillbridge/readiness-api/internal/config"
	"skillbridge/readiness-api/internal/handlers"
	"skillbridge/readiness-api/internal/repositories"
	"skillbridge/readiness-api/internal/services"
	"skillbridge/readiness-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Setup(cfg.Server.Env, cfg.Server.LogLevel)
	slog.Info("✅ Config loaded successfully", "env", cfg.Server.Env)

	ctx := context.Background()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		fatal("❌ Failed to initialize database", err)
	}

	// Initialize repositories
	profileRepo := repositories.NewProfileRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	planRepo := repositories.NewPlanRepository(db)
	slog.Info("✅ Repositories initialized successfully")

	// Initialize services
	storageService, err := services.NewStorageService(ctx, cfg)
	if err != nil {
		fatal("❌ Failed to initialize storage", err)
	}

	pdfParser := services.NewPDFParserService()

	// Without an API key the server still serves profiles and plans; analysis
	// and plan generation answer with a configuration error.
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
		if err != nil {
			fatal("❌ Failed to initialize Gemini AI", err)
		}
		slog.Info("✅ Gemini AI initialized successfully", "model", cfg.Gemini.Model)
	} else {
		slog.Warn("GEMINI_API_KEY is not set, analysis and plan generation are disabled")
	}

	var roleContext services.RoleContextRetriever
	if cfg.Qdrant.URL != "" && geminiService != nil {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			fatal("❌ Failed to initialize Qdrant", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			fatal("❌ Failed to initialize Qdrant collection", err)
		}
		roleContext = services.NewRoleContextRetriever(geminiService, qdrantService, 0)
		slog.Info("✅ Qdrant initialized successfully", "collection", cfg.Qdrant.Collection)
	}

	resumeService := services.NewResumeService(profileRepo, storageService, pdfParser, cfg.Storage.MaxFileSize)
	analyzerService := services.NewAnalyzerService(
		profileRepo,
		analysisRepo,
		resumeService,
		geminiService,
		roleContext,
		cfg.Gemini.RetryMaxAttempts,
	)
	planService := services.NewPlanService(
		profileRepo,
		analysisRepo,
		planRepo,
		geminiService,
		cfg.Gemini.RetryMaxAttempts,
	)
	onboardingService := services.NewOnboardingService(
		profileRepo,
		analysisRepo,
		planRepo,
		planService,
		analyzerService,
	)
	slog.Info("✅ Services initialized successfully")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Career Readiness API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	if cfg.Storage.Driver == config.StorageDriverLocal {
		app.Static("/uploads", cfg.Storage.UploadPath)
	}

	handlers.SetupRoutes(app, handlers.Handlers{
		Profile:  handlers.NewProfileHandler(onboardingService),
		Upload:   handlers.NewUploadHandler(resumeService),
		Analysis: handlers.NewAnalysisHandler(analyzerService),
		Plan:     handlers.NewPlanHandler(planService),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			slog.Error("❌ Server forced to shutdown", "error", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Info("🚀 Server starting", "addr", addr)

	if err := app.Listen(addr); err != nil {
		fatal("❌ Failed to start server", err)
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
