package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Profile  *ProfileHandler
	Upload   *UploadHandler
	Analysis *AnalysisHandler
	Plan     *PlanHandler
}

// SetupRoutes mounts the API under /api/v1. PATCH /api/progress is kept at
// its unversioned path for existing clients.
func SetupRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/onboard", h.Profile.HandleOnboard)
	api.Post("/upload-resume", h.Upload.HandleUpload)

	profiles := api.Group("/profiles/:uuid")
	profiles.Get("", h.Profile.HandleGetProfile)
	profiles.Get("/dashboard", h.Profile.HandleDashboard)
	profiles.Post("/analysis", h.Analysis.HandleAnalyze)
	profiles.Get("/analysis", h.Analysis.HandleLatest)
	profiles.Get("/plan", h.Plan.HandleGetPlan)
	profiles.Post("/plan/generate", h.Plan.HandleGeneratePlan)

	api.Patch("/progress", h.Plan.HandleUpdateProgress)
	api.Put("/plan/current-day", h.Plan.HandleSetCurrentDay)
	app.Patch("/api/progress", h.Plan.HandleUpdateProgress)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Career Readiness API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/onboard",
				"POST /api/v1/upload-resume",
				"GET /api/v1/profiles/:uuid",
				"GET /api/v1/profiles/:uuid/dashboard",
				"POST /api/v1/profiles/:uuid/analysis",
				"GET /api/v1/profiles/:uuid/analysis",
				"GET /api/v1/profiles/:uuid/plan",
				"POST /api/v1/profiles/:uuid/plan/generate",
				"PATCH /api/v1/progress",
				"PUT /api/v1/plan/current-day",
				"PATCH /api/progress",
			},
		})
	})
}
