package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/services"
	"skillbridge/readiness-api/pkg/apperror"
)

type ProfileHandler struct {
	onboarding services.OnboardingService
}

func NewProfileHandler(onboarding services.OnboardingService) *ProfileHandler {
	return &ProfileHandler{
		onboarding: onboarding,
	}
}

// HandleOnboard handles POST /onboard. Accepts JSON or form bodies.
func (h *ProfileHandler) HandleOnboard(c *fiber.Ctx) error {
	var req models.OnboardRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request payload")
	}

	if err := validateStruct(req); err != nil {
		return err
	}

	result, err := h.onboarding.Onboard(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":        true,
		"profile":        result.Profile,
		"plan":           result.Plan,
		"analysis":       result.Analysis,
		"analysis_error": result.AnalysisError,
	})
}

// HandleGetProfile handles GET /profiles/:uuid
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	id, err := profileIDParam(c)
	if err != nil {
		return err
	}

	profile, err := h.onboarding.GetProfile(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

// HandleDashboard handles GET /profiles/:uuid/dashboard
func (h *ProfileHandler) HandleDashboard(c *fiber.Ctx) error {
	id, err := profileIDParam(c)
	if err != nil {
		return err
	}

	dash, err := h.onboarding.Dashboard(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"dashboard": dash,
	})
}
