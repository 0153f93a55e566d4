package handlers

import (
	"github.com/gofiber/fiber/v2"

	"skillbridge/readiness-api/internal/services"
)

type AnalysisHandler struct {
	analyzer services.AnalyzerService
}

func NewAnalysisHandler(analyzer services.AnalyzerService) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
	}
}

// HandleAnalyze handles POST /profiles/:uuid/analysis
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	id, err := profileIDParam(c)
	if err != nil {
		return err
	}

	analysis, err := h.analyzer.Analyze(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"analysis":       analysis,
		"ready_estimate": services.ReadyEstimate(analysis.ReadinessScore),
	})
}

// HandleLatest handles GET /profiles/:uuid/analysis
func (h *AnalysisHandler) HandleLatest(c *fiber.Ctx) error {
	id, err := profileIDParam(c)
	if err != nil {
		return err
	}

	analysis, err := h.analyzer.Latest(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"analysis":       analysis,
		"ready_estimate": services.ReadyEstimate(analysis.ReadinessScore),
	})
}
