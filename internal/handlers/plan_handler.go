package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/services"
	"skillbridge/readiness-api/pkg/apperror"
)

type PlanHandler struct {
	plans services.PlanService
}

func NewPlanHandler(plans services.PlanService) *PlanHandler {
	return &PlanHandler{
		plans: plans,
	}
}

func planResponse(plan *models.Plan, day int) fiber.Map {
	return fiber.Map{
		"success": true,
		"plan":    plan,
		"stats":   services.ComputeStats(plan, day),
	}
}

// HandleGetPlan handles GET /profiles/:uuid/plan?day=N. The plan row is
// created on first access.
func (h *PlanHandler) HandleGetPlan(c *fiber.Ctx) error {
	id, err := profileIDParam(c)
	if err != nil {
		return err
	}

	plan, err := h.plans.GetOrCreate(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(planResponse(plan, c.QueryInt("day", plan.CurrentDay)))
}

// HandleGeneratePlan handles POST /profiles/:uuid/plan/generate
func (h *PlanHandler) HandleGeneratePlan(c *fiber.Ctx) error {
	id, err := profileIDParam(c)
	if err != nil {
		return err
	}

	plan, err := h.plans.GenerateForProfile(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(planResponse(plan, plan.CurrentDay))
}

// HandleUpdateProgress handles PATCH /progress with {uuid, day, completedTasks}.
func (h *PlanHandler) HandleUpdateProgress(c *fiber.Ctx) error {
	var req models.ProgressUpdateRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	if err := validateStruct(req); err != nil {
		return err
	}

	day, err := wholeDay(*req.Day)
	if err != nil {
		return err
	}

	id, err := parseProfileID(req.UUID)
	if err != nil {
		return err
	}

	plan, err := h.plans.UpdateDayProgress(c.UserContext(), id, day, *req.CompletedTasks)
	if err != nil {
		return err
	}

	return c.JSON(planResponse(plan, day))
}

// HandleSetCurrentDay handles PUT /plan/current-day with {uuid, day}.
func (h *PlanHandler) HandleSetCurrentDay(c *fiber.Ctx) error {
	var req models.CurrentDayRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return apperror.BadRequest("Invalid payload")
	}

	if err := validateStruct(req); err != nil {
		return err
	}

	day, err := wholeDay(*req.Day)
	if err != nil {
		return err
	}

	id, err := parseProfileID(req.UUID)
	if err != nil {
		return err
	}

	if err := h.plans.SetCurrentDay(c.UserContext(), id, day); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"current_day": day,
	})
}

// wholeDay accepts 3 and 3.0 but not 3.5.
func wholeDay(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, apperror.BadRequest("Invalid payload: day must be a whole number")
	}
	return int(v), nil
}
