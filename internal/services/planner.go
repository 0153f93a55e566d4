package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/repositories"
	"skillbridge/readiness-api/pkg/apperror"
)

const (
	planTemperature = 0.7
	// Compare-and-set attempts before a progress write gives up.
	progressWriteAttempts = 3
)

var (
	errPlanNotFound     = apperror.NotFound("Plan not found")
	errProgressConflict = apperror.Conflict("Progress update conflict, retry required")
)

type PlanService interface {
	// GetOrCreate returns the profile's plan, inserting an empty one on first access.
	GetOrCreate(ctx context.Context, profileID uuid.UUID) (*models.Plan, error)
	// GeneratePlan asks the model for 30 days of tasks and overwrites plan_data.
	GeneratePlan(ctx context.Context, profileID uuid.UUID, analysis *models.Analysis, targetRole string) (*models.Plan, error)
	// GenerateForProfile runs GeneratePlan from the profile's latest analysis.
	GenerateForProfile(ctx context.Context, profileID uuid.UUID) (*models.Plan, error)
	// UpdateDayProgress replaces one day's completion flags, leaving other days untouched.
	UpdateDayProgress(ctx context.Context, profileID uuid.UUID, day int, completed []bool) (*models.Plan, error)
	SetCurrentDay(ctx context.Context, profileID uuid.UUID, day int) error
}

type planService struct {
	profileRepo  repositories.ProfileRepository
	analysisRepo repositories.AnalysisRepository
	planRepo     repositories.PlanRepository
	gemini       GeminiService
	prompts      *PromptBuilder
	maxRetries   int
	log          *slog.Logger
}

func NewPlanService(
	profileRepo repositories.ProfileRepository,
	analysisRepo repositories.AnalysisRepository,
	planRepo repositories.PlanRepository,
	gemini GeminiService,
	maxRetries int,
) PlanService {
	return &planService{
		profileRepo:  profileRepo,
		analysisRepo: analysisRepo,
		planRepo:     planRepo,
		gemini:       gemini,
		prompts:      NewPromptBuilder(),
		maxRetries:   maxRetries,
		log:          slog.With("component", "planner"),
	}
}

func (s *planService) GetOrCreate(ctx context.Context, profileID uuid.UUID) (*models.Plan, error) {
	plan, err := s.planRepo.FindByProfile(ctx, profileID)
	if err == nil {
		return plan, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperror.Internal("Failed to load plan", err)
	}

	if _, err := s.profileRepo.FindByUUID(ctx, profileID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal("Failed to load profile", err)
	}

	if err := s.planRepo.CreateIfAbsent(ctx, models.NewPlan(profileID)); err != nil {
		s.log.Error("Plan creation failed", "profile", profileID, "error", err)
		return nil, apperror.Internal("Failed to create plan", err)
	}

	// Re-read so a concurrent first writer's row is the one returned
	plan, err = s.planRepo.FindByProfile(ctx, profileID)
	if err != nil {
		return nil, apperror.Internal("Failed to load plan", err)
	}

	s.log.Info("📝 Plan created", "profile", profileID)
	return plan, nil
}

func (s *planService) GeneratePlan(ctx context.Context, profileID uuid.UUID, analysis *models.Analysis, targetRole string) (*models.Plan, error) {
	if s.gemini == nil {
		return nil, ErrMissingAPIKey
	}
	if analysis == nil {
		return nil, apperror.NotFound("No analysis found")
	}

	plan, err := s.GetOrCreate(ctx, profileID)
	if err != nil {
		return nil, err
	}

	prompt := s.prompts.BuildPlanPrompt(PlanInput{
		Role:       targetRole,
		Summary:    analysis.Summary,
		Strengths:  analysis.Strengths.Data(),
		Weaknesses: analysis.Weaknesses.Data(),
		Gaps:       analysis.SkillGaps.Data(),
	})

	s.log.Info("🗓️ Generating plan", "profile", profileID, "role", targetRole)

	raw, err := s.gemini.GenerateJSONWithRetry(ctx, prompt, planTemperature, s.maxRetries)
	if err != nil {
		s.log.Error("Model plan generation failed", "profile", profileID, "error", err)
		return nil, apperror.BadGateway(err.Error(), err)
	}

	days, err := DecodePlan(raw)
	if err != nil {
		s.log.Warn("Rejected plan response", "profile", profileID, "error", err)
		return nil, apperror.BadGateway("Invalid plan format", err)
	}

	if err := s.planRepo.UpdatePlanData(ctx, profileID, days); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errPlanNotFound
		}
		return nil, apperror.Internal("Failed to save plan", err)
	}

	plan.PlanData = datatypes.NewJSONType(days)
	s.log.Info("✅ Plan saved", "profile", profileID, "days", len(days))
	return plan, nil
}

func (s *planService) GenerateForProfile(ctx context.Context, profileID uuid.UUID) (*models.Plan, error) {
	profile, err := s.profileRepo.FindByUUID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal("Failed to load profile", err)
	}

	analysis, err := s.analysisRepo.FindLatestByProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("No analysis found")
		}
		return nil, apperror.Internal("Failed to load analysis", err)
	}

	return s.GeneratePlan(ctx, profileID, analysis, profile.TargetRole)
}

func (s *planService) UpdateDayProgress(ctx context.Context, profileID uuid.UUID, day int, completed []bool) (*models.Plan, error) {
	if err := validateDay(day); err != nil {
		return nil, err
	}
	if completed == nil {
		return nil, apperror.BadRequest("completedTasks must be a list")
	}

	for attempt := 1; attempt <= progressWriteAttempts; attempt++ {
		plan, err := s.planRepo.FindByProfile(ctx, profileID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, errPlanNotFound
			}
			return nil, apperror.Internal("Failed to save progress", err)
		}

		merged := plan.ProgressMap().WithDay(day, completed)

		saved, err := s.planRepo.SaveProgress(ctx, profileID, merged, plan.Version)
		if err != nil {
			s.log.Error("Progress update failed", "profile", profileID, "day", day, "error", err)
			return nil, apperror.Internal("Failed to save progress", err)
		}
		if saved {
			plan.Progress = datatypes.NewJSONType(merged)
			plan.Version++
			return plan, nil
		}

		s.log.Debug("Progress write lost a race, retrying", "profile", profileID, "day", day, "attempt", attempt)
	}

	s.log.Warn("Progress update conflict", "profile", profileID, "day", day)
	return nil, errProgressConflict
}

func (s *planService) SetCurrentDay(ctx context.Context, profileID uuid.UUID, day int) error {
	if err := validateDay(day); err != nil {
		return err
	}

	if err := s.planRepo.UpdateCurrentDay(ctx, profileID, day); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return errPlanNotFound
		}
		return apperror.Internal("Failed to save current day", err)
	}
	return nil
}

func validateDay(day int) error {
	if day < models.FirstPlanDay || day > models.PlanDays {
		return apperror.BadRequest(fmt.Sprintf("Day must be between %d and %d", models.FirstPlanDay, models.PlanDays))
	}
	return nil
}
