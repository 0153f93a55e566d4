package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/repositories"
	"skillbridge/readiness-api/pkg/apperror"
)

const (
	customRoleOption = "other"
	NoAnalysisYet    = "No analysis yet"
	NoPlanFound      = "No plan found"
)

type OnboardResult struct {
	Profile       *models.Profile  `json:"profile"`
	Plan          *models.Plan     `json:"plan,omitempty"`
	Analysis      *models.Analysis `json:"analysis,omitempty"`
	AnalysisError string           `json:"analysis_error,omitempty"`
}

type Dashboard struct {
	Profile         *models.Profile  `json:"profile"`
	Analysis        *models.Analysis `json:"analysis,omitempty"`
	AnalysisMessage string           `json:"analysis_message,omitempty"`
	ReadyEstimate   string           `json:"ready_estimate,omitempty"`
	Plan            *PlanStats       `json:"plan,omitempty"`
	PlanMessage     string           `json:"plan_message,omitempty"`
}

type OnboardingService interface {
	// Onboard upserts the profile, makes sure a plan row exists and runs a
	// first analysis. A failed analysis is reported in the result only.
	Onboard(ctx context.Context, req models.OnboardRequest) (*OnboardResult, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error)
	Dashboard(ctx context.Context, profileID uuid.UUID) (*Dashboard, error)
}

type onboardingService struct {
	profileRepo  repositories.ProfileRepository
	analysisRepo repositories.AnalysisRepository
	planRepo     repositories.PlanRepository
	plans        PlanService
	analyzer     AnalyzerService
	log          *slog.Logger
}

func NewOnboardingService(
	profileRepo repositories.ProfileRepository,
	analysisRepo repositories.AnalysisRepository,
	planRepo repositories.PlanRepository,
	plans PlanService,
	analyzer AnalyzerService,
) OnboardingService {
	return &onboardingService{
		profileRepo:  profileRepo,
		analysisRepo: analysisRepo,
		planRepo:     planRepo,
		plans:        plans,
		analyzer:     analyzer,
		log:          slog.With("component", "onboarding"),
	}
}

// ProfileFromRequest normalizes intake fields into a profile row.
func ProfileFromRequest(req models.OnboardRequest) (*models.Profile, error) {
	id, err := uuid.Parse(strings.TrimSpace(req.UUID))
	if err != nil || id == uuid.Nil {
		return nil, apperror.BadRequest("Missing or invalid uuid")
	}

	role := strings.TrimSpace(req.TargetRole)
	if role == "" || strings.EqualFold(role, customRoleOption) {
		role = strings.TrimSpace(req.CustomRole)
	}

	return &models.Profile{
		UUID:           id,
		FullName:       strings.TrimSpace(req.FullName),
		TargetRole:     role,
		CollegeYear:    strings.TrimSpace(req.CollegeYear),
		CGPA:           strings.TrimSpace(req.CGPA),
		Experience:     strings.TrimSpace(req.Experience),
		JobDescription: strings.TrimSpace(req.JobDescription),
		Skills:         datatypes.NewJSONType(ParseSkills(req.Skills)),
		ResumePath:     strings.TrimSpace(req.ResumePath),
	}, nil
}

// ParseSkills decodes a JSON list of skills. Malformed input yields an empty
// list; blanks and repeats are dropped.
func ParseSkills(raw string) []string {
	skills := []string{}
	if strings.TrimSpace(raw) == "" {
		return skills
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return skills
	}

	seen := make(map[string]bool, len(parsed))
	for _, s := range parsed {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	return skills
}

func (s *onboardingService) Onboard(ctx context.Context, req models.OnboardRequest) (*OnboardResult, error) {
	profile, err := ProfileFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		s.log.Error("Onboard upsert failed", "profile", profile.UUID, "error", err)
		return nil, apperror.Internal("Failed to save profile", err)
	}

	stored, err := s.profileRepo.FindByUUID(ctx, profile.UUID)
	if err != nil {
		return nil, apperror.Internal("Failed to load profile", err)
	}

	result := &OnboardResult{Profile: stored}

	// The plan row is also created lazily on first plan access.
	plan, err := s.plans.GetOrCreate(ctx, profile.UUID)
	if err != nil {
		s.log.Warn("Plan creation after onboard failed", "profile", profile.UUID, "error", err)
	} else {
		result.Plan = plan
	}

	analysis, err := s.analyzer.Analyze(ctx, profile.UUID)
	if err != nil {
		s.log.Warn("Auto-analysis after onboard failed", "profile", profile.UUID, "error", err)
		result.AnalysisError = apperror.From(err).Message
	} else {
		result.Analysis = analysis
	}

	s.log.Info("👋 Profile onboarded", "profile", profile.UUID, "role", stored.TargetRole)
	return result, nil
}

func (s *onboardingService) GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profileRepo.FindByUUID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal("Failed to load profile", err)
	}
	return profile, nil
}

func (s *onboardingService) Dashboard(ctx context.Context, profileID uuid.UUID) (*Dashboard, error) {
	profile, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Profile: profile}

	analysis, err := s.analysisRepo.FindLatestByProfile(ctx, profileID)
	switch {
	case err == nil:
		dash.Analysis = analysis
		dash.ReadyEstimate = ReadyEstimate(analysis.ReadinessScore)
	case errors.Is(err, repositories.ErrNotFound):
		dash.AnalysisMessage = NoAnalysisYet
	default:
		return nil, apperror.Internal("Failed to load analysis", err)
	}

	plan, err := s.planRepo.FindByProfile(ctx, profileID)
	switch {
	case err == nil && len(plan.Days()) > 0:
		stats := ComputeStats(plan, plan.CurrentDay)
		dash.Plan = &stats
	case err == nil, errors.Is(err, repositories.ErrNotFound):
		dash.PlanMessage = NoPlanFound
	default:
		return nil, apperror.Internal("Failed to load plan", err)
	}

	return dash, nil
}
