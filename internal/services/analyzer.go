package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/repositories"
	"skillbridge/readiness-api/pkg/apperror"
)

const analysisTemperature = 0.2

var ErrMissingAPIKey = apperror.Internal("Server configuration error (missing API key)", nil)

type AnalyzerService interface {
	// Analyze evaluates the profile and appends a new analysis row.
	Analyze(ctx context.Context, profileID uuid.UUID) (*models.Analysis, error)
	Latest(ctx context.Context, profileID uuid.UUID) (*models.Analysis, error)
}

type analyzerService struct {
	profileRepo  repositories.ProfileRepository
	analysisRepo repositories.AnalysisRepository
	resume       ResumeService
	gemini       GeminiService
	roleContext  RoleContextRetriever
	prompts      *PromptBuilder
	maxRetries   int
	log          *slog.Logger
}

// NewAnalyzerService accepts a nil gemini when no API key is configured, and
// a nil roleContext when no vector store is configured.
func NewAnalyzerService(
	profileRepo repositories.ProfileRepository,
	analysisRepo repositories.AnalysisRepository,
	resume ResumeService,
	gemini GeminiService,
	roleContext RoleContextRetriever,
	maxRetries int,
) AnalyzerService {
	return &analyzerService{
		profileRepo:  profileRepo,
		analysisRepo: analysisRepo,
		resume:       resume,
		gemini:       gemini,
		roleContext:  roleContext,
		prompts:      NewPromptBuilder(),
		maxRetries:   maxRetries,
		log:          slog.With("component", "analyzer"),
	}
}

func (s *analyzerService) Analyze(ctx context.Context, profileID uuid.UUID) (*models.Analysis, error) {
	profile, err := s.profileRepo.FindByUUID(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal("Failed to load profile", err)
	}

	if s.gemini == nil {
		return nil, ErrMissingAPIKey
	}

	role := strings.TrimSpace(profile.TargetRole)
	if role == "" {
		role = DefaultTargetRole
	}
	jobDescription := strings.TrimSpace(profile.JobDescription)

	input := ReadinessInput{
		Role:           role,
		Skills:         profile.SkillList(),
		JobDescription: jobDescription,
		ResumeText:     s.resume.ResolveText(ctx, profile),
	}

	if s.roleContext != nil {
		refs, err := s.roleContext.Retrieve(ctx, role)
		if err != nil {
			s.log.Warn("Role reference lookup failed, continuing without it", "role", role, "error", err)
		}
		input.RoleContext = refs
	}

	s.log.Info("🔍 Analyzing profile", "profile", profileID, "role", role, "has_jd", jobDescription != "")

	raw, err := s.gemini.GenerateJSONWithRetry(ctx, s.prompts.BuildReadinessPrompt(input), analysisTemperature, s.maxRetries)
	if err != nil {
		s.log.Error("Model analysis failed", "profile", profileID, "error", err)
		return nil, apperror.BadGateway(err.Error(), err)
	}

	result, err := DecodeAnalysis(raw)
	if err != nil {
		s.log.Warn("Rejected analysis response", "profile", profileID, "error", err)
		return nil, apperror.BadGateway("Invalid AI response format", err)
	}

	analysis := result.ToModel(jobDescription != "")
	analysis.ID = uuid.New()
	analysis.ProfileUUID = profileID

	if err := s.analysisRepo.Create(ctx, analysis); err != nil {
		s.log.Error("Failed to save analysis", "profile", profileID, "error", err)
		return nil, apperror.Internal("Failed to save analysis", err)
	}

	s.log.Info("✅ Analysis saved", "profile", profileID, "score", analysis.ReadinessScore)
	return analysis, nil
}

func (s *analyzerService) Latest(ctx context.Context, profileID uuid.UUID) (*models.Analysis, error) {
	analysis, err := s.analysisRepo.FindLatestByProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("No analysis found")
		}
		return nil, apperror.Internal("Failed to load analysis", err)
	}
	return analysis, nil
}
