package handlers_test

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"skillbridge/readiness-api/internal/models"
	"skillbridge/readiness-api/internal/services"
)

type MockOnboarding struct {
	mock.Mock
}

func (m *MockOnboarding) Onboard(ctx context.Context, req models.OnboardRequest) (*services.OnboardResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OnboardResult), args.Error(1)
}

func (m *MockOnboarding) GetProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockOnboarding) Dashboard(ctx context.Context, profileID uuid.UUID) (*services.Dashboard, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Dashboard), args.Error(1)
}

type MockResume struct {
	mock.Mock
}

func (m *MockResume) Upload(ctx context.Context, profileID uuid.UUID, file *multipart.FileHeader) (*models.UploadResponse, error) {
	args := m.Called(ctx, profileID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadResponse), args.Error(1)
}

func (m *MockResume) ResolveText(ctx context.Context, profile *models.Profile) string {
	return m.Called(ctx, profile).String(0)
}

type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, profileID uuid.UUID) (*models.Analysis, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func (m *MockAnalyzer) Latest(ctx context.Context, profileID uuid.UUID) (*models.Analysis, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

type MockPlans struct {
	mock.Mock
}

func (m *MockPlans) GetOrCreate(ctx context.Context, profileID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlans) GeneratePlan(ctx context.Context, profileID uuid.UUID, analysis *models.Analysis, targetRole string) (*models.Plan, error) {
	args := m.Called(ctx, profileID, analysis, targetRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlans) GenerateForProfile(ctx context.Context, profileID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlans) UpdateDayProgress(ctx context.Context, profileID uuid.UUID, day int, completed []bool) (*models.Plan, error) {
	args := m.Called(ctx, profileID, day, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlans) SetCurrentDay(ctx context.Context, profileID uuid.UUID, day int) error {
	return m.Called(ctx, profileID, day).Error(0)
}
