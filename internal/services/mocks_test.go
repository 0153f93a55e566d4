package services

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"skillbridge/readiness-api/internal/models"
)

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) FindByUUID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepo) UpdateResumePath(ctx context.Context, id uuid.UUID, path string) error {
	return m.Called(ctx, id, path).Error(0)
}

func (m *MockProfileRepo) UpdateResumeText(ctx context.Context, id uuid.UUID, text string) error {
	return m.Called(ctx, id, text).Error(0)
}

type MockAnalysisRepo struct {
	mock.Mock
}

func (m *MockAnalysisRepo) Create(ctx context.Context, analysis *models.Analysis) error {
	return m.Called(ctx, analysis).Error(0)
}

func (m *MockAnalysisRepo) FindLatestByProfile(ctx context.Context, profileUUID uuid.UUID) (*models.Analysis, error) {
	args := m.Called(ctx, profileUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) FindByProfile(ctx context.Context, profileUUID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, profileUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanRepo) CreateIfAbsent(ctx context.Context, plan *models.Plan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *MockPlanRepo) UpdatePlanData(ctx context.Context, profileUUID uuid.UUID, days []models.PlanDay) error {
	return m.Called(ctx, profileUUID, days).Error(0)
}

func (m *MockPlanRepo) SaveProgress(ctx context.Context, profileUUID uuid.UUID, progress models.Progress, expectedVersion int) (bool, error) {
	args := m.Called(ctx, profileUUID, progress, expectedVersion)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlanRepo) UpdateCurrentDay(ctx context.Context, profileUUID uuid.UUID, day int) error {
	return m.Called(ctx, profileUUID, day).Error(0)
}

type MockGemini struct {
	mock.Mock
}

func (m *MockGemini) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

func (m *MockGemini) GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockGemini) GenerateJSONWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	args := m.Called(ctx, prompt, temperature, maxRetries)
	return args.String(0), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, contentType string, data []byte) error {
	return m.Called(ctx, key, contentType, data).Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) PublicURL(key string) string {
	return m.Called(key).String(0)
}

type MockPDFParser struct {
	mock.Mock
}

func (m *MockPDFParser) ExtractText(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *MockPDFParser) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	args := m.Called(filePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PDFContent), args.Error(1)
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

type MockRoleContext struct {
	mock.Mock
}

func (m *MockRoleContext) Retrieve(ctx context.Context, role string) (string, error) {
	args := m.Called(ctx, role)
	return args.String(0), args.Error(1)
}

type MockQdrant struct {
	mock.Mock
}

func (m *MockQdrant) InitCollection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockQdrant) UpsertDocument(ctx context.Context, doc RoleGuideDocument, embedding []float32) error {
	return m.Called(ctx, doc, embedding).Error(0)
}

func (m *MockQdrant) SearchSimilar(ctx context.Context, queryEmbedding []float32, docType string, limit int) ([]SearchResult, error) {
	args := m.Called(ctx, queryEmbedding, docType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]SearchResult), args.Error(1)
}

func (m *MockQdrant) DeleteDocument(ctx context.Context, docID string) error {
	return m.Called(ctx, docID).Error(0)
}

type MockPlanService struct {
	mock.Mock
}

func (m *MockPlanService) GetOrCreate(ctx context.Context, profileID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanService) GeneratePlan(ctx context.Context, profileID uuid.UUID, analysis *models.Analysis, targetRole string) (*models.Plan, error) {
	args := m.Called(ctx, profileID, analysis, targetRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanService) GenerateForProfile(ctx context.Context, profileID uuid.UUID) (*models.Plan, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanService) UpdateDayProgress(ctx context.Context, profileID uuid.UUID, day int, completed []bool) (*models.Plan, error) {
	args := m.Called(ctx, profileID, day, completed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *MockPlanService) SetCurrentDay(ctx context.Context, profileID uuid.UUID, day int) error {
	return m.Called(ctx, profileID, day).Error(0)
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
