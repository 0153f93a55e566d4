package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skillbridge/readiness-api/internal/models"
)

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
	FindLatestByProfile(ctx context.Context, profileUUID uuid.UUID) (*models.Analysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindLatestByProfile(ctx context.Context, profileUUID uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.db.WithContext(ctx).
		Where("profile_uuid = ?", profileUUID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis for profile %s: %w", profileUUID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	return &analysis, nil
}
