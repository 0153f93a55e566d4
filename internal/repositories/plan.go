package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillbridge/readiness-api/internal/models"
)

type PlanRepository interface {
	FindByProfile(ctx context.Context, profileUUID uuid.UUID) (*models.Plan, error)
	CreateIfAbsent(ctx context.Context, plan *models.Plan) error
	UpdatePlanData(ctx context.Context, profileUUID uuid.UUID, days []models.PlanDay) error
	// SaveProgress writes progress only if the row still has expectedVersion.
	// It reports false when another writer got there first.
	SaveProgress(ctx context.Context, profileUUID uuid.UUID, progress models.Progress, expectedVersion int) (bool, error)
	UpdateCurrentDay(ctx context.Context, profileUUID uuid.UUID, day int) error
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) FindByProfile(ctx context.Context, profileUUID uuid.UUID) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).Where("profile_uuid = ?", profileUUID).First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("plan for profile %s: %w", profileUUID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	return &plan, nil
}

// CreateIfAbsent relies on the unique index on profile_uuid; a concurrent
// insert for the same profile is silently dropped.
func (r *planRepository) CreateIfAbsent(ctx context.Context, plan *models.Plan) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_uuid"}},
			DoNothing: true,
		}).
		Create(plan).Error
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	return nil
}

func (r *planRepository) UpdatePlanData(ctx context.Context, profileUUID uuid.UUID, days []models.PlanDay) error {
	result := r.db.WithContext(ctx).Model(&models.Plan{}).
		Where("profile_uuid = ?", profileUUID).
		Updates(map[string]interface{}{
			"plan_data":  datatypes.NewJSONType(days),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update plan data: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("plan for profile %s: %w", profileUUID, ErrNotFound)
	}

	return nil
}

func (r *planRepository) SaveProgress(ctx context.Context, profileUUID uuid.UUID, progress models.Progress, expectedVersion int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Plan{}).
		Where("profile_uuid = ? AND version = ?", profileUUID, expectedVersion).
		Updates(map[string]interface{}{
			"progress":   datatypes.NewJSONType(progress),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to save progress: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *planRepository) UpdateCurrentDay(ctx context.Context, profileUUID uuid.UUID, day int) error {
	result := r.db.WithContext(ctx).Model(&models.Plan{}).
		Where("profile_uuid = ?", profileUUID).
		Updates(map[string]interface{}{
			"current_day": day,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update current day: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("plan for profile %s: %w", profileUUID, ErrNotFound)
	}

	return nil
}
