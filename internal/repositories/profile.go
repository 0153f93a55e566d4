package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillbridge/readiness-api/internal/models"
)

type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	FindByUUID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateResumePath(ctx context.Context, id uuid.UUID, path string) error
	UpdateResumeText(ctx context.Context, id uuid.UUID, text string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Upsert inserts or updates by uuid. An empty ResumePath keeps the stored path
// and cached text; a new path resets the cached text.
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	columns := []string{
		"full_name", "target_role", "college_year", "cgpa",
		"experience", "job_description", "skills", "updated_at",
	}
	if profile.ResumePath != "" {
		profile.ResumeText = ""
		columns = append(columns, "resume_path", "resume_text")
	}

	profile.UpdatedAt = time.Now()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uuid"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) FindByUUID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("uuid = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &profile, nil
}

// UpdateResumePath links a freshly uploaded file and drops the stale cached text.
func (r *profileRepository) UpdateResumePath(ctx context.Context, id uuid.UUID, path string) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("uuid = ?", id).
		Updates(map[string]interface{}{
			"resume_path": path,
			"resume_text": "",
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update resume path: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}

	return nil
}

func (r *profileRepository) UpdateResumeText(ctx context.Context, id uuid.UUID, text string) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("uuid = ?", id).
		Update("resume_text", text)

	if result.Error != nil {
		return fmt.Errorf("failed to update resume text: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}

	return nil
}
