package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SkillGap struct {
	Skill      string `json:"skill"`
	Percentage int    `json:"percentage"`
}

// Analysis rows are append-only; consumers read the most recent by CreatedAt.
type Analysis struct {
	ID              uuid.UUID                      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileUUID     uuid.UUID                      `gorm:"type:uuid;not null;index" json:"profile_uuid"`
	ReadinessScore  int                            `gorm:"not null" json:"readiness_score"`
	JDMatchScore    *int                           `gorm:"column:jd_match_score" json:"jd_match_score,omitempty"`
	Strengths       datatypes.JSONType[[]string]   `json:"strengths"`
	Weaknesses      datatypes.JSONType[[]string]   `json:"weaknesses"`
	SkillGaps       datatypes.JSONType[[]SkillGap] `json:"skill_gaps"`
	JDMissingSkills datatypes.JSONType[[]string]   `gorm:"column:jd_missing_skills" json:"jd_missing_skills"`
	Summary         string                         `gorm:"type:text" json:"summary"`
	CreatedAt       time.Time                      `gorm:"default:CURRENT_TIMESTAMP;index" json:"created_at"`

	Profile Profile `gorm:"foreignKey:ProfileUUID;references:UUID" json:"-"`
}

func (Analysis) TableName() string {
	return "analyses"
}
