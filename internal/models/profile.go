package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile is keyed by the client-generated identifier. Holding that identifier
// grants full read/write access to the profile and everything linked to it.
type Profile struct {
	UUID           uuid.UUID                    `gorm:"column:uuid;type:uuid;primaryKey" json:"uuid"`
	FullName       string                       `gorm:"type:text" json:"full_name"`
	TargetRole     string                       `gorm:"type:text" json:"target_role"`
	CollegeYear    string                       `gorm:"type:text" json:"college_year"`
	CGPA           string                       `gorm:"column:cgpa;type:text" json:"cgpa"`
	Experience     string                       `gorm:"type:text" json:"experience"`
	JobDescription string                       `gorm:"type:text" json:"job_description"`
	Skills         datatypes.JSONType[[]string] `json:"skills"`
	ResumePath     string                       `gorm:"type:text" json:"resume_path"`
	ResumeText     string                       `gorm:"type:text" json:"-"`
	CreatedAt      time.Time                    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time                    `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// SkillList returns the stored skills, never nil.
func (p *Profile) SkillList() []string {
	skills := p.Skills.Data()
	if skills == nil {
		return []string{}
	}
	return skills
}
