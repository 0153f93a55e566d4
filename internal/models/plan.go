package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PlanDays     = 30
	TasksPerDay  = 3
	FirstPlanDay = 1
)

type PlanDay struct {
	Day   int      `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// Progress maps "day<N>" to one completion flag per task of that day.
type Progress map[string][]bool

func DayKey(day int) string {
	return fmt.Sprintf("day%d", day)
}

// Day returns the recorded flags for day, or nil when the day was never touched.
func (p Progress) Day(day int) []bool {
	if p == nil {
		return nil
	}
	return p[DayKey(day)]
}

// WithDay returns a copy of p where only day's entry is replaced.
func (p Progress) WithDay(day int, tasks []bool) Progress {
	merged := make(Progress, len(p)+1)
	for k, v := range p {
		merged[k] = v
	}
	merged[DayKey(day)] = append([]bool{}, tasks...)
	return merged
}

// Plan is one row per profile. Version guards progress writes against lost updates.
type Plan struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProfileUUID uuid.UUID                     `gorm:"type:uuid;not null;uniqueIndex" json:"profile_uuid"`
	PlanData    datatypes.JSONType[[]PlanDay] `json:"plan_data"`
	Progress    datatypes.JSONType[Progress]  `json:"progress"`
	CurrentDay  int                           `gorm:"not null;default:1" json:"current_day"`
	Version     int                           `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time                     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time                     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	Profile Profile `gorm:"foreignKey:ProfileUUID;references:UUID" json:"-"`
}

func (Plan) TableName() string {
	return "plans"
}

// NewPlan returns the empty plan created on first access.
func NewPlan(profileUUID uuid.UUID) *Plan {
	return &Plan{
		ID:          uuid.New(),
		ProfileUUID: profileUUID,
		PlanData:    datatypes.NewJSONType([]PlanDay{}),
		Progress:    datatypes.NewJSONType(Progress{}),
		CurrentDay:  FirstPlanDay,
		Version:     1,
	}
}

func (p *Plan) Days() []PlanDay {
	return p.PlanData.Data()
}

func (p *Plan) ProgressMap() Progress {
	if prog := p.Progress.Data(); prog != nil {
		return prog
	}
	return Progress{}
}

// FindDay returns the entry numbered day, if the plan has one.
func (p *Plan) FindDay(day int) (PlanDay, bool) {
	for _, d := range p.Days() {
		if d.Day == day {
			return d, true
		}
	}
	return PlanDay{}, false
}
