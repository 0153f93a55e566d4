package services

import (
	"math"

	"skillbridge/readiness-api/internal/models"
)

var dailyTips = []string{
	"Focus beats multitasking, one concept deeply understood beats three skimmed.",
	"Code what you learn today. Reading alone doesn't stick.",
	"Struggle with a problem for 20 min before looking it up. That's how intuition forms.",
	"Review yesterday's notes for 5 min before starting today.",
	"Teach it back: explain the concept out loud as if teaching someone else.",
	"Take a 5 min walk between tasks. Your brain consolidates learning at rest.",
	"Consistency beats intensity. 2 solid hours daily beats 10 hours on weekends.",
}

// WeekPhase is one of the four plan phases. Week 4 runs to day 30.
type WeekPhase struct {
	Week          int `json:"week"`
	StartDay      int `json:"start_day"`
	EndDay        int `json:"end_day"`
	CompletedDays int `json:"completed_days"`
	TotalDays     int `json:"total_days"`
	Percent       int `json:"percent"`
}

type PlanStats struct {
	Day            int         `json:"day"`
	Focus          string      `json:"focus"`
	Tasks          []string    `json:"tasks"`
	Completed      []bool      `json:"completed"`
	DayPercent     int         `json:"day_percent"`
	DayComplete    bool        `json:"day_complete"`
	CompletedDays  int         `json:"completed_days"`
	OverallPercent int         `json:"overall_percent"`
	Streak         int         `json:"streak"`
	Weeks          []WeekPhase `json:"weeks"`
	Tip            string      `json:"tip"`
	HasPlan        bool        `json:"has_plan"`
	CurrentDay     int         `json:"current_day"`
	TotalPlanDays  int         `json:"total_plan_days"`
}

// IsDayComplete holds iff the day has at least one flag and all are true.
func IsDayComplete(progress models.Progress, day int) bool {
	tasks := progress.Day(day)
	if len(tasks) == 0 {
		return false
	}
	for _, done := range tasks {
		if !done {
			return false
		}
	}
	return true
}

// DayCompletion is the share of true flags for day, 0 when nothing is recorded.
func DayCompletion(progress models.Progress, day int) int {
	tasks := progress.Day(day)
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, d := range tasks {
		if d {
			done++
		}
	}
	return percent(done, len(tasks))
}

// CompletedDays counts complete days across day1..day30. Keys outside that
// range are ignored.
func CompletedDays(progress models.Progress) int {
	count := 0
	for day := models.FirstPlanDay; day <= models.PlanDays; day++ {
		if IsDayComplete(progress, day) {
			count++
		}
	}
	return count
}

// Streak walks back from day until the first incomplete or missing day.
func Streak(progress models.Progress, day int) int {
	if day > models.PlanDays {
		day = models.PlanDays
	}
	streak := 0
	for d := day; d >= models.FirstPlanDay; d-- {
		if !IsDayComplete(progress, d) {
			break
		}
		streak++
	}
	return streak
}

func WeekPhases(progress models.Progress) []WeekPhase {
	bounds := [][2]int{{1, 7}, {8, 14}, {15, 21}, {22, models.PlanDays}}
	phases := make([]WeekPhase, 0, len(bounds))

	for i, b := range bounds {
		phase := WeekPhase{Week: i + 1, StartDay: b[0], EndDay: b[1], TotalDays: b[1] - b[0] + 1}
		for d := b[0]; d <= b[1]; d++ {
			if IsDayComplete(progress, d) {
				phase.CompletedDays++
			}
		}
		phase.Percent = percent(phase.CompletedDays, phase.TotalDays)
		phases = append(phases, phase)
	}

	return phases
}

// DailyTip rotates through the tips by day number.
func DailyTip(day int) string {
	if day < 1 {
		day = 1
	}
	return dailyTips[(day-1)%len(dailyTips)]
}

// ReadyEstimate buckets a readiness score into an estimated time to be job ready.
func ReadyEstimate(score int) string {
	switch {
	case score >= 85:
		return "Ready now"
	case score >= 70:
		return "~2-3 weeks"
	case score >= 50:
		return "~1 month"
	default:
		return "2+ months"
	}
}

// ComputeStats derives every figure the plan and dashboard views show for day.
// A day outside 1..30 falls back to the plan's current day.
func ComputeStats(plan *models.Plan, day int) PlanStats {
	if day < models.FirstPlanDay || day > models.PlanDays {
		day = plan.CurrentDay
	}
	if day < models.FirstPlanDay || day > models.PlanDays {
		day = models.FirstPlanDay
	}

	progress := plan.ProgressMap()
	completedDays := CompletedDays(progress)

	stats := PlanStats{
		Day:            day,
		Tasks:          []string{},
		Completed:      []bool{},
		DayPercent:     DayCompletion(progress, day),
		DayComplete:    IsDayComplete(progress, day),
		CompletedDays:  completedDays,
		OverallPercent: percent(completedDays, models.PlanDays),
		Streak:         Streak(progress, day),
		Weeks:          WeekPhases(progress),
		Tip:            DailyTip(day),
		HasPlan:        len(plan.Days()) > 0,
		CurrentDay:     plan.CurrentDay,
		TotalPlanDays:  models.PlanDays,
	}

	entry, ok := plan.FindDay(day)
	if ok {
		stats.Focus = entry.Focus
		stats.Tasks = entry.Tasks
	}

	if saved := progress.Day(day); saved != nil {
		stats.Completed = saved
	} else if ok {
		stats.Completed = make([]bool, len(entry.Tasks))
	}

	return stats
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
