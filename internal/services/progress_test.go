package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"skillbridge/readiness-api/internal/models"
)

func fullPlan() []models.PlanDay {
	days := make([]models.PlanDay, 0, models.PlanDays)
	for d := 1; d <= models.PlanDays; d++ {
		days = append(days, models.PlanDay{Day: d, Focus: fmt.Sprintf("Focus %d", d), Tasks: []string{"t1", "t2", "t3"}})
	}
	return days
}

func TestIsDayComplete(t *testing.T) {
	progress := models.Progress{
		"day1": {true, true, true},
		"day2": {true, false, true},
		"day3": {},
		"day4": {true},
	}

	assert.True(t, IsDayComplete(progress, 1))
	assert.False(t, IsDayComplete(progress, 2))
	assert.False(t, IsDayComplete(progress, 3), "empty sequence is never complete")
	assert.True(t, IsDayComplete(progress, 4), "length is not reconciled against the plan")
	assert.False(t, IsDayComplete(progress, 5), "absent key is never complete")
	assert.False(t, IsDayComplete(nil, 1))
}

func TestDayCompletion(t *testing.T) {
	progress := models.Progress{"day1": {true, false, true}, "day2": {false, false}}

	assert.Equal(t, 67, DayCompletion(progress, 1))
	assert.Equal(t, 0, DayCompletion(progress, 2))
	assert.Equal(t, 0, DayCompletion(progress, 9))
}

func TestCompletedDaysIgnoresOutOfRangeKeys(t *testing.T) {
	progress := models.Progress{
		"day1":  {true, true, true},
		"day30": {true, true, true},
		"day31": {true, true, true},
		"day0":  {true},
		"bogus": {true},
	}

	assert.Equal(t, 2, CompletedDays(progress))
}

func TestStreak(t *testing.T) {
	progress := models.Progress{
		"day1": {true, true, true},
		"day2": {true, false, true},
		"day3": {true, true, true},
		"day4": {true, true, true},
	}

	assert.Equal(t, 2, Streak(progress, 4))
	assert.Equal(t, 0, Streak(progress, 2))
	assert.Equal(t, 1, Streak(progress, 1))
	assert.Equal(t, 0, Streak(progress, 5), "missing day breaks the streak")
}

func TestWeekPhases(t *testing.T) {
	progress := models.Progress{}
	for d := 1; d <= 7; d++ {
		progress[models.DayKey(d)] = []bool{true, true, true}
	}
	progress["day30"] = []bool{true, true, true}

	phases := WeekPhases(progress)

	assert.Len(t, phases, 4)
	assert.Equal(t, WeekPhase{Week: 1, StartDay: 1, EndDay: 7, CompletedDays: 7, TotalDays: 7, Percent: 100}, phases[0])
	assert.Equal(t, 0, phases[1].CompletedDays)
	assert.Equal(t, 22, phases[3].StartDay)
	assert.Equal(t, 30, phases[3].EndDay)
	assert.Equal(t, 9, phases[3].TotalDays)
	assert.Equal(t, 11, phases[3].Percent)
}

func TestDailyTipRotates(t *testing.T) {
	assert.Equal(t, dailyTips[0], DailyTip(1))
	assert.Equal(t, dailyTips[6], DailyTip(7))
	assert.Equal(t, dailyTips[0], DailyTip(8))
	assert.Equal(t, dailyTips[0], DailyTip(0))
}

func TestReadyEstimate(t *testing.T) {
	cases := map[int]string{100: "Ready now", 85: "Ready now", 84: "~2-3 weeks", 70: "~2-3 weeks", 69: "~1 month", 50: "~1 month", 49: "2+ months", 0: "2+ months"}
	for score, want := range cases {
		assert.Equal(t, want, ReadyEstimate(score), "score %d", score)
	}
}

func TestComputeStats(t *testing.T) {
	plan := models.NewPlan(uuid.New())
	plan.PlanData = datatypes.NewJSONType(fullPlan())
	plan.Progress = datatypes.NewJSONType(models.Progress{
		"day1": {true, true, true},
		"day2": {true, true, true},
		"day3": {true, false, false},
	})

	t.Run("viewed day", func(t *testing.T) {
		stats := ComputeStats(plan, 2)

		assert.Equal(t, 2, stats.Day)
		assert.Equal(t, "Focus 2", stats.Focus)
		assert.Equal(t, []string{"t1", "t2", "t3"}, stats.Tasks)
		assert.Equal(t, []bool{true, true, true}, stats.Completed)
		assert.True(t, stats.DayComplete)
		assert.Equal(t, 100, stats.DayPercent)
		assert.Equal(t, 2, stats.CompletedDays)
		assert.Equal(t, 7, stats.OverallPercent)
		assert.Equal(t, 2, stats.Streak)
		assert.True(t, stats.HasPlan)
		assert.Equal(t, models.PlanDays, stats.TotalPlanDays)
	})

	t.Run("untouched day gets blank flags", func(t *testing.T) {
		stats := ComputeStats(plan, 10)

		assert.Equal(t, []bool{false, false, false}, stats.Completed)
		assert.Equal(t, 0, stats.DayPercent)
		assert.Equal(t, 0, stats.Streak)
	})

	t.Run("out of range day uses current day", func(t *testing.T) {
		plan.CurrentDay = 3
		stats := ComputeStats(plan, 99)

		assert.Equal(t, 3, stats.Day)
		assert.Equal(t, 33, stats.DayPercent)
	})

	t.Run("empty plan", func(t *testing.T) {
		stats := ComputeStats(models.NewPlan(uuid.New()), 1)

		assert.False(t, stats.HasPlan)
		assert.Empty(t, stats.Tasks)
		assert.Empty(t, stats.Completed)
		assert.Equal(t, 0, stats.CompletedDays)
		assert.NotEmpty(t, stats.Tip)
	})
}
