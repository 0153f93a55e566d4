package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"skillbridge/readiness-api/internal/models"
)

func TestBuildReadinessPrompt(t *testing.T) {
	pb := NewPromptBuilder()

	t.Run("defaults", func(t *testing.T) {
		prompt := pb.BuildReadinessPrompt(ReadinessInput{})

		assert.Contains(t, prompt, "Target role: "+DefaultTargetRole)
		assert.Contains(t, prompt, "User-selected skills: "+NoSkillsProvided)
		assert.Contains(t, prompt, NoResumeContent)
		assert.NotContains(t, prompt, "Job description:")
		assert.NotContains(t, prompt, "jd_match_score")
		assert.NotContains(t, prompt, "ROLE REFERENCE")
	})

	t.Run("with job description and reference", func(t *testing.T) {
		prompt := pb.BuildReadinessPrompt(ReadinessInput{
			Role:           "Backend Engineer",
			Skills:         []string{"Go", "SQL"},
			JobDescription: "Build APIs in Go",
			ResumeText:     "Built a payments API",
			RoleContext:    "--- Reference 1 ---\nBackend engineers own services.",
		})

		assert.Contains(t, prompt, "Target role: Backend Engineer")
		assert.Contains(t, prompt, "User-selected skills: Go, SQL")
		assert.Contains(t, prompt, "Build APIs in Go")
		assert.Contains(t, prompt, "Built a payments API")
		assert.Contains(t, prompt, "ROLE REFERENCE")
		assert.Contains(t, prompt, `"jd_match_score": number`)
		assert.Contains(t, prompt, `"jd_missing_skills": string[]`)
		assert.NotContains(t, prompt, NoResumeContent)
	})
}

func TestBuildPlanPrompt(t *testing.T) {
	prompt := NewPromptBuilder().BuildPlanPrompt(PlanInput{
		Role:       "Data Engineer",
		Summary:    "Good SQL, weak streaming.",
		Weaknesses: []string{"Streaming"},
		Strengths:  []string{"SQL"},
		Gaps: []models.SkillGap{
			{Skill: "Docker", Percentage: 30},
			{Skill: "Kafka", Percentage: 80},
		},
	})

	assert.Contains(t, prompt, "Data Engineer role")
	assert.Contains(t, prompt, "Good SQL, weak streaming.")
	assert.Contains(t, prompt, "exactly 30 day entries")
	assert.Contains(t, prompt, "exactly 3 concrete tasks")
	assert.Less(t, strings.Index(prompt, "Kafka: 80%"), strings.Index(prompt, "Docker: 30%"))
}

func TestBuildPlanPromptEmptySections(t *testing.T) {
	prompt := NewPromptBuilder().BuildPlanPrompt(PlanInput{})

	assert.Contains(t, prompt, DefaultTargetRole)
	assert.Contains(t, prompt, "WEAKNESSES:\nNone")
}

func TestSortGapsDesc(t *testing.T) {
	gaps := []models.SkillGap{{Skill: "a", Percentage: 10}, {Skill: "b", Percentage: 90}, {Skill: "c", Percentage: 10}}

	sorted := SortGapsDesc(gaps)

	assert.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].Skill, sorted[1].Skill, sorted[2].Skill})
	assert.Equal(t, "a", gaps[0].Skill)
}

func TestFormatRAGContext(t *testing.T) {
	assert.Empty(t, FormatRAGContext(nil))

	out := FormatRAGContext([]SearchResult{{Text: " first ", Score: 0.9}, {Text: "second", Score: 0.5}})
	assert.Contains(t, out, "--- Reference 1 (Score: 0.90) ---\nfirst")
	assert.Contains(t, out, "--- Reference 2 (Score: 0.50) ---\nsecond")
}
