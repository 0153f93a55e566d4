package services

import (
	"fmt"
	"sort"
	"strings"

	"skillbridge/readiness-api/internal/models"
)

const (
	DefaultTargetRole = "Software Engineer"
	NoResumeContent   = "No resume content was extracted."
	NoSkillsProvided  = "None provided"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// ReadinessInput is everything the readiness prompt embeds. Empty fields are
// rendered as their placeholders.
type ReadinessInput struct {
	Role           string
	Skills         []string
	JobDescription string
	ResumeText     string
	RoleContext    string
}

type PlanInput struct {
	Role       string
	Summary    string
	Strengths  []string
	Weaknesses []string
	Gaps       []models.SkillGap
}

// BuildReadinessPrompt creates prompt for readiness evaluation
func (pb *PromptBuilder) BuildReadinessPrompt(in ReadinessInput) string {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = DefaultTargetRole
	}

	skills := strings.Join(in.Skills, ", ")
	if skills == "" {
		skills = NoSkillsProvided
	}

	resume := strings.TrimSpace(in.ResumeText)
	if resume == "" {
		resume = NoResumeContent
	}

	jd := strings.TrimSpace(in.JobDescription)

	var b strings.Builder
	fmt.Fprintf(&b, `You are an expert technical recruiter and career coach specializing in software engineering roles.

Analyze the resume text and profile below.

Target role: %s
User-selected skills: %s
`, role, skills)

	if jd != "" {
		fmt.Fprintf(&b, `
Job description:
"""
%s
"""
`, jd)
	}

	fmt.Fprintf(&b, `
Resume content:
"""
%s
"""
`, resume)

	if ctx := strings.TrimSpace(in.RoleContext); ctx != "" {
		fmt.Fprintf(&b, `
ROLE REFERENCE:
%s
`, ctx)
	}

	b.WriteString(`
Task:
Evaluate readiness for the target role on a scale of 0-100 (be strict and realistic).
Prioritize:
- Match to technical skills
- Depth in DSA/problem-solving
- System design knowledge
- Cloud/DevOps exposure
- Project quality and real-world impact
`)

	if jd != "" {
		b.WriteString(`Also score how well the candidate matches the job description (0-100) and list the skills the job description asks for that the candidate is missing.
`)
	}

	b.WriteString(`
Return ONLY valid JSON with this exact structure:
{
  "readiness_score": number,
`)
	if jd != "" {
		b.WriteString(`  "jd_match_score": number,
`)
	}
	b.WriteString(`  "strengths": string[],
  "weaknesses": string[],
  "skill_gaps": [{ "skill": "string", "percentage": number }],
`)
	if jd != "" {
		b.WriteString(`  "jd_missing_skills": string[],
`)
	}
	b.WriteString(`  "summary": "string"
}`)

	return b.String()
}

// BuildPlanPrompt creates prompt for the 30-day plan. Gaps are listed biggest first.
func (pb *PromptBuilder) BuildPlanPrompt(in PlanInput) string {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = DefaultTargetRole
	}

	gaps := SortGapsDesc(in.Gaps)
	gapLines := make([]string, 0, len(gaps))
	for _, g := range gaps {
		gapLines = append(gapLines, fmt.Sprintf("- %s: %d%%", g.Skill, g.Percentage))
	}

	return fmt.Sprintf(`You are a senior engineering mentor building a personalised 30-day preparation plan for a candidate targeting a %s role.

ANALYSIS SUMMARY:
%s

WEAKNESSES:
%s

SKILL GAPS (highest percentage = biggest gap):
%s

STRENGTHS:
%s

Rules:
- Weeks 1-2 (days 1-14): close the top skill gaps above, biggest first.
- Week 3 (days 15-21): system design and architecture topics adjacent to the role.
- Week 4 (days 22-30): portfolio projects, mock interviews and job applications.
- Produce exactly %d day entries numbered 1 to %d, each with a short focus label and exactly %d concrete tasks.

Return ONLY valid JSON, an array with this exact structure:
[
  { "day": 1, "focus": "string", "tasks": ["string", "string", "string"] }
]`,
		role,
		orPlaceholder(in.Summary),
		bulletList(in.Weaknesses),
		orPlaceholder(strings.Join(gapLines, "\n")),
		bulletList(in.Strengths),
		models.PlanDays, models.PlanDays, models.TasksPerDay,
	)
}

// BuildRetrievalQuery creates query for role reference retrieval
func (pb *PromptBuilder) BuildRetrievalQuery(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultTargetRole
	}
	return fmt.Sprintf("Skills, expectations and interview topics for a %s", role)
}

// SortGapsDesc returns a copy of gaps ordered by percentage, biggest first.
func SortGapsDesc(gaps []models.SkillGap) []models.SkillGap {
	sorted := append([]models.SkillGap(nil), gaps...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percentage > sorted[j].Percentage
	})
	return sorted
}

// FormatRAGContext joins retrieved chunks into the role reference block
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Reference %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			lines = append(lines, "- "+it)
		}
	}
	return orPlaceholder(strings.Join(lines, "\n"))
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
