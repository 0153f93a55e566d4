package services

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gorm.io/datatypes"

	"skillbridge/readiness-api/internal/models"
)

const analysisSchema = `{
  "type": "object",
  "required": ["readiness_score", "strengths", "weaknesses", "skill_gaps", "summary"],
  "properties": {
    "readiness_score": {"type": "number", "minimum": 0, "maximum": 100},
    "jd_match_score": {"type": ["number", "null"], "minimum": 0, "maximum": 100},
    "strengths": {"type": "array", "items": {"type": "string"}},
    "weaknesses": {"type": "array", "items": {"type": "string"}},
    "skill_gaps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["skill", "percentage"],
        "properties": {
          "skill": {"type": "string", "minLength": 1},
          "percentage": {"type": "number", "minimum": 0, "maximum": 100}
        }
      }
    },
    "jd_missing_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "summary": {"type": "string"}
  }
}`

const planSchema = `{
  "type": "array",
  "minItems": 30,
  "maxItems": 30,
  "items": {
    "type": "object",
    "required": ["day", "focus", "tasks"],
    "properties": {
      "day": {"type": "integer", "minimum": 1, "maximum": 30},
      "focus": {"type": "string", "minLength": 1},
      "tasks": {
        "type": "array",
        "minItems": 3,
        "maxItems": 3,
        "items": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var (
	analysisSchemaLoader = gojsonschema.NewStringLoader(analysisSchema)
	planSchemaLoader     = gojsonschema.NewStringLoader(planSchema)
)

// AnalysisResult is the validated shape of a readiness evaluation.
type AnalysisResult struct {
	ReadinessScore  float64         `json:"readiness_score"`
	JDMatchScore    *float64        `json:"jd_match_score"`
	Strengths       []string        `json:"strengths"`
	Weaknesses      []string        `json:"weaknesses"`
	SkillGaps       []SkillGapScore `json:"skill_gaps"`
	JDMissingSkills []string        `json:"jd_missing_skills"`
	Summary         string          `json:"summary"`
}

type SkillGapScore struct {
	Skill      string  `json:"skill"`
	Percentage float64 `json:"percentage"`
}

// DecodeAnalysis validates raw model output against the analysis schema and
// decodes it. Nothing partial is ever returned.
func DecodeAnalysis(raw string) (*AnalysisResult, error) {
	jsonStr := extractJSON(raw)

	if err := validateAgainst(analysisSchemaLoader, jsonStr); err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	return &result, nil
}

// DecodePlan accepts either a bare array or an object wrapping it under
// "plan" or "days", and returns the 30 entries ordered by day.
func DecodePlan(raw string) ([]models.PlanDay, error) {
	jsonStr := extractJSON(raw)

	if strings.HasPrefix(jsonStr, "{") {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal([]byte(jsonStr), &wrapper); err != nil {
			return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
		}
		inner, ok := wrapper["plan"]
		if !ok {
			inner, ok = wrapper["days"]
		}
		if !ok {
			return nil, fmt.Errorf("plan object has no \"plan\" array")
		}
		jsonStr = string(inner)
	}

	if err := validateAgainst(planSchemaLoader, jsonStr); err != nil {
		return nil, err
	}

	var days []models.PlanDay
	if err := json.Unmarshal([]byte(jsonStr), &days); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}

	sort.SliceStable(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	for i, d := range days {
		if d.Day != i+1 {
			return nil, fmt.Errorf("plan days must be numbered 1..%d exactly once, got day %d at position %d", models.PlanDays, d.Day, i+1)
		}
	}

	return days, nil
}

func validateAgainst(schema gojsonschema.JSONLoader, jsonStr string) error {
	res, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(jsonStr))
	if err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// ToModel converts a validated result into a new Analysis row. JD fields are
// kept only when the profile had a job description.
func (r *AnalysisResult) ToModel(withJD bool) *models.Analysis {
	gaps := make([]models.SkillGap, 0, len(r.SkillGaps))
	for _, g := range r.SkillGaps {
		gaps = append(gaps, models.SkillGap{
			Skill:      strings.TrimSpace(g.Skill),
			Percentage: roundScore(g.Percentage),
		})
	}

	analysis := &models.Analysis{
		ReadinessScore: roundScore(r.ReadinessScore),
		Strengths:      datatypes.NewJSONType(nonNil(r.Strengths)),
		Weaknesses:     datatypes.NewJSONType(nonNil(r.Weaknesses)),
		SkillGaps:      datatypes.NewJSONType(gaps),
		Summary:        strings.TrimSpace(r.Summary),
	}

	if withJD {
		if r.JDMatchScore != nil {
			score := roundScore(*r.JDMatchScore)
			analysis.JDMatchScore = &score
		}
		if r.JDMissingSkills != nil {
			analysis.JDMissingSkills = datatypes.NewJSONType(r.JDMissingSkills)
		}
	}

	return analysis
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func roundScore(v float64) int {
	return int(math.Round(math.Max(0, math.Min(100, v))))
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	// An array wins only when it opens before any object
	if startArr != -1 && endArr > startArr && (startObj == -1 || startArr < startObj) {
		return text[startArr : endArr+1]
	}
	if startObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}

	return text
}
