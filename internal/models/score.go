package models

// ScoreBreakdown holds the four dimension scores, each in [0,100].
type ScoreBreakdown struct {
	SkillMatch      float64 `json:"skill_match"`
	ExperienceMatch float64 `json:"experience_match"`
	EducationMatch  float64 `json:"education_match"`
	KeywordMatch    float64 `json:"keyword_match"`
}

// Feedback is the structured feedback attached to a scored application.
// Error is only set on the neutral fallback result.
type Feedback struct {
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
	Error       string   `json:"error,omitempty"`
}

// ExtractedEntities carries the structured signals pulled out of a resume.
// All fields are always non-nil so consumers never need to null-check.
type ExtractedEntities struct {
	Skills         []string          `json:"skills"`
	Education      []string          `json:"education"`
	Experience     []string          `json:"experience"`
	Certifications []string          `json:"certifications"`
	Contact        map[string]string `json:"contact"`
}

func NewExtractedEntities() *ExtractedEntities {
	return &ExtractedEntities{
		Skills:         []string{},
		Education:      []string{},
		Experience:     []string{},
		Certifications: []string{},
		Contact:        map[string]string{},
	}
}

// ATSResult is the full outcome of one scoring run. ResumeText is the
// extracted plain text, kept so downstream consumers (persistence, vector
// indexing) do not have to re-run extraction.
type ATSResult struct {
	TotalScore      float64            `json:"total_score"`
	Scores          ScoreBreakdown     `json:"scores"`
	Feedback        Feedback           `json:"feedback"`
	Entities        *ExtractedEntities `json:"entities"`
	ExperienceYears int                `json:"experience_years"`
	ResumeText      string             `json:"-"`
}
