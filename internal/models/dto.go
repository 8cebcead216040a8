package models

type JobRequest struct {
	Title                  string   `json:"title" validate:"required"`
	Department             string   `json:"department"`
	Description            string   `json:"description"`
	Location               string   `json:"location"`
	Requirements           []string `json:"requirements"`
	Responsibilities       []string `json:"responsibilities"`
	SkillsRequired         []string `json:"skills_required"`
	SkillsPreferred        []string `json:"skills_preferred"`
	ExperienceMinYears     int      `json:"experience_min_years"`
	ExperienceMaxYears     *int     `json:"experience_max_years"`
	Openings               int      `json:"openings"`
	AutoRejectThreshold    *int     `json:"auto_reject_threshold"`
	AutoShortlistThreshold *int     `json:"auto_shortlist_threshold"`
}

type ApplicationResponse struct {
	ID          string   `json:"id"`
	JobID       string   `json:"job_id"`
	Status      string   `json:"status"`
	ATSScore    *float64 `json:"ats_score,omitempty"`
	SubmittedAt string   `json:"submitted_at,omitempty"`
}

type ATSReportResponse struct {
	ATSScore             *float64 `json:"ats_score"`
	SkillMatchScore      *float64 `json:"skill_match_score"`
	ExperienceMatchScore *float64 `json:"experience_match_score"`
	EducationMatchScore  *float64 `json:"education_match_score"`
	KeywordMatchScore    *float64 `json:"keyword_match_score"`
	Feedback             Feedback `json:"feedback"`
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

// FilterRequest mirrors the bulk filter payload: every criterion is optional
// and absent criteria are no-ops.
type FilterRequest struct {
	JobID   string         `json:"job_id,omitempty"`
	Filters FilterCriteria `json:"filters"`
	Ranking string         `json:"ranking"`
}

type FilterCriteria struct {
	MinScore      *float64 `json:"min_score,omitempty"`
	MaxScore      *float64 `json:"max_score,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	ExperienceMin *int     `json:"experience_min,omitempty"`
	Status        []string `json:"status,omitempty"`
}

type SimilarCandidate struct {
	ApplicationID string  `json:"application_id"`
	JobID         string  `json:"job_id"`
	Score         float32 `json:"score"`
}
