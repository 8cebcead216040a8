package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "submitted"
	StatusProcessing         ApplicationStatus = "processing"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusShortlisted        ApplicationStatus = "shortlisted"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewed        ApplicationStatus = "interviewed"
	StatusOfferExtended      ApplicationStatus = "offer_extended"
	StatusOfferAccepted      ApplicationStatus = "offer_accepted"
	StatusOfferDeclined      ApplicationStatus = "offer_declined"
	StatusRejected           ApplicationStatus = "rejected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
)

// ValidStatuses lists every status a manual transition may target.
var ValidStatuses = map[ApplicationStatus]bool{
	StatusSubmitted:          true,
	StatusProcessing:         true,
	StatusUnderReview:        true,
	StatusShortlisted:        true,
	StatusInterviewScheduled: true,
	StatusInterviewed:        true,
	StatusOfferExtended:      true,
	StatusOfferAccepted:      true,
	StatusOfferDeclined:      true,
	StatusRejected:           true,
	StatusWithdrawn:          true,
}

type Application struct {
	ID               uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID            uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate" json:"job_id"`
	CandidateName    string            `gorm:"type:text;not null" json:"candidate_name"`
	CandidateEmail   string            `gorm:"type:text;not null;uniqueIndex:idx_job_candidate" json:"candidate_email"`
	ResumeDocumentID uuid.UUID         `gorm:"type:uuid;not null" json:"resume_document_id"`
	CoverLetter      string            `gorm:"type:text" json:"cover_letter,omitempty"`
	Status           ApplicationStatus `gorm:"not null;default:'submitted';index" json:"status"`

	// ATS scoring results, nil until the scoring worker has run.
	ATSScore             *float64 `gorm:"index" json:"ats_score,omitempty"`
	SkillMatchScore      *float64 `json:"skill_match_score,omitempty"`
	ExperienceMatchScore *float64 `json:"experience_match_score,omitempty"`
	EducationMatchScore  *float64 `json:"education_match_score,omitempty"`
	KeywordMatchScore    *float64 `json:"keyword_match_score,omitempty"`
	ATSFeedback          Feedback `gorm:"serializer:json" json:"ats_feedback"`

	// Candidate profile snapshot derived during scoring.
	CandidateSkills []string `gorm:"serializer:json" json:"candidate_skills"`
	ExperienceYears int      `gorm:"default:0" json:"experience_years"`

	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	SubmittedAt     *time.Time `json:"submitted_at,omitempty"`
	CreatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Job            Job      `gorm:"foreignKey:JobID" json:"-"`
	ResumeDocument Document `gorm:"foreignKey:ResumeDocumentID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}

type ApplicationStatusHistory struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID uuid.UUID         `gorm:"type:uuid;not null;index" json:"application_id"`
	FromStatus    ApplicationStatus `gorm:"type:text" json:"from_status"`
	ToStatus      ApplicationStatus `gorm:"type:text" json:"to_status"`
	Reason        string            `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt     time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (ApplicationStatusHistory) TableName() string {
	return "application_status_history"
}
