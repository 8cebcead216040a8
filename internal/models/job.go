package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusDraft  JobStatus = "draft"
	JobStatusActive JobStatus = "active"
	JobStatusPaused JobStatus = "paused"
	JobStatusClosed JobStatus = "closed"
)

type Job struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string    `gorm:"type:text;not null" json:"title"`
	Department       string    `gorm:"type:text" json:"department"`
	Description      string    `gorm:"type:text" json:"description"`
	Location         string    `gorm:"type:text" json:"location"`
	Requirements     []string  `gorm:"serializer:json" json:"requirements"`
	Responsibilities []string  `gorm:"serializer:json" json:"responsibilities"`
	SkillsRequired   []string  `gorm:"serializer:json" json:"skills_required"`
	SkillsPreferred  []string  `gorm:"serializer:json" json:"skills_preferred"`

	ExperienceMinYears int  `gorm:"default:0" json:"experience_min_years"`
	ExperienceMaxYears *int `json:"experience_max_years,omitempty"`

	Status   JobStatus `gorm:"not null;default:'draft'" json:"status"`
	Openings int       `gorm:"default:1" json:"openings"`

	// Applications scoring below the reject threshold are auto-rejected,
	// at or above the shortlist threshold auto-shortlisted.
	AutoRejectThreshold    int `gorm:"default:40" json:"auto_reject_threshold"`
	AutoShortlistThreshold int `gorm:"default:70" json:"auto_shortlist_threshold"`

	Deadline  *time.Time `json:"deadline,omitempty"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
