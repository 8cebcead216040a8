package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/ats-engine/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByJobID(jobID uuid.UUID) ([]models.Application, error)
	FindAll() ([]models.Application, error)
	ExistsForJobAndEmail(jobID uuid.UUID, email string) (bool, error)
	UpdateStatus(id uuid.UUID, status models.ApplicationStatus, reason string) error
	UpdateScores(id uuid.UUID, data *ScoreUpdateData) error
	FindPendingScoring(limit int) ([]models.Application, error)
	AddStatusHistory(history *models.ApplicationStatusHistory) error
	FindStatusHistory(applicationID uuid.UUID) ([]models.ApplicationStatusHistory, error)
}

// ScoreUpdateData carries everything the scoring worker persists in one
// update after the pipeline finishes.
type ScoreUpdateData struct {
	ATSScore             float64
	SkillMatchScore      float64
	ExperienceMatchScore float64
	EducationMatchScore  float64
	KeywordMatchScore    float64
	Feedback             models.Feedback
	CandidateSkills      []string
	ExperienceYears      int
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("application not found")
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) FindByJobID(jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) FindAll() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("created_at ASC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	return apps, nil
}

// ExistsForJobAndEmail reports whether the candidate already applied to the
// job. The unique index enforces this too; checking first gives a clean
// conflict response instead of a raw constraint error.
func (r *applicationRepository) ExistsForJobAndEmail(jobID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Application{}).
		Where("job_id = ? AND candidate_email = ?", jobID, email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check duplicate application: %w", err)
	}
	return count > 0, nil
}

func (r *applicationRepository) UpdateStatus(id uuid.UUID, status models.ApplicationStatus, reason string) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}

	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

func (r *applicationRepository) UpdateScores(id uuid.UUID, data *ScoreUpdateData) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ats_score":              data.ATSScore,
			"skill_match_score":      data.SkillMatchScore,
			"experience_match_score": data.ExperienceMatchScore,
			"education_match_score":  data.EducationMatchScore,
			"keyword_match_score":    data.KeywordMatchScore,
			"ats_feedback":           data.Feedback,
			"candidate_skills":       data.CandidateSkills,
			"experience_years":       data.ExperienceYears,
			"updated_at":             time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update scores: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

func (r *applicationRepository) FindPendingScoring(limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("status = ?", models.StatusSubmitted).
		Order("created_at ASC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) AddStatusHistory(history *models.ApplicationStatusHistory) error {
	if err := r.db.Create(history).Error; err != nil {
		return fmt.Errorf("failed to record status history: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindStatusHistory(applicationID uuid.UUID) ([]models.ApplicationStatusHistory, error) {
	var entries []models.ApplicationStatusHistory
	err := r.db.
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}
	return entries, nil
}
