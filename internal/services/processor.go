package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"hireflow/ats-engine/internal/models"
	"hireflow/ats-engine/internal/repositories"
)

const autoRejectReason = "ATS score below threshold"

// ApplicationProcessorService runs the scoring pipeline for one submitted
// application and persists the outcome: scores, feedback, candidate snapshot,
// the threshold-driven status transition and its history entry, plus
// best-effort side effects (candidate notification, vector indexing).
type ApplicationProcessorService interface {
	ProcessApplication(ctx context.Context, applicationID uuid.UUID) error
}

type applicationProcessorService struct {
	appRepo  repositories.ApplicationRepository
	jobRepo  repositories.JobRepository
	docRepo  repositories.DocumentRepository
	storage  StorageService
	ats      ATSService
	notifier NotificationService
	gemini   GeminiService
	vectors  ResumeVectorStore
}

func NewApplicationProcessorService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	ats ATSService,
	notifier NotificationService,
	gemini GeminiService,
	vectors ResumeVectorStore,
) ApplicationProcessorService {
	return &applicationProcessorService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		docRepo:  docRepo,
		storage:  storage,
		ats:      ats,
		notifier: notifier,
		gemini:   gemini,
		vectors:  vectors,
	}
}

// ProcessApplication implements ApplicationProcessorService.
func (s *applicationProcessorService) ProcessApplication(ctx context.Context, applicationID uuid.UUID) error {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		return fmt.Errorf("failed to load application: %w", err)
	}

	// The queue and the poller can both pick up the same application.
	if app.Status != models.StatusSubmitted {
		log.Printf("⏭️  Application %s already in status %s, skipping\n", applicationID, app.Status)
		return nil
	}

	if err := s.transition(app, models.StatusProcessing, ""); err != nil {
		return err
	}

	job, err := s.jobRepo.FindByID(app.JobID)
	if err != nil {
		return fmt.Errorf("failed to load job: %w", err)
	}

	doc, err := s.docRepo.FindByID(app.ResumeDocumentID)
	if err != nil {
		return fmt.Errorf("failed to load resume document: %w", err)
	}

	// A missing file degrades to empty text; the pipeline still produces a
	// result rather than leaving the application stuck in processing.
	data, err := s.storage.ReadFile(doc.FilePath)
	if err != nil {
		log.Printf("⚠️  Failed to read resume file for application %s: %v\n", applicationID, err)
		data = nil
	}

	result := s.ats.ScoreResume(ctx, doc.OriginalFileName, data, job)

	err = s.appRepo.UpdateScores(applicationID, &repositories.ScoreUpdateData{
		ATSScore:             result.TotalScore,
		SkillMatchScore:      result.Scores.SkillMatch,
		ExperienceMatchScore: result.Scores.ExperienceMatch,
		EducationMatchScore:  result.Scores.EducationMatch,
		KeywordMatchScore:    result.Scores.KeywordMatch,
		Feedback:             result.Feedback,
		CandidateSkills:      result.Entities.Skills,
		ExperienceYears:      result.ExperienceYears,
	})
	if err != nil {
		return fmt.Errorf("failed to persist scores: %w", err)
	}

	newStatus, reason := thresholdStatus(result.TotalScore, job)
	if err := s.transition(app, newStatus, reason); err != nil {
		return err
	}

	log.Printf("✅ Application %s scored %.2f, status %s\n", applicationID, result.TotalScore, newStatus)

	if newStatus == models.StatusShortlisted || newStatus == models.StatusRejected {
		s.notifier.SendStatusUpdate(app, job, models.StatusProcessing, newStatus)
	}

	s.indexResume(ctx, app, result.ResumeText)

	return nil
}

// thresholdStatus maps a total score onto the job's auto-transition
// thresholds.
func thresholdStatus(score float64, job *models.Job) (models.ApplicationStatus, string) {
	switch {
	case score < float64(job.AutoRejectThreshold):
		return models.StatusRejected, autoRejectReason
	case score >= float64(job.AutoShortlistThreshold):
		return models.StatusShortlisted, ""
	default:
		return models.StatusUnderReview, ""
	}
}

// transition updates the status and records the history entry, then mutates
// app.Status so later transitions in the same run chain correctly.
func (s *applicationProcessorService) transition(app *models.Application, to models.ApplicationStatus, reason string) error {
	if err := s.appRepo.UpdateStatus(app.ID, to, reason); err != nil {
		return fmt.Errorf("failed to update status to %s: %w", to, err)
	}

	history := &models.ApplicationStatusHistory{
		ApplicationID: app.ID,
		FromStatus:    app.Status,
		ToStatus:      to,
		Reason:        reason,
	}
	if err := s.appRepo.AddStatusHistory(history); err != nil {
		return fmt.Errorf("failed to record status history: %w", err)
	}

	app.Status = to
	return nil
}

// indexResume embeds the resume text and upserts it into the vector store.
// Both steps are best-effort.
func (s *applicationProcessorService) indexResume(ctx context.Context, app *models.Application, resumeText string) {
	if s.vectors == nil || s.gemini == nil || resumeText == "" {
		return
	}

	embedding, err := s.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		log.Printf("⚠️  Failed to embed resume for application %s: %v\n", app.ID, err)
		return
	}

	if err := s.vectors.UpsertResume(ctx, app.ID.String(), app.JobID.String(), embedding); err != nil {
		log.Printf("⚠️  Failed to index resume for application %s: %v\n", app.ID, err)
		return
	}

	log.Printf("📄 Resume for application %s indexed for similarity search\n", app.ID)
}
