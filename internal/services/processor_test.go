package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/ats-engine/internal/models"
	"hireflow/ats-engine/internal/repositories"
)

type fakeAppRepo struct {
	apps    map[uuid.UUID]*models.Application
	scores  map[uuid.UUID]*repositories.ScoreUpdateData
	history []models.ApplicationStatusHistory
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{
		apps:   map[uuid.UUID]*models.Application{},
		scores: map[uuid.UUID]*repositories.ScoreUpdateData{},
	}
}

func (f *fakeAppRepo) Create(app *models.Application) error {
	f.apps[app.ID] = app
	return nil
}

func (f *fakeAppRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, assert.AnError
	}
	copied := *app
	return &copied, nil
}

func (f *fakeAppRepo) FindByJobID(jobID uuid.UUID) ([]models.Application, error) {
	return nil, nil
}

func (f *fakeAppRepo) FindAll() ([]models.Application, error) { return nil, nil }

func (f *fakeAppRepo) ExistsForJobAndEmail(jobID uuid.UUID, email string) (bool, error) {
	return false, nil
}

func (f *fakeAppRepo) UpdateStatus(id uuid.UUID, status models.ApplicationStatus, reason string) error {
	app, ok := f.apps[id]
	if !ok {
		return assert.AnError
	}
	app.Status = status
	if reason != "" {
		app.RejectionReason = reason
	}
	return nil
}

func (f *fakeAppRepo) UpdateScores(id uuid.UUID, data *repositories.ScoreUpdateData) error {
	f.scores[id] = data
	return nil
}

func (f *fakeAppRepo) FindPendingScoring(limit int) ([]models.Application, error) {
	return nil, nil
}

func (f *fakeAppRepo) AddStatusHistory(history *models.ApplicationStatusHistory) error {
	f.history = append(f.history, *history)
	return nil
}

func (f *fakeAppRepo) FindStatusHistory(applicationID uuid.UUID) ([]models.ApplicationStatusHistory, error) {
	return f.history, nil
}

type fakeJobRepo struct {
	job *models.Job
}

func (f *fakeJobRepo) Create(job *models.Job) error { return nil }
func (f *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) { return f.job, nil }
func (f *fakeJobRepo) FindAll(status string) ([]models.Job, error) { return nil, nil }
func (f *fakeJobRepo) Update(job *models.Job) error { return nil }
func (f *fakeJobRepo) Delete(id uuid.UUID) error { return nil }

type fakeDocRepo struct {
	doc *models.Document
}

func (f *fakeDocRepo) Create(document *models.Document) error { return nil }

func (f *fakeDocRepo) FindByID(id uuid.UUID) (*models.Document, error) { return f.doc, nil }

type fakeStorage struct {
	contents []byte
}

func (f *fakeStorage) SaveFile(file *multipart.FileHeader, fileType string) (string, string, error) {
	return "", "", nil
}
func (f *fakeStorage) ReadFile(filePath string) ([]byte, error) { return f.contents, nil }
func (f *fakeStorage) GetFilePath(filename string) string { return filename }
func (f *fakeStorage) DeleteFile(filename string) error { return nil }
func (f *fakeStorage) EnsureUploadDir() error { return nil }

type fakeATS struct {
	result *models.ATSResult
}

func (f *fakeATS) ScoreResume(ctx context.Context, filename string, data []byte, job *models.Job) *models.ATSResult {
	return f.result
}

type fakeNotifier struct {
	confirmations int
	updates       []models.ApplicationStatus
}

func (f *fakeNotifier) SendApplicationConfirmation(app *models.Application, job *models.Job) {
	f.confirmations++
}

func (f *fakeNotifier) SendStatusUpdate(app *models.Application, job *models.Job, oldStatus, newStatus models.ApplicationStatus) {
	f.updates = append(f.updates, newStatus)
}

type processorFixture struct {
	appRepo  *fakeAppRepo
	notifier *fakeNotifier
	appID    uuid.UUID
}

func newProcessorFixture(t *testing.T, totalScore float64, job *models.Job) (ApplicationProcessorService, *processorFixture) {
	t.Helper()

	appRepo := newFakeAppRepo()
	appID := uuid.New()
	appRepo.apps[appID] = &models.Application{
		ID:               appID,
		JobID:            uuid.New(),
		ResumeDocumentID: uuid.New(),
		Status:           models.StatusSubmitted,
	}

	result := &models.ATSResult{
		TotalScore: totalScore,
		Scores: models.ScoreBreakdown{
			SkillMatch:      totalScore,
			ExperienceMatch: totalScore,
			EducationMatch:  totalScore,
			KeywordMatch:    totalScore,
		},
		Feedback:        models.Feedback{Strengths: []string{}, Weaknesses: []string{}, Suggestions: []string{}},
		Entities:        models.NewExtractedEntities(),
		ExperienceYears: 4,
		ResumeText:      "resume body",
	}

	notifier := &fakeNotifier{}
	processor := NewApplicationProcessorService(
		appRepo,
		&fakeJobRepo{job: job},
		&fakeDocRepo{doc: &models.Document{FilePath: "resume.txt", OriginalFileName: "resume.txt"}},
		&fakeStorage{contents: []byte("resume body")},
		&fakeATS{result: result},
		notifier,
		nil,
		nil,
	)

	return processor, &processorFixture{appRepo: appRepo, notifier: notifier, appID: appID}
}

func thresholdJob() *models.Job {
	return &models.Job{
		ID:                     uuid.New(),
		Title:                  "Backend Engineer",
		AutoRejectThreshold:    40,
		AutoShortlistThreshold: 70,
	}
}

func TestProcessApplicationShortlists(t *testing.T) {
	processor, fx := newProcessorFixture(t, 85, thresholdJob())

	require.NoError(t, processor.ProcessApplication(context.Background(), fx.appID))

	app := fx.appRepo.apps[fx.appID]
	assert.Equal(t, models.StatusShortlisted, app.Status)
	assert.Empty(t, app.RejectionReason)

	scores := fx.appRepo.scores[fx.appID]
	require.NotNil(t, scores)
	assert.Equal(t, 85.0, scores.ATSScore)
	assert.Equal(t, 4, scores.ExperienceYears)

	require.Len(t, fx.appRepo.history, 2)
	assert.Equal(t, models.StatusSubmitted, fx.appRepo.history[0].FromStatus)
	assert.Equal(t, models.StatusProcessing, fx.appRepo.history[0].ToStatus)
	assert.Equal(t, models.StatusProcessing, fx.appRepo.history[1].FromStatus)
	assert.Equal(t, models.StatusShortlisted, fx.appRepo.history[1].ToStatus)

	assert.Equal(t, []models.ApplicationStatus{models.StatusShortlisted}, fx.notifier.updates)
}

func TestProcessApplicationRejects(t *testing.T) {
	processor, fx := newProcessorFixture(t, 25, thresholdJob())

	require.NoError(t, processor.ProcessApplication(context.Background(), fx.appID))

	app := fx.appRepo.apps[fx.appID]
	assert.Equal(t, models.StatusRejected, app.Status)
	assert.Equal(t, "ATS score below threshold", app.RejectionReason)
	assert.Equal(t, []models.ApplicationStatus{models.StatusRejected}, fx.notifier.updates)
}

func TestProcessApplicationMidScoreGoesToReview(t *testing.T) {
	processor, fx := newProcessorFixture(t, 55, thresholdJob())

	require.NoError(t, processor.ProcessApplication(context.Background(), fx.appID))

	app := fx.appRepo.apps[fx.appID]
	assert.Equal(t, models.StatusUnderReview, app.Status)
	// Nothing worth emailing about yet.
	assert.Empty(t, fx.notifier.updates)
}

func TestProcessApplicationBoundaryScores(t *testing.T) {
	t.Run("exactly at shortlist threshold", func(t *testing.T) {
		processor, fx := newProcessorFixture(t, 70, thresholdJob())
		require.NoError(t, processor.ProcessApplication(context.Background(), fx.appID))
		assert.Equal(t, models.StatusShortlisted, fx.appRepo.apps[fx.appID].Status)
	})

	t.Run("exactly at reject threshold stays in review", func(t *testing.T) {
		processor, fx := newProcessorFixture(t, 40, thresholdJob())
		require.NoError(t, processor.ProcessApplication(context.Background(), fx.appID))
		assert.Equal(t, models.StatusUnderReview, fx.appRepo.apps[fx.appID].Status)
	})
}

func TestProcessApplicationSkipsNonSubmitted(t *testing.T) {
	processor, fx := newProcessorFixture(t, 85, thresholdJob())
	fx.appRepo.apps[fx.appID].Status = models.StatusShortlisted

	require.NoError(t, processor.ProcessApplication(context.Background(), fx.appID))

	assert.Empty(t, fx.appRepo.history)
	assert.Nil(t, fx.appRepo.scores[fx.appID])
}
