package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/ats-engine/internal/models"
	"hireflow/ats-engine/internal/repositories"
	"hireflow/ats-engine/internal/services"
)

type ApplicationHandler struct {
	appRepo        repositories.ApplicationRepository
	jobRepo        repositories.JobRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	filterService  services.FilterService
	notifier       services.NotificationService
	worker         services.Worker
	maxFileSize    int64
}

func NewApplicationHandler(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	filterService services.FilterService,
	notifier services.NotificationService,
	worker services.Worker,
	maxFileSize int64,
) *ApplicationHandler {
	return &ApplicationHandler{
		appRepo:        appRepo,
		jobRepo:        jobRepo,
		docRepo:        docRepo,
		storageService: storageService,
		filterService:  filterService,
		notifier:       notifier,
		worker:         worker,
		maxFileSize:    maxFileSize,
	}
}

// HandleSubmit handles POST /applications. The resume arrives as a multipart
// "resume" file alongside job_id and candidate fields; scoring happens
// asynchronously after the application is accepted.
func (h *ApplicationHandler) HandleSubmit(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.FormValue("job_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "valid job_id is required",
		})
	}

	job, err := h.jobRepo.FindByID(jobID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	if job.Status != models.JobStatusActive {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Job is not accepting applications",
		})
	}

	candidateName := strings.TrimSpace(c.FormValue("candidate_name"))
	candidateEmail := strings.TrimSpace(strings.ToLower(c.FormValue("candidate_email")))
	if candidateName == "" || candidateEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_name and candidate_email are required",
		})
	}

	exists, err := h.appRepo.ExistsForJobAndEmail(jobID, candidateEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing applications",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An application for this job already exists for this email",
		})
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	if resumeFile.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(resumeFile, "resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	doc := models.Document{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: resumeFile.Filename,
		FileType:         strings.TrimPrefix(strings.ToLower(filepath.Ext(resumeFile.Filename)), "."),
		FilePath:         filePath,
		SizeBytes:        resumeFile.Size,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.docRepo.Create(&doc); err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save resume document record",
		})
	}

	now := time.Now()
	app := &models.Application{
		ID:               uuid.New(),
		JobID:            jobID,
		CandidateName:    candidateName,
		CandidateEmail:   candidateEmail,
		ResumeDocumentID: doc.ID,
		CoverLetter:      c.FormValue("cover_letter"),
		Status:           models.StatusSubmitted,
		CandidateSkills:  []string{},
		SubmittedAt:      &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.appRepo.Create(app); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create application",
		})
	}

	h.notifier.SendApplicationConfirmation(app, job)
	h.worker.EnqueueApplication(app.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ApplicationResponse{
		ID:          app.ID.String(),
		JobID:       jobID.String(),
		Status:      string(app.Status),
		SubmittedAt: now.Format(time.RFC3339),
	})
}

// HandleGet handles GET /applications/:id
func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	app, res := h.findApplication(c)
	if app == nil {
		return res
	}

	return c.JSON(app)
}

// HandleListByJob handles GET /jobs/:id/applications
func (h *ApplicationHandler) HandleListByJob(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	apps, err := h.appRepo.FindByJobID(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

// HandleReport handles GET /applications/:id/report
func (h *ApplicationHandler) HandleReport(c *fiber.Ctx) error {
	app, res := h.findApplication(c)
	if app == nil {
		return res
	}

	if app.ATSScore == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "Application has not been scored yet",
			"status": app.Status,
		})
	}

	return c.JSON(models.ATSReportResponse{
		ATSScore:             app.ATSScore,
		SkillMatchScore:      app.SkillMatchScore,
		ExperienceMatchScore: app.ExperienceMatchScore,
		EducationMatchScore:  app.EducationMatchScore,
		KeywordMatchScore:    app.KeywordMatchScore,
		Feedback:             app.ATSFeedback,
	})
}

// HandleUpdateStatus handles POST /applications/:id/status. Transitions are
// recorded in history and the candidate is notified.
func (h *ApplicationHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	app, res := h.findApplication(c)
	if app == nil {
		return res
	}

	var req models.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	newStatus := models.ApplicationStatus(req.Status)
	if !models.ValidStatuses[newStatus] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application status",
		})
	}

	oldStatus := app.Status
	if newStatus == oldStatus {
		return c.JSON(app)
	}

	reason := req.Reason
	if err := h.appRepo.UpdateStatus(app.ID, newStatus, reason); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update application status",
		})
	}

	history := &models.ApplicationStatusHistory{
		ApplicationID: app.ID,
		FromStatus:    oldStatus,
		ToStatus:      newStatus,
		Reason:        reason,
	}
	if err := h.appRepo.AddStatusHistory(history); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to record status history",
		})
	}

	job, err := h.jobRepo.FindByID(app.JobID)
	if err == nil {
		h.notifier.SendStatusUpdate(app, job, oldStatus, newStatus)
	}

	app.Status = newStatus
	return c.JSON(app)
}

// HandleHistory handles GET /applications/:id/history
func (h *ApplicationHandler) HandleHistory(c *fiber.Ctx) error {
	app, res := h.findApplication(c)
	if app == nil {
		return res
	}

	entries, err := h.appRepo.FindStatusHistory(app.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list status history",
		})
	}

	return c.JSON(fiber.Map{
		"history": entries,
		"count":   len(entries),
	})
}

// HandleFilter handles POST /applications/filter. Filtering and ranking run
// in memory, over one job's applications when job_id is given, otherwise over
// all of them.
func (h *ApplicationHandler) HandleFilter(c *fiber.Ctx) error {
	var req models.FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	var apps []models.Application
	var err error
	if req.JobID != "" {
		jobID, parseErr := uuid.Parse(req.JobID)
		if parseErr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid job_id format",
			})
		}
		apps, err = h.appRepo.FindByJobID(jobID)
	} else {
		apps, err = h.appRepo.FindAll()
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	filtered := h.filterService.FilterApplications(apps, req.Filters)
	if req.Ranking != "" {
		filtered = h.filterService.RankApplications(filtered, req.Ranking)
	}

	return c.JSON(fiber.Map{
		"applications": filtered,
		"count":        len(filtered),
	})
}

// findApplication resolves the :id parameter. On failure it writes the error
// response and returns a nil application; callers return the second value.
func (h *ApplicationHandler) findApplication(c *fiber.Ctx) (*models.Application, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.appRepo.FindByID(id)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	return app, nil
}
