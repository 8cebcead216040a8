package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/ats-engine/internal/models"
	"hireflow/ats-engine/internal/repositories"
)

type JobHandler struct {
	jobRepo repositories.JobRepository
}

func NewJobHandler(jobRepo repositories.JobRepository) *JobHandler {
	return &JobHandler{jobRepo: jobRepo}
}

// HandleCreate handles POST /jobs
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.JobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	job := &models.Job{
		ID:                 uuid.New(),
		Title:              req.Title,
		Department:         req.Department,
		Description:        req.Description,
		Location:           req.Location,
		Requirements:       req.Requirements,
		Responsibilities:   req.Responsibilities,
		SkillsRequired:     req.SkillsRequired,
		SkillsPreferred:    req.SkillsPreferred,
		ExperienceMinYears: req.ExperienceMinYears,
		ExperienceMaxYears: req.ExperienceMaxYears,
		Status:             models.JobStatusDraft,
		Openings:           req.Openings,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}
	if job.Openings <= 0 {
		job.Openings = 1
	}
	applyThresholds(job, &req)

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}

// HandleList handles GET /jobs
func (h *JobHandler) HandleList(c *fiber.Ctx) error {
	jobs, err := h.jobRepo.FindAll(c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list jobs",
		})
	}

	return c.JSON(fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// HandleGet handles GET /jobs/:id
func (h *JobHandler) HandleGet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.JSON(job)
}

// HandleUpdate handles PUT /jobs/:id
func (h *JobHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	var req models.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	job.Department = req.Department
	job.Description = req.Description
	job.Location = req.Location
	job.Requirements = req.Requirements
	job.Responsibilities = req.Responsibilities
	job.SkillsRequired = req.SkillsRequired
	job.SkillsPreferred = req.SkillsPreferred
	job.ExperienceMinYears = req.ExperienceMinYears
	job.ExperienceMaxYears = req.ExperienceMaxYears
	if req.Openings > 0 {
		job.Openings = req.Openings
	}
	applyThresholds(job, &req)

	if err := h.jobRepo.Update(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update job",
		})
	}

	return c.JSON(job)
}

// HandleUpdateStatus handles PATCH /jobs/:id/status
func (h *JobHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	status := models.JobStatus(req.Status)
	switch status {
	case models.JobStatusDraft, models.JobStatusActive, models.JobStatusPaused, models.JobStatusClosed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job status",
		})
	}

	job, err := h.jobRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	job.Status = status
	if err := h.jobRepo.Update(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update job status",
		})
	}

	return c.JSON(job)
}

// HandleDelete handles DELETE /jobs/:id
func (h *JobHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.jobRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// applyThresholds copies optional threshold overrides, falling back to the
// defaults when absent.
func applyThresholds(job *models.Job, req *models.JobRequest) {
	if req.AutoRejectThreshold != nil {
		job.AutoRejectThreshold = *req.AutoRejectThreshold
	} else if job.AutoRejectThreshold == 0 {
		job.AutoRejectThreshold = 40
	}
	if req.AutoShortlistThreshold != nil {
		job.AutoShortlistThreshold = *req.AutoShortlistThreshold
	} else if job.AutoShortlistThreshold == 0 {
		job.AutoShortlistThreshold = 70
	}
}
