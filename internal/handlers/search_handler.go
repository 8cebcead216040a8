package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/ats-engine/internal/repositories"
	"hireflow/ats-engine/internal/services"
)

// SearchHandler serves similarity lookups over indexed resumes. It is only
// registered when the vector store is enabled.
type SearchHandler struct {
	appRepo        repositories.ApplicationRepository
	docRepo        repositories.DocumentRepository
	storageService services.StorageService
	extractor      services.DocumentExtractorService
	gemini         services.GeminiService
	vectors        services.ResumeVectorStore
}

func NewSearchHandler(
	appRepo repositories.ApplicationRepository,
	docRepo repositories.DocumentRepository,
	storageService services.StorageService,
	extractor services.DocumentExtractorService,
	gemini services.GeminiService,
	vectors services.ResumeVectorStore,
) *SearchHandler {
	return &SearchHandler{
		appRepo:        appRepo,
		docRepo:        docRepo,
		storageService: storageService,
		extractor:      extractor,
		gemini:         gemini,
		vectors:        vectors,
	}
}

// HandleSimilar handles GET /applications/:id/similar. It embeds the
// application's resume and searches for the closest other resumes among
// candidates for the same job; ?same_job=false widens to all jobs.
func (h *SearchHandler) HandleSimilar(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.appRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	doc, err := h.docRepo.FindByID(app.ResumeDocumentID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume document not found",
		})
	}

	data, err := h.storageService.ReadFile(doc.FilePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read resume file",
		})
	}

	resumeText := h.extractor.ExtractText(doc.OriginalFileName, data)
	if resumeText == "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "No text could be extracted from the resume",
		})
	}

	embedding, err := h.gemini.GenerateEmbedding(c.Context(), resumeText)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to embed resume",
		})
	}

	limit := 5
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 50 {
		limit = v
	}

	jobFilter := app.JobID.String()
	if c.Query("same_job") == "false" {
		jobFilter = ""
	}

	// Fetch one extra because the queried application matches itself.
	results, err := h.vectors.SearchSimilar(c.Context(), embedding, jobFilter, limit+1)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Similarity search failed",
		})
	}

	similar := results[:0:0]
	for _, r := range results {
		if r.ApplicationID == app.ID.String() {
			continue
		}
		similar = append(similar, r)
		if len(similar) == limit {
			break
		}
	}

	return c.JSON(fiber.Map{
		"application_id": app.ID.String(),
		"similar":        similar,
		"count":          len(similar),
	})
}
