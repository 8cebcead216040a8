package services

import (
	"context"
	"log"
	"regexp"
	"strings"

	"hireflow/ats-engine/internal/models"
)

const (
	// taggerTextLimit bounds the statistical tagger's input.
	taggerTextLimit = 1000
	// generativeTextLimit bounds what is sent to the language model.
	generativeTextLimit = 3000
)

// StatisticalTagger is the optional NER layer. Implementations report
// availability and may fail at runtime; failures leave prior results intact.
type StatisticalTagger interface {
	Available() bool
	EntityMentions(text string) ([]string, error)
}

// GenerativeEntities is the structured output of the generative layer.
type GenerativeEntities struct {
	Skills         []string `json:"skills"`
	Education      []string `json:"education"`
	Experience     []string `json:"experience"`
	Certifications []string `json:"certifications"`
}

// GenerativeExtractor is the optional language-model layer.
type GenerativeExtractor interface {
	Available() bool
	Extract(ctx context.Context, text string) (*GenerativeEntities, error)
}

// EntityExtractorService derives structured signals from resume text using
// layered strategies: regex (always), statistical tagging and generative
// extraction (both optional). Later layers override earlier ones per field.
type EntityExtractorService interface {
	ExtractEntities(ctx context.Context, text string) *models.ExtractedEntities
}

type entityExtractorService struct {
	tagger     StatisticalTagger
	generative GenerativeExtractor
}

func NewEntityExtractorService(tagger StatisticalTagger, generative GenerativeExtractor) EntityExtractorService {
	return &entityExtractorService{
		tagger:     tagger,
		generative: generative,
	}
}

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phonePattern = regexp.MustCompile(`[+\d]?[\d\s()\-]{10,}`)
)

func (s *entityExtractorService) ExtractEntities(ctx context.Context, text string) *models.ExtractedEntities {
	entities := models.NewExtractedEntities()

	// Layer 1: regex, always available.
	if email := emailPattern.FindString(text); email != "" {
		entities.Contact["email"] = email
	}
	if phone := phonePattern.FindString(text); strings.TrimSpace(phone) != "" {
		entities.Contact["phone"] = strings.TrimSpace(phone)
	}

	textLower := strings.ToLower(text)
	for _, skill := range SkillKeywords() {
		if strings.Contains(textLower, strings.ToLower(skill)) {
			entities.Skills = append(entities.Skills, skill)
		}
	}

	// Layer 2: statistical tagger, bounded input, errors ignored.
	if s.tagger != nil && s.tagger.Available() {
		mentions, err := s.tagger.EntityMentions(truncate(text, taggerTextLimit))
		if err != nil {
			log.Printf("⚠️  Statistical tagging failed: %v\n", err)
		} else {
			entities.Experience = append(entities.Experience, mentions...)
		}
	}

	// Layer 3: generative extraction, non-empty fields fully replace
	// earlier results.
	if s.generative != nil && s.generative.Available() {
		extracted, err := s.generative.Extract(ctx, truncate(text, generativeTextLimit))
		if err != nil {
			log.Printf("⚠️  Generative extraction failed: %v\n", err)
		} else if extracted != nil {
			if len(extracted.Skills) > 0 {
				entities.Skills = extracted.Skills
			}
			if len(extracted.Education) > 0 {
				entities.Education = extracted.Education
			}
			if len(extracted.Experience) > 0 {
				entities.Experience = extracted.Experience
			}
			if len(extracted.Certifications) > 0 {
				entities.Certifications = extracted.Certifications
			}
		}
	}

	return entities
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}

// SkillKeywords returns the curated vocabulary used for substring-based
// skill detection. Matches keep this canonical casing.
func SkillKeywords() []string {
	return []string{
		"Python", "Java", "JavaScript", "C++", "C#", "Ruby", "PHP", "Swift", "Kotlin",
		"React", "Angular", "Vue", "Django", "Flask", "Spring", "Node.js", "Express",
		"SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Elasticsearch",
		"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Jenkins", "Git",
		"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "Scikit-learn",
		"Data Analysis", "Data Science", "Pandas", "NumPy", "Tableau", "Power BI",
		"Agile", "Scrum", "Project Management", "Leadership", "Communication",
	}
}
