package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"hireflow/ats-engine/internal/models"
)

// Fixed aggregation weights; they sum to 1.0.
const (
	weightSkillMatch      = 0.35
	weightExperienceMatch = 0.30
	weightEducationMatch  = 0.20
	weightKeywordMatch    = 0.15
)

const (
	strengthThreshold  = 80.0
	weaknessThreshold  = 60.0
	maxSuggestedSkills = 3
	fallbackErrMessage = "Could not process resume"
	fallbackScore      = 50.0
)

// ATSService runs the full scoring pipeline for one resume against one job:
// text extraction, entity extraction, the four scorers, weighted aggregation
// and feedback synthesis. It never fails: any panic along the way degrades
// to a neutral fallback result so scoring cannot block a submission.
type ATSService interface {
	ScoreResume(ctx context.Context, filename string, data []byte, job *models.Job) *models.ATSResult
}

type atsService struct {
	extractor       DocumentExtractorService
	entityExtractor EntityExtractorService
	scoring         ScoringService
}

func NewATSService(
	extractor DocumentExtractorService,
	entityExtractor EntityExtractorService,
	scoring ScoringService,
) ATSService {
	return &atsService{
		extractor:       extractor,
		entityExtractor: entityExtractor,
		scoring:         scoring,
	}
}

func (s *atsService) ScoreResume(ctx context.Context, filename string, data []byte, job *models.Job) (result *models.ATSResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Scoring pipeline failed: %v\n", r)
			result = FallbackResult()
		}
	}()

	resumeText := s.extractor.ExtractText(filename, data)
	entities := s.entityExtractor.ExtractEntities(ctx, resumeText)

	scores := models.ScoreBreakdown{
		SkillMatch:      s.scoring.SkillMatch(entities.Skills, job.SkillsRequired, job.SkillsPreferred),
		ExperienceMatch: s.scoring.ExperienceMatch(resumeText, job),
		EducationMatch:  s.scoring.EducationMatch(entities.Education, job.Requirements),
		KeywordMatch:    s.scoring.KeywordMatch(resumeText, job),
	}

	total := weightSkillMatch*scores.SkillMatch +
		weightExperienceMatch*scores.ExperienceMatch +
		weightEducationMatch*scores.EducationMatch +
		weightKeywordMatch*scores.KeywordMatch

	experienceYears, _ := ExtractExperienceYears(resumeText)

	return &models.ATSResult{
		TotalScore:      round2(total),
		Scores:          scores,
		Feedback:        buildFeedback(scores, entities, job),
		Entities:        entities,
		ExperienceYears: experienceYears,
		ResumeText:      resumeText,
	}
}

// FallbackResult is the neutral result substituted on pipeline failure.
func FallbackResult() *models.ATSResult {
	return &models.ATSResult{
		TotalScore: fallbackScore,
		Scores: models.ScoreBreakdown{
			SkillMatch:      fallbackScore,
			ExperienceMatch: fallbackScore,
			EducationMatch:  fallbackScore,
			KeywordMatch:    fallbackScore,
		},
		Feedback: models.Feedback{
			Strengths:   []string{},
			Weaknesses:  []string{},
			Suggestions: []string{},
			Error:       fallbackErrMessage,
		},
		Entities: models.NewExtractedEntities(),
	}
}

func buildFeedback(scores models.ScoreBreakdown, entities *models.ExtractedEntities, job *models.Job) models.Feedback {
	feedback := models.Feedback{
		Strengths:   []string{},
		Weaknesses:  []string{},
		Suggestions: []string{},
	}

	dimensions := []struct {
		name  string
		score float64
	}{
		{"skill match", scores.SkillMatch},
		{"experience match", scores.ExperienceMatch},
		{"education match", scores.EducationMatch},
		{"keyword match", scores.KeywordMatch},
	}

	// Scores in [60,80) land in neither list on purpose.
	for _, dim := range dimensions {
		if dim.score >= strengthThreshold {
			feedback.Strengths = append(feedback.Strengths, fmt.Sprintf("Strong %s: %.1f%%", dim.name, dim.score))
		} else if dim.score < weaknessThreshold {
			feedback.Weaknesses = append(feedback.Weaknesses, fmt.Sprintf("Low %s: %.1f%%", dim.name, dim.score))
		}
	}

	if missing := MissingSkills(job.SkillsRequired, entities.Skills); len(missing) > 0 {
		if len(missing) > maxSuggestedSkills {
			missing = missing[:maxSuggestedSkills]
		}
		feedback.Suggestions = append(feedback.Suggestions,
			fmt.Sprintf("Consider highlighting these skills if you have them: %s", strings.Join(missing, ", ")))
	}

	return feedback
}

// MissingSkills returns required skills the candidate lacks, compared
// case-insensitively and sorted lexicographically for determinism.
func MissingSkills(requiredSkills, candidateSkills []string) []string {
	candidateSet := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		candidateSet[strings.ToLower(skill)] = true
	}

	seen := make(map[string]bool, len(requiredSkills))
	var missing []string
	for _, skill := range requiredSkills {
		lower := strings.ToLower(skill)
		if !candidateSet[lower] && !seen[lower] {
			seen[lower] = true
			missing = append(missing, lower)
		}
	}

	sort.Strings(missing)
	return missing
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
