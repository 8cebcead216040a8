package services

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"

	"hireflow/ats-engine/internal/models"
)

// ScoringService holds the four independent resume scorers. Every score is
// bounded to [0,100] and computed purely from its inputs.
type ScoringService interface {
	SkillMatch(candidateSkills, requiredSkills, preferredSkills []string) float64
	ExperienceMatch(resumeText string, job *models.Job) float64
	EducationMatch(education []string, requirements []string) float64
	KeywordMatch(resumeText string, job *models.Job) float64
}

type scoringService struct {
	similarity VectorSimilarity
}

func NewScoringService(similarity VectorSimilarity) ScoringService {
	return &scoringService{similarity: similarity}
}

// SkillMatch weighs required skills up to 70 points and preferred skills up
// to 30. A job with no required skills short-circuits to a perfect score.
func (s *scoringService) SkillMatch(candidateSkills, requiredSkills, preferredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 100.0
	}

	candidateSet := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		candidateSet[strings.ToLower(skill)] = true
	}

	requiredMatched := 0
	for _, skill := range requiredSkills {
		if candidateSet[strings.ToLower(skill)] {
			requiredMatched++
		}
	}

	preferredMatched := 0
	for _, skill := range preferredSkills {
		if candidateSet[strings.ToLower(skill)] {
			preferredMatched++
		}
	}

	requiredScore := float64(requiredMatched) / float64(len(requiredSkills)) * 70

	// No preferred skills listed means vacuous full credit.
	preferredScore := 30.0
	if len(preferredSkills) > 0 {
		preferredScore = float64(preferredMatched) / float64(len(preferredSkills)) * 30
	}

	return math.Min(requiredScore+preferredScore, 100)
}

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`)

// ExtractExperienceYears scans resume text for "<N>+ years of experience"
// phrases and returns the largest N. ok is false when no phrase is found.
func ExtractExperienceYears(resumeText string) (int, bool) {
	matches := yearsPattern.FindAllStringSubmatch(strings.ToLower(resumeText), -1)
	if len(matches) == 0 {
		return 0, false
	}

	maxYears := 0
	for _, m := range matches {
		if years, err := strconv.Atoi(m[1]); err == nil && years > maxYears {
			maxYears = years
		}
	}
	return maxYears, true
}

// ExperienceMatch scores the candidate's stated years of experience against
// the job's range. Being under the minimum is penalized 20 points per year
// (floor 0); overqualification costs 10 points per year (floor 60).
func (s *scoringService) ExperienceMatch(resumeText string, job *models.Job) float64 {
	candidateYears, ok := ExtractExperienceYears(resumeText)
	if !ok {
		// Neutral default when the resume states no experience figure.
		return 50.0
	}

	minYears := job.ExperienceMinYears
	maxYears := minYears + 5
	if job.ExperienceMaxYears != nil {
		maxYears = *job.ExperienceMaxYears
	}

	switch {
	case candidateYears < minYears:
		return math.Max(0, 100-float64(minYears-candidateYears)*20)
	case candidateYears > maxYears:
		return math.Max(60, 100-float64(candidateYears-maxYears)*10)
	default:
		return 100.0
	}
}

var educationKeywords = []string{"bachelor", "master", "phd", "degree", "diploma", "certification"}

// EducationMatch derives the job's implied credentials from its requirement
// text and checks them against the candidate's education mentions. A job
// that implies no credential passes vacuously.
func (s *scoringService) EducationMatch(education []string, requirements []string) float64 {
	reqText := strings.ToLower(strings.Join(requirements, " "))

	var requiredEducation []string
	for _, keyword := range educationKeywords {
		if strings.Contains(reqText, keyword) {
			requiredEducation = append(requiredEducation, keyword)
		}
	}

	if len(requiredEducation) == 0 {
		return 100.0
	}

	educationText := strings.ToLower(strings.Join(education, " "))
	matched := 0
	for _, keyword := range requiredEducation {
		if strings.Contains(educationText, keyword) {
			matched++
		}
	}

	return float64(matched) / float64(len(requiredEducation)) * 100
}

// KeywordMatch scores lexical overlap between the combined job text and the
// resume, preferring TF-IDF cosine similarity and degrading to plain keyword
// overlap. Any runtime failure yields a neutral 50.
func (s *scoringService) KeywordMatch(resumeText string, job *models.Job) float64 {
	if s.similarity == nil || !s.similarity.Available() {
		return keywordOverlapScore(resumeText, job)
	}

	jobText := strings.Join([]string{
		job.Title,
		job.Description,
		strings.Join(job.Requirements, " "),
		strings.Join(job.Responsibilities, " "),
	}, " ")

	similarity, err := s.similarity.Similarity(jobText, resumeText)
	if err != nil {
		log.Printf("⚠️  TF-IDF similarity failed: %v\n", err)
		return 50.0
	}

	return math.Min(similarity*100, 100)
}

func keywordOverlapScore(resumeText string, job *models.Job) float64 {
	keywords := []string{strings.ToLower(job.Title)}
	for i, req := range job.Requirements {
		if i >= 5 {
			break
		}
		keywords = append(keywords, strings.ToLower(req))
	}

	if len(keywords) == 0 {
		return 50.0
	}

	resumeLower := strings.ToLower(resumeText)
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(resumeLower, keyword) {
			matches++
		}
	}

	return math.Min(float64(matches)/float64(len(keywords))*100, 100)
}
