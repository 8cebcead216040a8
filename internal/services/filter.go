package services

import (
	"sort"
	"strings"
	"time"

	"hireflow/ats-engine/internal/models"
)

// FilterService narrows and orders collections of already-scored
// applications. It is a downstream consumer of scoring output, not part of
// the scoring pipeline itself.
type FilterService interface {
	FilterApplications(apps []models.Application, criteria models.FilterCriteria) []models.Application
	RankApplications(apps []models.Application, criterion string) []models.Application
}

type filterService struct{}

func NewFilterService() FilterService {
	return &filterService{}
}

// FilterApplications applies each present criterion as an AND predicate.
// Absent criteria are no-ops.
func (f *filterService) FilterApplications(apps []models.Application, criteria models.FilterCriteria) []models.Application {
	filtered := make([]models.Application, 0, len(apps))

	statusSet := make(map[string]bool, len(criteria.Status))
	for _, status := range criteria.Status {
		statusSet[status] = true
	}

	for _, app := range apps {
		if criteria.MinScore != nil && (app.ATSScore == nil || *app.ATSScore < *criteria.MinScore) {
			continue
		}
		if criteria.MaxScore != nil && (app.ATSScore == nil || *app.ATSScore > *criteria.MaxScore) {
			continue
		}
		if len(criteria.Skills) > 0 && !hasAllSkills(app.CandidateSkills, criteria.Skills) {
			continue
		}
		if criteria.ExperienceMin != nil && app.ExperienceYears < *criteria.ExperienceMin {
			continue
		}
		if len(statusSet) > 0 && !statusSet[string(app.Status)] {
			continue
		}
		filtered = append(filtered, app)
	}

	return filtered
}

// RankApplications stable-sorts descending by the given criterion. Missing
// values rank as zero; an unknown criterion returns the input unchanged.
func (f *filterService) RankApplications(apps []models.Application, criterion string) []models.Application {
	var key func(app *models.Application) float64

	switch criterion {
	case "ats_score":
		key = func(app *models.Application) float64 {
			if app.ATSScore == nil {
				return 0
			}
			return *app.ATSScore
		}
	case "experience":
		key = func(app *models.Application) float64 {
			return float64(app.ExperienceYears)
		}
	case "skill_match":
		key = func(app *models.Application) float64 {
			if app.SkillMatchScore == nil {
				return 0
			}
			return *app.SkillMatchScore
		}
	case "recent":
		key = func(app *models.Application) float64 {
			if app.SubmittedAt == nil {
				return float64(time.Time{}.UnixNano())
			}
			return float64(app.SubmittedAt.UnixNano())
		}
	default:
		return apps
	}

	ranked := make([]models.Application, len(apps))
	copy(ranked, apps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(&ranked[i]) > key(&ranked[j])
	})

	return ranked
}

func hasAllSkills(candidateSkills, requiredSkills []string) bool {
	candidateSet := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		candidateSet[strings.ToLower(skill)] = true
	}

	for _, skill := range requiredSkills {
		if !candidateSet[strings.ToLower(skill)] {
			return false
		}
	}
	return true
}
