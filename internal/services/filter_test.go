package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/ats-engine/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func scoredApp(name string, score float64) models.Application {
	return models.Application{CandidateName: name, ATSScore: floatPtr(score)}
}

func TestFilterApplications(t *testing.T) {
	filter := NewFilterService()

	apps := []models.Application{
		{
			CandidateName:   "high",
			ATSScore:        floatPtr(85),
			CandidateSkills: []string{"Python", "Docker"},
			ExperienceYears: 6,
			Status:          models.StatusShortlisted,
		},
		{
			CandidateName:   "mid",
			ATSScore:        floatPtr(65),
			CandidateSkills: []string{"Python"},
			ExperienceYears: 3,
			Status:          models.StatusUnderReview,
		},
		{
			CandidateName: "unscored",
			Status:        models.StatusSubmitted,
		},
	}

	t.Run("empty criteria keeps everything", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{})
		assert.Len(t, got, 3)
	})

	t.Run("min score excludes unscored applications", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{MinScore: floatPtr(60)})
		require.Len(t, got, 2)
		assert.Equal(t, "high", got[0].CandidateName)
		assert.Equal(t, "mid", got[1].CandidateName)
	})

	t.Run("max score excludes unscored applications", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{MaxScore: floatPtr(70)})
		require.Len(t, got, 1)
		assert.Equal(t, "mid", got[0].CandidateName)
	})

	t.Run("skills require all listed", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{Skills: []string{"python", "DOCKER"}})
		require.Len(t, got, 1)
		assert.Equal(t, "high", got[0].CandidateName)
	})

	t.Run("experience minimum", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{ExperienceMin: intPtr(4)})
		require.Len(t, got, 1)
		assert.Equal(t, "high", got[0].CandidateName)
	})

	t.Run("status set", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{
			Status: []string{"shortlisted", "under_review"},
		})
		assert.Len(t, got, 2)
	})

	t.Run("criteria combine as AND", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{
			MinScore: floatPtr(60),
			Skills:   []string{"Docker"},
		})
		require.Len(t, got, 1)
		assert.Equal(t, "high", got[0].CandidateName)
	})

	t.Run("no match yields empty non-nil slice", func(t *testing.T) {
		got := filter.FilterApplications(apps, models.FilterCriteria{MinScore: floatPtr(99)})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestRankApplications(t *testing.T) {
	filter := NewFilterService()

	t.Run("by ats score descending, nil ranks last", func(t *testing.T) {
		apps := []models.Application{
			scoredApp("b", 70),
			{CandidateName: "unscored"},
			scoredApp("a", 90),
		}

		got := filter.RankApplications(apps, "ats_score")
		require.Len(t, got, 3)
		assert.Equal(t, "a", got[0].CandidateName)
		assert.Equal(t, "b", got[1].CandidateName)
		assert.Equal(t, "unscored", got[2].CandidateName)
	})

	t.Run("by experience", func(t *testing.T) {
		apps := []models.Application{
			{CandidateName: "junior", ExperienceYears: 2},
			{CandidateName: "senior", ExperienceYears: 9},
		}

		got := filter.RankApplications(apps, "experience")
		assert.Equal(t, "senior", got[0].CandidateName)
	})

	t.Run("by skill match", func(t *testing.T) {
		apps := []models.Application{
			{CandidateName: "weak", SkillMatchScore: floatPtr(40)},
			{CandidateName: "strong", SkillMatchScore: floatPtr(95)},
			{CandidateName: "unscored"},
		}

		got := filter.RankApplications(apps, "skill_match")
		assert.Equal(t, "strong", got[0].CandidateName)
		assert.Equal(t, "unscored", got[2].CandidateName)
	})

	t.Run("by recency, nil submission ranks last", func(t *testing.T) {
		now := time.Now()
		apps := []models.Application{
			{CandidateName: "older", SubmittedAt: timePtr(now.Add(-48 * time.Hour))},
			{CandidateName: "never"},
			{CandidateName: "newer", SubmittedAt: timePtr(now)},
		}

		got := filter.RankApplications(apps, "recent")
		assert.Equal(t, "newer", got[0].CandidateName)
		assert.Equal(t, "older", got[1].CandidateName)
		assert.Equal(t, "never", got[2].CandidateName)
	})

	t.Run("equal keys keep input order", func(t *testing.T) {
		apps := []models.Application{
			scoredApp("first", 80),
			scoredApp("second", 80),
			scoredApp("third", 80),
		}

		got := filter.RankApplications(apps, "ats_score")
		assert.Equal(t, "first", got[0].CandidateName)
		assert.Equal(t, "second", got[1].CandidateName)
		assert.Equal(t, "third", got[2].CandidateName)
	})

	t.Run("unknown criterion returns input unchanged", func(t *testing.T) {
		apps := []models.Application{
			scoredApp("b", 70),
			scoredApp("a", 90),
		}

		got := filter.RankApplications(apps, "shoe_size")
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].CandidateName)
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		apps := []models.Application{
			scoredApp("low", 10),
			scoredApp("high", 99),
		}

		filter.RankApplications(apps, "ats_score")
		assert.Equal(t, "low", apps[0].CandidateName)
	})
}
