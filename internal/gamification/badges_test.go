package gamification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/models"
)

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, rule := range gamification.Catalog {
		assert.False(t, seen[rule.ID], "duplicate badge id %s", rule.ID)
		seen[rule.ID] = true
		assert.NotEmpty(t, rule.Name)
		assert.Positive(t, rule.Points, "badge %s must carry a point value", rule.ID)
		assert.Positive(t, rule.Threshold, "badge %s must have a threshold", rule.ID)
	}
	assert.Len(t, gamification.Catalog, 30)
}

func TestNewlyEarned_WeekWarrior(t *testing.T) {
	agg := models.BadgeAggregates{LongestStreak: 7}

	earned := gamification.NewlyEarned(agg, nil)

	ids := make([]string, 0, len(earned))
	for _, rule := range earned {
		ids = append(ids, rule.ID)
	}
	assert.Contains(t, ids, "week_warrior")
	assert.Contains(t, ids, "streak_starter")
	assert.NotContains(t, ids, "fortnight_focus")
}

func TestNewlyEarned_SkipsAlreadyEarned(t *testing.T) {
	agg := models.BadgeAggregates{LongestStreak: 7}
	earned := map[string]bool{"week_warrior": true, "streak_starter": true}

	newRules := gamification.NewlyEarned(agg, earned)

	for _, rule := range newRules {
		assert.False(t, earned[rule.ID], "already-earned badge %s must not be re-awarded", rule.ID)
	}
	assert.Empty(t, newRules)
}

func TestNewlyEarned_MonotoneUnderGrowingAggregates(t *testing.T) {
	// The badge set only grows: replaying evaluation with non-decreasing
	// aggregates never produces a badge that was previously awarded.
	earned := make(map[string]bool)
	steps := []models.BadgeAggregates{
		{QuestionsAnswered: 10},
		{QuestionsAnswered: 120, LongestStreak: 3},
		{QuestionsAnswered: 600, LongestStreak: 7, MocksCompleted: 1},
		{QuestionsAnswered: 600, LongestStreak: 7, MocksCompleted: 1}, // replay
		{QuestionsAnswered: 1200, LongestStreak: 14, MocksCompleted: 5, Points: 1500},
	}

	total := 0
	for i, agg := range steps {
		newRules := gamification.NewlyEarned(agg, earned)
		if i == 3 {
			assert.Empty(t, newRules, "replaying identical aggregates must award nothing")
		}
		for _, rule := range newRules {
			require.False(t, earned[rule.ID])
			earned[rule.ID] = true
			total++
		}
	}
	assert.Equal(t, len(earned), total)
}

func TestNewlyEarned_SubjectMastery(t *testing.T) {
	agg := models.BadgeAggregates{SubjectsMastered: 5, SubjectsCovered: 16}

	earned := gamification.NewlyEarned(agg, nil)

	ids := make(map[string]bool)
	for _, rule := range earned {
		ids[rule.ID] = true
	}
	assert.True(t, ids["subject_specialist"])
	assert.True(t, ids["multi_specialist"])
	assert.True(t, ids["full_coverage"])
	assert.False(t, ids["total_mastery"])
}

func TestRuleByID(t *testing.T) {
	rule, ok := gamification.RuleByID("week_warrior")
	require.True(t, ok)
	assert.Equal(t, gamification.MetricStreakDays, rule.Metric)
	assert.Equal(t, 7, rule.Threshold)

	_, ok = gamification.RuleByID("nonexistent")
	assert.False(t, ok)
}

func TestMetricValue_CoversAllCatalogMetrics(t *testing.T) {
	agg := models.BadgeAggregates{
		QuestionsAnswered: 1,
		MocksCompleted:    2,
		MocksHighScore:    3,
		MocksPerfect:      4,
		FlashcardReviews:  5,
		LongestStreak:     6,
		SubjectsCovered:   7,
		SubjectsMastered:  8,
		Level:             9,
		Points:            10,
	}
	for _, rule := range gamification.Catalog {
		assert.Positive(t, gamification.MetricValue(agg, rule.Metric),
			"metric %s for badge %s reads no aggregate", rule.Metric, rule.ID)
	}
}
