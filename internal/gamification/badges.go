package gamification

import "github.com/mhartley/sqeprep/internal/models"

// Metric names an aggregate a badge rule thresholds against. All metrics are
// absolute counts recomputed from history, never incremental deltas, so badge
// evaluation is idempotent and safe to re-run.
type Metric string

const (
	MetricQuestionsAnswered Metric = "questions_answered"
	MetricMocksCompleted    Metric = "mocks_completed"
	MetricMocksHighScore    Metric = "mocks_high_score"
	MetricMocksPerfect      Metric = "mocks_perfect"
	MetricFlashcardReviews  Metric = "flashcard_reviews"
	MetricStreakDays        Metric = "streak_days"
	MetricSubjectsCovered   Metric = "subjects_covered"
	MetricSubjectsMastered  Metric = "subjects_mastered"
	MetricLevel             Metric = "level"
	MetricPoints            Metric = "points"
)

// BadgeRule is one entry in the badge catalog: the badge is earned once the
// metric reaches the threshold, and its point value is added in the same
// update that awards it.
type BadgeRule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Metric      Metric `json:"metric"`
	Threshold   int    `json:"threshold"`
}

// Catalog is the fixed badge catalog. Badges, once earned, are never revoked.
var Catalog = []BadgeRule{
	// Questions answered
	{ID: "first_steps", Name: "First Steps", Description: "Answer 10 questions", Points: 25, Metric: MetricQuestionsAnswered, Threshold: 10},
	{ID: "century", Name: "Century", Description: "Answer 100 questions", Points: 50, Metric: MetricQuestionsAnswered, Threshold: 100},
	{ID: "dedicated_scholar", Name: "Dedicated Scholar", Description: "Answer 500 questions", Points: 100, Metric: MetricQuestionsAnswered, Threshold: 500},
	{ID: "question_expert", Name: "Question Expert", Description: "Answer 1,000 questions", Points: 200, Metric: MetricQuestionsAnswered, Threshold: 1000},
	{ID: "question_master", Name: "Question Master", Description: "Answer 5,000 questions", Points: 500, Metric: MetricQuestionsAnswered, Threshold: 5000},

	// Mock exams
	{ID: "first_mock", Name: "Into the Deep End", Description: "Complete your first mock exam", Points: 50, Metric: MetricMocksCompleted, Threshold: 1},
	{ID: "mock_regular", Name: "Mock Regular", Description: "Complete 5 mock exams", Points: 100, Metric: MetricMocksCompleted, Threshold: 5},
	{ID: "mock_veteran", Name: "Mock Veteran", Description: "Complete 10 mock exams", Points: 150, Metric: MetricMocksCompleted, Threshold: 10},
	{ID: "mock_marathon", Name: "Mock Marathon", Description: "Complete 25 mock exams", Points: 300, Metric: MetricMocksCompleted, Threshold: 25},
	{ID: "high_flyer", Name: "High Flyer", Description: "Score 85%+ on 5 mock exams", Points: 150, Metric: MetricMocksHighScore, Threshold: 5},
	{ID: "distinction", Name: "Distinction", Description: "Score 85%+ on 10 mock exams", Points: 250, Metric: MetricMocksHighScore, Threshold: 10},
	{ID: "flawless", Name: "Flawless", Description: "Score 100% on a mock exam", Points: 100, Metric: MetricMocksPerfect, Threshold: 1},
	{ID: "perfectionist", Name: "Perfectionist", Description: "Score 100% on 10 mock exams", Points: 400, Metric: MetricMocksPerfect, Threshold: 10},

	// Flashcards
	{ID: "card_curious", Name: "Card Curious", Description: "Review 50 flashcards", Points: 25, Metric: MetricFlashcardReviews, Threshold: 50},
	{ID: "card_collector", Name: "Card Collector", Description: "Review 250 flashcards", Points: 75, Metric: MetricFlashcardReviews, Threshold: 250},
	{ID: "memory_machine", Name: "Memory Machine", Description: "Review 1,000 flashcards", Points: 200, Metric: MetricFlashcardReviews, Threshold: 1000},

	// Streaks
	{ID: "streak_starter", Name: "Streak Starter", Description: "Study 3 days in a row", Points: 25, Metric: MetricStreakDays, Threshold: 3},
	{ID: "week_warrior", Name: "Week Warrior", Description: "Study 7 days in a row", Points: 75, Metric: MetricStreakDays, Threshold: 7},
	{ID: "fortnight_focus", Name: "Fortnight Focus", Description: "Study 14 days in a row", Points: 150, Metric: MetricStreakDays, Threshold: 14},
	{ID: "monthly_master", Name: "Monthly Master", Description: "Study 30 days in a row", Points: 300, Metric: MetricStreakDays, Threshold: 30},
	{ID: "centurion", Name: "Centurion", Description: "Study 100 days in a row", Points: 1000, Metric: MetricStreakDays, Threshold: 100},

	// Subject coverage and mastery
	{ID: "full_coverage", Name: "Full Coverage", Description: "Answer questions in all 16 subjects", Points: 200, Metric: MetricSubjectsCovered, Threshold: 16},
	{ID: "subject_specialist", Name: "Subject Specialist", Description: "Reach 90% accuracy in a subject (50+ attempts)", Points: 150, Metric: MetricSubjectsMastered, Threshold: 1},
	{ID: "multi_specialist", Name: "Multi-Specialist", Description: "Master 5 subjects", Points: 400, Metric: MetricSubjectsMastered, Threshold: 5},
	{ID: "total_mastery", Name: "Total Mastery", Description: "Master all 16 subjects", Points: 1000, Metric: MetricSubjectsMastered, Threshold: 16},

	// Level milestones
	{ID: "halfway_there", Name: "Halfway There", Description: "Reach level 5", Points: 100, Metric: MetricLevel, Threshold: 5},
	{ID: "summit", Name: "Summit", Description: "Reach level 10", Points: 500, Metric: MetricLevel, Threshold: 10},

	// Point milestones
	{ID: "rising_star", Name: "Rising Star", Description: "Earn 1,000 points", Points: 50, Metric: MetricPoints, Threshold: 1000},
	{ID: "powerhouse", Name: "Powerhouse", Description: "Earn 10,000 points", Points: 200, Metric: MetricPoints, Threshold: 10000},
	{ID: "legend", Name: "Legend", Description: "Earn 100,000 points", Points: 1000, Metric: MetricPoints, Threshold: 100000},
}

// MetricValue reads the aggregate a metric refers to.
func MetricValue(agg models.BadgeAggregates, metric Metric) int {
	switch metric {
	case MetricQuestionsAnswered:
		return agg.QuestionsAnswered
	case MetricMocksCompleted:
		return agg.MocksCompleted
	case MetricMocksHighScore:
		return agg.MocksHighScore
	case MetricMocksPerfect:
		return agg.MocksPerfect
	case MetricFlashcardReviews:
		return agg.FlashcardReviews
	case MetricStreakDays:
		return agg.LongestStreak
	case MetricSubjectsCovered:
		return agg.SubjectsCovered
	case MetricSubjectsMastered:
		return agg.SubjectsMastered
	case MetricLevel:
		return agg.Level
	case MetricPoints:
		return agg.Points
	default:
		return 0
	}
}

// Satisfied reports whether the aggregates meet this rule's threshold.
func (r BadgeRule) Satisfied(agg models.BadgeAggregates) bool {
	return MetricValue(agg, r.Metric) >= r.Threshold
}

// NewlyEarned scans the catalog and returns the rules whose condition is met
// and whose id is not already earned, in catalog order.
func NewlyEarned(agg models.BadgeAggregates, earned map[string]bool) []BadgeRule {
	var awarded []BadgeRule
	for _, rule := range Catalog {
		if earned[rule.ID] {
			continue
		}
		if rule.Satisfied(agg) {
			awarded = append(awarded, rule)
		}
	}
	return awarded
}

// RuleByID looks up a catalog entry.
func RuleByID(id string) (BadgeRule, bool) {
	for _, rule := range Catalog {
		if rule.ID == id {
			return rule, true
		}
	}
	return BadgeRule{}, false
}
