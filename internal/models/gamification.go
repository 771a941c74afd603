package models

import "time"

// UserGamificationState is the per-user reward state. Level is always derived
// from Points; both are stored so dashboards can read them in one row.
type UserGamificationState struct {
	UserID           int64      `json:"user_id"`
	Points           int        `json:"points"`
	Level            int        `json:"level"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// UserStatePatch carries a partial state update. Nil fields are preserved.
type UserStatePatch struct {
	Points           *int
	Level            *int
	CurrentStreak    *int
	LongestStreak    *int
	LastActivityDate *time.Time
}

// UserBadge is an earned badge. Badges are append-only and never revoked.
type UserBadge struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	BadgeID   string    `json:"badge_id"`
	Name      string    `json:"name"`
	Points    int       `json:"points"`
	AwardedAt time.Time `json:"awarded_at"`
}

// BadgeAggregates is the absolute-count snapshot badge rules are evaluated
// against. It is recomputed from full history on every evaluation, which keeps
// badge awards idempotent and re-derivable after a crash.
type BadgeAggregates struct {
	QuestionsAnswered int `json:"questions_answered"`
	MocksCompleted    int `json:"mocks_completed"`
	MocksHighScore    int `json:"mocks_high_score"`
	MocksPerfect      int `json:"mocks_perfect"`
	FlashcardReviews  int `json:"flashcard_reviews"`
	LongestStreak     int `json:"longest_streak"`
	SubjectsCovered   int `json:"subjects_covered"`
	SubjectsMastered  int `json:"subjects_mastered"`
	Level             int `json:"level"`
	Points            int `json:"points"`
}

// StreakInfo describes the streak transition produced by one activity.
type StreakInfo struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	Updated       bool `json:"updated"`
	Broken        bool `json:"broken"`
	BonusPoints   int  `json:"bonus_points"`
}

// RewardResult is what one processed activity earned the user.
type RewardResult struct {
	PointsAwarded int         `json:"points_awarded"`
	TotalPoints   int         `json:"total_points"`
	Level         int         `json:"level"`
	LeveledUp     bool        `json:"leveled_up"`
	NewBadges     []UserBadge `json:"new_badges"`
	Streak        StreakInfo  `json:"streak"`
}
