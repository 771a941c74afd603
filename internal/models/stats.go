package models

import "time"

type SubjectAccuracyStat struct {
	Subject  string  `json:"subject"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

type DailyReviewStat struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Reviews int    `json:"reviews"`
}

type DashboardSummary struct {
	TotalAnswered   int     `json:"total_answered"`
	OverallAccuracy float64 `json:"overall_accuracy"`
	CardsTotal      int     `json:"cards_total"`
	CardsDue        int     `json:"cards_due"`
	ExamsCompleted  int     `json:"exams_completed"`
	BestExamScore   float64 `json:"best_exam_score"`
	Points          int     `json:"points"`
	Level           int     `json:"level"`
	CurrentStreak   int     `json:"current_streak"`
	LongestStreak   int     `json:"longest_streak"`
	BadgeCount      int     `json:"badge_count"`
}

type Dashboard struct {
	Summary         DashboardSummary      `json:"summary"`
	SubjectAccuracy []SubjectAccuracyStat `json:"subject_accuracy"`
	ReviewActivity  []DailyReviewStat     `json:"review_activity"`
	RecentExams     []MockExam            `json:"recent_exams"`
	RefreshedAt     time.Time             `json:"refreshed_at"`
}
