package repository

import (
	"context"

	"github.com/mhartley/sqeprep/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Upsert(ctx context.Context, username string) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

// FlashcardRepository handles flashcard and review-history data access.
// Review history is append-only; records are never mutated.
type FlashcardRepository interface {
	Insert(ctx context.Context, card models.Flashcard) (int64, error)
	Get(ctx context.Context, id int64, userID int64) (*models.Flashcard, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Flashcard, error)
	AppendReview(ctx context.Context, record models.ReviewRecord) (int64, error)
	LatestReview(ctx context.Context, flashcardID int64) (*models.ReviewRecord, error)
	ReviewHistory(ctx context.Context, flashcardID int64) ([]models.ReviewRecord, error)
	UserReviewHistory(ctx context.Context, userID int64) (map[int64][]models.ReviewRecord, error)
}

// QuestionRepository handles question bank data access
type QuestionRepository interface {
	Insert(ctx context.Context, q models.Question) (int64, error)
	InsertBatch(ctx context.Context, questions []models.Question) (int, error)
	Get(ctx context.Context, id int64) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	Count(ctx context.Context, subject string) (int, error)
	RandomIDs(ctx context.Context, n int) ([]int64, error)
	InsertAnswer(ctx context.Context, record models.AnswerRecord) (int64, error)
}

// ExamRepository handles mock exam session data access
type ExamRepository interface {
	InsertExam(ctx context.Context, exam models.MockExam) (int64, error)
	GetExam(ctx context.Context, id int64) (*models.MockExam, error)
	GetActiveExam(ctx context.Context, userID int64) (*models.MockExam, error)
	UpdateExam(ctx context.Context, exam models.MockExam) error
	ListExams(ctx context.Context, userID int64, limit int) ([]models.MockExam, error)
	Stats(ctx context.Context, userID int64) (*models.ExamStats, error)
}

// ChallengeRepository handles daily challenge data access
type ChallengeRepository interface {
	Get(ctx context.Context, date string) (*models.DailyChallenge, error)
	Insert(ctx context.Context, challenge models.DailyChallenge) error
	InsertAttempt(ctx context.Context, attempt models.ChallengeAttempt) (int64, error)
	AttemptFor(ctx context.Context, userID int64, date string) (*models.ChallengeAttempt, error)
}

// GamificationRepository is the Data Store collaborator of the gamification
// engine: state reads, merge-semantics partial updates, append-only badge
// awards, and the absolute aggregates badge rules are evaluated against.
type GamificationRepository interface {
	GetUserState(ctx context.Context, userID int64) (*models.UserGamificationState, error)
	UpdateUserState(ctx context.Context, userID int64, patch models.UserStatePatch) error
	ApplyRewards(ctx context.Context, userID int64, patch models.UserStatePatch, badges []models.UserBadge) ([]models.UserBadge, error)
	ListBadges(ctx context.Context, userID int64) ([]models.UserBadge, error)
	BadgeAggregates(ctx context.Context, userID int64) (*models.BadgeAggregates, error)
}

// StatsRepository handles dashboard aggregates and the stats cache
type StatsRepository interface {
	SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectAccuracyStat, error)
	DailyReviewCounts(ctx context.Context, userID int64, days int) ([]models.DailyReviewStat, error)
	Summary(ctx context.Context, userID int64) (*models.DashboardSummary, error)
	CachedDashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
	StoreDashboard(ctx context.Context, userID int64, dashboard models.Dashboard) error
}
