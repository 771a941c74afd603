package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectAccuracyStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT q.subject, COUNT(*) AS attempts, SUM(ah.was_correct) AS correct
FROM answer_history ah
JOIN questions q ON q.id = ah.question_id
WHERE ah.user_id = ?
GROUP BY q.subject
ORDER BY q.subject
`, userID)
	if err != nil {
		log.Error("failed to query subject accuracy: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.SubjectAccuracyStat
	for rows.Next() {
		var s models.SubjectAccuracyStat
		if err := rows.Scan(&s.Subject, &s.Attempts, &s.Correct); err != nil {
			log.Error("failed to scan subject accuracy row: %v", err)
			return nil, err
		}
		if s.Attempts > 0 {
			s.Accuracy = 100.0 * float64(s.Correct) / float64(s.Attempts)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) DailyReviewCounts(ctx context.Context, userID int64, days int) ([]models.DailyReviewStat, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02")
	rows, err := r.db.QueryContext(ctx, `
SELECT date(rh.review_date) AS day, COUNT(*) AS reviews
FROM review_history rh
JOIN flashcards f ON f.id = rh.flashcard_id
WHERE f.user_id = ? AND date(rh.review_date) >= ?
GROUP BY day
ORDER BY day
`, userID, since)
	if err != nil {
		log.Error("failed to query review activity: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.DailyReviewStat
	for rows.Next() {
		var s models.DailyReviewStat
		if err := rows.Scan(&s.Date, &s.Reviews); err != nil {
			log.Error("failed to scan review activity row: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) Summary(ctx context.Context, userID int64) (*models.DashboardSummary, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var s models.DashboardSummary
	var correct int
	today := time.Now().Format("2006-01-02")
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM answer_history WHERE user_id = ?) AS total_answered,
    (SELECT COALESCE(SUM(was_correct), 0) FROM answer_history WHERE user_id = ?) AS total_correct,
    (SELECT COUNT(*) FROM flashcards WHERE user_id = ?) AS cards_total,
    (SELECT COUNT(*) FROM flashcards f WHERE f.user_id = ? AND date(COALESCE(
        (SELECT rh.next_review_date FROM review_history rh WHERE rh.flashcard_id = f.id ORDER BY rh.id DESC LIMIT 1),
        f.created_at)) <= ?) AS cards_due,
    (SELECT COUNT(*) FROM mock_exams WHERE user_id = ? AND completed_at IS NOT NULL) AS exams_completed,
    (SELECT COALESCE(MAX(score_percent), 0) FROM mock_exams WHERE user_id = ? AND completed_at IS NOT NULL) AS best_exam_score,
    (SELECT COUNT(*) FROM user_badges WHERE user_id = ?) AS badge_count
`, userID, userID, userID, userID, today, userID, userID, userID).Scan(
		&s.TotalAnswered,
		&correct,
		&s.CardsTotal,
		&s.CardsDue,
		&s.ExamsCompleted,
		&s.BestExamScore,
		&s.BadgeCount,
	)
	if err != nil {
		log.Error("failed to compute dashboard summary: %v", err)
		return nil, err
	}
	if s.TotalAnswered > 0 {
		s.OverallAccuracy = 100.0 * float64(correct) / float64(s.TotalAnswered)
	}

	// Points, level, and streaks come from gamification state when present.
	err = r.db.QueryRowContext(ctx, `
SELECT points, level, current_streak, longest_streak FROM user_gamification WHERE user_id = ?
`, userID).Scan(&s.Points, &s.Level, &s.CurrentStreak, &s.LongestStreak)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to read gamification state for summary: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) CachedDashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	var payload string
	err := r.db.QueryRowContext(ctx, `
SELECT payload FROM user_stats_cache WHERE user_id = ?
`, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to read stats cache: %v", err)
		return nil, err
	}

	var d models.Dashboard
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		// A corrupt cache entry is treated as a miss and rebuilt.
		log.Warn("corrupt stats cache for user %d: %v", userID, err)
		return nil, nil
	}
	return &d, nil
}

func (r *statsRepository) StoreDashboard(ctx context.Context, userID int64, dashboard models.Dashboard) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	payload, err := json.Marshal(dashboard)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO user_stats_cache (user_id, payload, refreshed_at) VALUES (?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET payload = excluded.payload, refreshed_at = excluded.refreshed_at
`, userID, string(payload), time.Now())
	if err != nil {
		log.Error("failed to store stats cache: %v", err)
	}
	return err
}
