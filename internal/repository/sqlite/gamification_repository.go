package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

type gamificationRepository struct {
	db *sql.DB
}

// NewGamificationRepository creates a new GamificationRepository implementation
func NewGamificationRepository(db *sql.DB) repository.GamificationRepository {
	return &gamificationRepository{db: db}
}

func (r *gamificationRepository) GetUserState(ctx context.Context, userID int64) (*models.UserGamificationState, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")

	var s models.UserGamificationState
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, points, level, current_streak, longest_streak, last_activity_date, updated_at
FROM user_gamification
WHERE user_id = ?
`, userID).Scan(&s.UserID, &s.Points, &s.Level, &s.CurrentStreak, &s.LongestStreak, &s.LastActivityDate, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no gamification state yet: user_id=%d", userID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user state: %v", err)
		return nil, err
	}
	return &s, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertUserState(ctx context.Context, ex execer, userID int64, patch models.UserStatePatch) error {
	if _, err := ex.ExecContext(ctx, `
INSERT INTO user_gamification (user_id) VALUES (?)
ON CONFLICT (user_id) DO NOTHING
`, userID); err != nil {
		return err
	}

	update := sqlBuilder.Update("user_gamification").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"user_id": userID})
	if patch.Points != nil {
		update = update.Set("points", *patch.Points)
	}
	if patch.Level != nil {
		update = update.Set("level", *patch.Level)
	}
	if patch.CurrentStreak != nil {
		update = update.Set("current_streak", *patch.CurrentStreak)
	}
	if patch.LongestStreak != nil {
		update = update.Set("longest_streak", *patch.LongestStreak)
	}
	if patch.LastActivityDate != nil {
		update = update.Set("last_activity_date", *patch.LastActivityDate)
	}

	sqlStr, args, err := update.ToSql()
	if err != nil {
		return err
	}
	_, err = ex.ExecContext(ctx, sqlStr, args...)
	return err
}

// UpdateUserState applies a partial update with merge semantics: nil patch
// fields leave the stored values untouched. The row is created on first use.
func (r *gamificationRepository) UpdateUserState(ctx context.Context, userID int64, patch models.UserStatePatch) error {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")

	if err := upsertUserState(ctx, r.db, userID, patch); err != nil {
		log.Error("failed to update user state: %v", err)
		return err
	}
	return nil
}

// ApplyRewards persists the state patch and any newly earned badge rows in a
// single transaction, so a failed write leaves no partial reward behind.
// UNIQUE(user_id, badge_id) makes badge inserts idempotent on retry.
func (r *gamificationRepository) ApplyRewards(ctx context.Context, userID int64, patch models.UserStatePatch, badges []models.UserBadge) ([]models.UserBadge, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")

	awarded := make([]models.UserBadge, 0, len(badges))
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		if err := upsertUserState(ctx, tx, userID, patch); err != nil {
			return err
		}
		for _, b := range badges {
			log.Debug("awarding badge: user_id=%d, badge=%s", userID, b.BadgeID)
			res, err := tx.ExecContext(ctx, `
INSERT INTO user_badges (user_id, badge_id, points) VALUES (?, ?, ?)
ON CONFLICT (user_id, badge_id) DO NOTHING
`, userID, b.BadgeID, b.Points)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			b.ID = id
			b.UserID = userID
			b.AwardedAt = time.Now()
			awarded = append(awarded, b)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to apply rewards: %v", err)
		return nil, err
	}
	return awarded, nil
}

func (r *gamificationRepository) ListBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, badge_id, points, awarded_at
FROM user_badges
WHERE user_id = ?
ORDER BY id
`, userID)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, err
	}
	defer rows.Close()

	var badges []models.UserBadge
	for rows.Next() {
		var b models.UserBadge
		if err := rows.Scan(&b.ID, &b.UserID, &b.BadgeID, &b.Points, &b.AwardedAt); err != nil {
			log.Error("failed to scan badge row: %v", err)
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

// BadgeAggregates recomputes from full history the absolute counts that badge
// rules threshold against. Streak, points, and level are filled in by the
// caller from the freshly computed state.
func (r *gamificationRepository) BadgeAggregates(ctx context.Context, userID int64) (*models.BadgeAggregates, error) {
	log := logger.FromContext(ctx).WithPrefix("gamification_repo")

	var agg models.BadgeAggregates
	err := r.db.QueryRowContext(ctx, `
SELECT
    (SELECT COUNT(*) FROM answer_history WHERE user_id = ?) AS questions_answered,
    (SELECT COUNT(*) FROM mock_exams WHERE user_id = ? AND completed_at IS NOT NULL) AS mocks_completed,
    (SELECT COUNT(*) FROM mock_exams WHERE user_id = ? AND completed_at IS NOT NULL AND score_percent >= 85) AS mocks_high_score,
    (SELECT COUNT(*) FROM mock_exams WHERE user_id = ? AND completed_at IS NOT NULL AND score_percent >= 100) AS mocks_perfect,
    (SELECT COUNT(*) FROM review_history rh JOIN flashcards f ON f.id = rh.flashcard_id WHERE f.user_id = ?) AS flashcard_reviews,
    (SELECT COUNT(DISTINCT q.subject) FROM answer_history ah JOIN questions q ON q.id = ah.question_id WHERE ah.user_id = ?) AS subjects_covered
`, userID, userID, userID, userID, userID, userID).Scan(
		&agg.QuestionsAnswered,
		&agg.MocksCompleted,
		&agg.MocksHighScore,
		&agg.MocksPerfect,
		&agg.FlashcardReviews,
		&agg.SubjectsCovered,
	)
	if err != nil {
		log.Error("failed to compute badge aggregates: %v", err)
		return nil, err
	}

	// Mastery: 90%+ accuracy over at least 50 attempts in a subject.
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM (
    SELECT q.subject
    FROM answer_history ah
    JOIN questions q ON q.id = ah.question_id
    WHERE ah.user_id = ?
    GROUP BY q.subject
    HAVING COUNT(*) >= 50 AND AVG(ah.was_correct) >= 0.9
)
`, userID).Scan(&agg.SubjectsMastered)
	if err != nil {
		log.Error("failed to compute subject mastery: %v", err)
		return nil, err
	}
	return &agg, nil
}
