package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

type challengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository creates a new ChallengeRepository implementation
func NewChallengeRepository(db *sql.DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Get(ctx context.Context, date string) (*models.DailyChallenge, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")

	var c models.DailyChallenge
	var ids string
	err := r.db.QueryRowContext(ctx, `
SELECT date, question_ids, created_at FROM daily_challenges WHERE date = ?
`, date).Scan(&c.Date, &ids, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get daily challenge: %v", err)
		return nil, err
	}
	if err := json.Unmarshal([]byte(ids), &c.QuestionIDs); err != nil {
		log.Error("corrupt question_ids for challenge %s: %v", date, err)
		return nil, err
	}
	return &c, nil
}

func (r *challengeRepository) Insert(ctx context.Context, c models.DailyChallenge) error {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("inserting daily challenge: date=%s, questions=%d", c.Date, len(c.QuestionIDs))

	ids, err := json.Marshal(c.QuestionIDs)
	if err != nil {
		return err
	}
	// A concurrent rotation may have inserted today's challenge already.
	_, err = r.db.ExecContext(ctx, `
INSERT INTO daily_challenges (date, question_ids) VALUES (?, ?)
ON CONFLICT (date) DO NOTHING
`, c.Date, string(ids))
	if err != nil {
		log.Error("failed to insert daily challenge: %v", err)
	}
	return err
}

func (r *challengeRepository) InsertAttempt(ctx context.Context, a models.ChallengeAttempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")
	log.Debug("inserting challenge attempt: user_id=%d, date=%s, correct=%d/%d", a.UserID, a.ChallengeDate, a.Correct, a.Total)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO challenge_attempts (user_id, challenge_date, correct, total, perfect)
VALUES (?, ?, ?, ?, ?)
`, a.UserID, a.ChallengeDate, a.Correct, a.Total, a.Perfect)
	if err != nil {
		log.Error("failed to insert challenge attempt: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *challengeRepository) AttemptFor(ctx context.Context, userID int64, date string) (*models.ChallengeAttempt, error) {
	log := logger.FromContext(ctx).WithPrefix("challenge_repo")

	var a models.ChallengeAttempt
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, challenge_date, correct, total, perfect, created_at
FROM challenge_attempts
WHERE user_id = ? AND challenge_date = ?
`, userID, date).Scan(&a.ID, &a.UserID, &a.ChallengeDate, &a.Correct, &a.Total, &a.Perfect, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get challenge attempt: %v", err)
		return nil, err
	}
	return &a, nil
}
