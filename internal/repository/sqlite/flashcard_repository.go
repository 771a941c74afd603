package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: user_id=%d, subject=%s", c.UserID, c.Subject)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (user_id, subject, front, back)
VALUES (?, ?, ?, ?)
`, c.UserID, c.Subject, c.Front, c.Back)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get flashcard id: %v", err)
		return 0, err
	}
	log.Debug("flashcard inserted: id=%d", id)
	return id, nil
}

func (r *flashcardRepository) Get(ctx context.Context, id int64, userID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var c models.Flashcard
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, subject, front, back, created_at
FROM flashcards
WHERE id = ? AND user_id = ?
`, id, userID).Scan(&c.ID, &c.UserID, &c.Subject, &c.Front, &c.Back, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepository) ListByUser(ctx context.Context, userID int64) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, subject, front, back, created_at
FROM flashcards
WHERE user_id = ?
ORDER BY id
`, userID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.UserID, &c.Subject, &c.Front, &c.Back, &c.CreatedAt); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards for user %d", len(cards), userID)
	return cards, rows.Err()
}

func (r *flashcardRepository) AppendReview(ctx context.Context, rec models.ReviewRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("appending review: flashcard_id=%d, rating=%s, interval=%d", rec.FlashcardID, rec.Rating, rec.IntervalDays)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (flashcard_id, review_date, rating, quality, ease_factor, interval_days, repetitions, next_review_date)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.FlashcardID, rec.ReviewDate, rec.Rating, rec.Quality, rec.EaseFactor, rec.IntervalDays, rec.Repetitions, rec.NextReviewDate)
	if err != nil {
		log.Error("failed to append review: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

const reviewColumns = `id, flashcard_id, review_date, rating, quality, ease_factor, interval_days, repetitions, next_review_date, created_at`

func scanReview(scanner interface{ Scan(...any) error }) (models.ReviewRecord, error) {
	var rec models.ReviewRecord
	err := scanner.Scan(&rec.ID, &rec.FlashcardID, &rec.ReviewDate, &rec.Rating, &rec.Quality,
		&rec.EaseFactor, &rec.IntervalDays, &rec.Repetitions, &rec.NextReviewDate, &rec.CreatedAt)
	return rec, err
}

func (r *flashcardRepository) LatestReview(ctx context.Context, flashcardID int64) (*models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+reviewColumns+`
FROM review_history
WHERE flashcard_id = ?
ORDER BY id DESC
LIMIT 1
`, flashcardID)
	rec, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get latest review: %v", err)
		return nil, err
	}
	return &rec, nil
}

func (r *flashcardRepository) ReviewHistory(ctx context.Context, flashcardID int64) ([]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT `+reviewColumns+`
FROM review_history
WHERE flashcard_id = ?
ORDER BY id
`, flashcardID)
	if err != nil {
		log.Error("failed to query review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.ReviewRecord
	for rows.Next() {
		rec, err := scanReview(rows)
		if err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *flashcardRepository) UserReviewHistory(ctx context.Context, userID int64) (map[int64][]models.ReviewRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT rh.id, rh.flashcard_id, rh.review_date, rh.rating, rh.quality, rh.ease_factor, rh.interval_days, rh.repetitions, rh.next_review_date, rh.created_at
FROM review_history rh
JOIN flashcards f ON f.id = rh.flashcard_id
WHERE f.user_id = ?
ORDER BY rh.flashcard_id, rh.id
`, userID)
	if err != nil {
		log.Error("failed to query user review history: %v", err)
		return nil, err
	}
	defer rows.Close()

	history := make(map[int64][]models.ReviewRecord)
	for rows.Next() {
		rec, err := scanReview(rows)
		if err != nil {
			log.Error("failed to scan review row: %v", err)
			return nil, err
		}
		history[rec.FlashcardID] = append(history[rec.FlashcardID], rec)
	}
	return history, rows.Err()
}
