package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

type examRepository struct {
	db *sql.DB
}

// NewExamRepository creates a new ExamRepository implementation
func NewExamRepository(db *sql.DB) repository.ExamRepository {
	return &examRepository{db: db}
}

const examColumns = `id, user_id, total_questions, correct_answers, score_percent, started_at, completed_at`

func scanExam(scanner interface{ Scan(...any) error }) (models.MockExam, error) {
	var e models.MockExam
	err := scanner.Scan(&e.ID, &e.UserID, &e.TotalQuestions, &e.CorrectAnswers, &e.ScorePercent, &e.StartedAt, &e.CompletedAt)
	return e, err
}

func (r *examRepository) InsertExam(ctx context.Context, exam models.MockExam) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("inserting mock exam: user_id=%d", exam.UserID)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO mock_exams (user_id, total_questions, correct_answers, score_percent, started_at)
VALUES (?, ?, ?, ?, ?)
`, exam.UserID, exam.TotalQuestions, exam.CorrectAnswers, exam.ScorePercent, exam.StartedAt)
	if err != nil {
		log.Error("failed to insert mock exam: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *examRepository) GetExam(ctx context.Context, id int64) (*models.MockExam, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")

	row := r.db.QueryRowContext(ctx, `SELECT `+examColumns+` FROM mock_exams WHERE id = ?`, id)
	exam, err := scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get mock exam: %v", err)
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) GetActiveExam(ctx context.Context, userID int64) (*models.MockExam, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")

	row := r.db.QueryRowContext(ctx, `
SELECT `+examColumns+`
FROM mock_exams
WHERE user_id = ? AND completed_at IS NULL
ORDER BY id DESC
LIMIT 1
`, userID)
	exam, err := scanExam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get active exam: %v", err)
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) UpdateExam(ctx context.Context, exam models.MockExam) error {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")
	log.Debug("updating mock exam: id=%d, correct=%d/%d", exam.ID, exam.CorrectAnswers, exam.TotalQuestions)

	_, err := r.db.ExecContext(ctx, `
UPDATE mock_exams
SET total_questions = ?, correct_answers = ?, score_percent = ?, completed_at = ?
WHERE id = ?
`, exam.TotalQuestions, exam.CorrectAnswers, exam.ScorePercent, exam.CompletedAt, exam.ID)
	if err != nil {
		log.Error("failed to update mock exam: %v", err)
	}
	return err
}

func (r *examRepository) ListExams(ctx context.Context, userID int64, limit int) ([]models.MockExam, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")

	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT `+examColumns+`
FROM mock_exams
WHERE user_id = ?
ORDER BY id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to list exams: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exams []models.MockExam
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			log.Error("failed to scan exam row: %v", err)
			return nil, err
		}
		exams = append(exams, exam)
	}
	return exams, rows.Err()
}

func (r *examRepository) Stats(ctx context.Context, userID int64) (*models.ExamStats, error) {
	log := logger.FromContext(ctx).WithPrefix("exam_repo")

	var stats models.ExamStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*) AS total_exams,
    COUNT(completed_at) AS completed_exams,
    COALESCE(AVG(CASE WHEN completed_at IS NOT NULL THEN score_percent END), 0) AS average_score,
    COALESCE(MAX(CASE WHEN completed_at IS NOT NULL THEN score_percent END), 0) AS best_score,
    COUNT(CASE WHEN completed_at IS NOT NULL AND score_percent >= 85 THEN 1 END) AS high_score_exams,
    COUNT(CASE WHEN completed_at IS NOT NULL AND score_percent >= 100 THEN 1 END) AS perfect_exams,
    COALESCE(SUM(total_questions), 0) AS total_questions,
    COALESCE(SUM(correct_answers), 0) AS total_correct
FROM mock_exams
WHERE user_id = ?
`, userID).Scan(
		&stats.TotalExams,
		&stats.CompletedExams,
		&stats.AverageScore,
		&stats.BestScore,
		&stats.HighScoreExams,
		&stats.PerfectExams,
		&stats.TotalQuestions,
		&stats.TotalCorrect,
	)
	if err != nil {
		log.Error("failed to get exam stats: %v", err)
		return nil, err
	}
	if stats.TotalQuestions > 0 {
		stats.OverallAccuracy = 100.0 * float64(stats.TotalCorrect) / float64(stats.TotalQuestions)
	}
	return &stats, nil
}
