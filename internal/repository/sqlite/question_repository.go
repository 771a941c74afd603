package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new QuestionRepository implementation
func NewQuestionRepository(db *sql.DB) repository.QuestionRepository {
	return &questionRepository{db: db}
}

func encodeOptions(options []string) (string, error) {
	b, err := json.Marshal(options)
	return string(b), err
}

func decodeOptions(raw string) []string {
	var options []string
	// Corrupt rows decode to an empty option list rather than failing reads.
	_ = json.Unmarshal([]byte(raw), &options)
	return options
}

func (r *questionRepository) Insert(ctx context.Context, q models.Question) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	options, err := encodeOptions(q.Options)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO questions (subject, prompt, options, answer_index, explanation)
VALUES (?, ?, ?, ?, ?)
`, q.Subject, q.Prompt, options, q.AnswerIndex, q.Explanation)
	if err != nil {
		log.Error("failed to insert question: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}

func (r *questionRepository) InsertBatch(ctx context.Context, questions []models.Question) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("inserting %d questions", len(questions))

	inserted := 0
	err := tx(ctx, r.db, func(t *sql.Tx) error {
		stmt, err := t.PrepareContext(ctx, `
INSERT INTO questions (subject, prompt, options, answer_index, explanation)
VALUES (?, ?, ?, ?, ?)
`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, q := range questions {
			options, err := encodeOptions(q.Options)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, q.Subject, q.Prompt, options, q.AnswerIndex, q.Explanation); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		log.Error("failed to insert question batch: %v", err)
		return 0, err
	}
	log.Debug("inserted %d questions", inserted)
	return inserted, nil
}

const questionColumns = `id, subject, prompt, options, answer_index, explanation, created_at`

func scanQuestion(scanner interface{ Scan(...any) error }) (models.Question, error) {
	var q models.Question
	var options string
	err := scanner.Scan(&q.ID, &q.Subject, &q.Prompt, &options, &q.AnswerIndex, &q.Explanation, &q.CreatedAt)
	if err == nil {
		q.Options = decodeOptions(options)
	}
	return q, err
}

func (r *questionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	row := r.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("question not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query := sqlBuilder.Select(questionColumns).From("questions")
	if filter.Subject != "" {
		query = query.Where(squirrel.Eq{"subject": filter.Subject})
	}
	if filter.Random {
		query = query.OrderBy("RANDOM()")
	} else {
		query = query.OrderBy("id")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			log.Error("failed to scan question row: %v", err)
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *questionRepository) Count(ctx context.Context, subject string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	query := sqlBuilder.Select("COUNT(*)").From("questions")
	if subject != "" {
		query = query.Where(squirrel.Eq{"subject": subject})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count questions: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *questionRepository) RandomIDs(ctx context.Context, n int) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id FROM questions ORDER BY RANDOM() LIMIT ?`, n)
	if err != nil {
		log.Error("failed to pick random questions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *questionRepository) InsertAnswer(ctx context.Context, rec models.AnswerRecord) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("question_repo")
	log.Debug("recording answer: user_id=%d, question_id=%d, correct=%t", rec.UserID, rec.QuestionID, rec.WasCorrect)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO answer_history (user_id, question_id, exam_id, selected_index, was_correct, source)
VALUES (?, ?, ?, ?, ?, ?)
`, rec.UserID, rec.QuestionID, rec.ExamID, rec.SelectedIndex, rec.WasCorrect, rec.Source)
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	return res.LastInsertId()
}
