package models

import "time"

type MockExam struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	ScorePercent   float64    `json:"score_percent"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
}

type ExamStats struct {
	TotalExams      int     `json:"total_exams"`
	CompletedExams  int     `json:"completed_exams"`
	AverageScore    float64 `json:"average_score"`
	BestScore       float64 `json:"best_score"`
	HighScoreExams  int     `json:"high_score_exams"`
	PerfectExams    int     `json:"perfect_exams"`
	TotalQuestions  int     `json:"total_questions"`
	TotalCorrect    int     `json:"total_correct"`
	OverallAccuracy float64 `json:"overall_accuracy"`
}
