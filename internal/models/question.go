package models

import "time"

type Question struct {
	ID          int64     `json:"id"`
	Subject     string    `json:"subject"`
	Prompt      string    `json:"prompt"`
	Options     []string  `json:"options"`
	AnswerIndex int       `json:"answer_index"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

type QuestionFilter struct {
	Subject string
	Limit   int
	Offset  int
	Random  bool
}

// AnswerRecord is one answered question. History is append-only.
type AnswerRecord struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	QuestionID    int64     `json:"question_id"`
	ExamID        *int64    `json:"exam_id,omitempty"`
	SelectedIndex int       `json:"selected_index"`
	WasCorrect    bool      `json:"was_correct"`
	Source        string    `json:"source"` // "practice", "exam", "challenge"
	AnsweredAt    time.Time `json:"answered_at"`
}
