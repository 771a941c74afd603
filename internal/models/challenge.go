package models

import "time"

// DailyChallenge is a fixed question set for one calendar date, shared by all users.
type DailyChallenge struct {
	Date        string    `json:"date"` // YYYY-MM-DD
	QuestionIDs []int64   `json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChallengeAttempt struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	ChallengeDate string    `json:"challenge_date"`
	Correct       int       `json:"correct"`
	Total         int       `json:"total"`
	Perfect       bool      `json:"perfect"`
	CreatedAt     time.Time `json:"created_at"`
}
