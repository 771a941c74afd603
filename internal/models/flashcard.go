package models

import "time"

type Flashcard struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Subject   string    `json:"subject"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewRecord is one review event for one flashcard. History is append-only:
// the latest record for a card carries its current scheduling state.
type ReviewRecord struct {
	ID             int64     `json:"id"`
	FlashcardID    int64     `json:"flashcard_id"`
	ReviewDate     time.Time `json:"review_date"`
	Rating         string    `json:"rating"`
	Quality        int       `json:"quality"`
	EaseFactor     float64   `json:"ease_factor"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// Schedule is the scheduling state computed for a card after a review.
type Schedule struct {
	IntervalDays   int       `json:"interval_days"`
	EaseFactor     float64   `json:"ease_factor"`
	Repetitions    int       `json:"repetitions"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// DateOnly truncates a timestamp to calendar-day granularity in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
