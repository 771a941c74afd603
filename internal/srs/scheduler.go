package srs

import (
	"math"
	"time"

	"github.com/mhartley/sqeprep/internal/models"
)

// Rating is the user's self-assessed recall difficulty for a flashcard.
type Rating string

const (
	RatingAgain  Rating = "again"
	RatingHard   Rating = "hard"
	RatingMedium Rating = "medium"
	RatingEasy   Rating = "easy"
)

// Quality maps a rating to its SM-2 quality value. Unknown ratings map to 0
// so the computation stays total; handlers validate before calling.
func (r Rating) Quality() int {
	switch r {
	case RatingEasy:
		return 4
	case RatingMedium:
		return 3
	case RatingHard:
		return 2
	default:
		return 0
	}
}

// Valid reports whether r is one of the four recognized ratings.
func (r Rating) Valid() bool {
	switch r {
	case RatingAgain, RatingHard, RatingMedium, RatingEasy:
		return true
	}
	return false
}

const (
	initialEase = 2.5
	minEase     = 1.3
)

// ComputeNextReview produces the updated scheduling fields for a card given the
// most recent review record (nil for a first-time review) and a new rating.
// SM-2 variant: quality >= 3 grows the interval through the 1 / 6 / round(i*ef)
// ladder and adjusts ease; anything below 3 resets repetitions and schedules the
// card for tomorrow without touching ease. "hard" is intentionally handled the
// same as "again" -- the weak-card session filter relies on both resetting.
func ComputeNextReview(rating Rating, prior *models.ReviewRecord, today time.Time) models.Schedule {
	ease := initialEase
	interval := 0
	repetitions := 0
	if prior != nil {
		// Malformed fields fall back to the initial values so the
		// computation stays total over its input domain.
		if prior.EaseFactor >= minEase {
			ease = prior.EaseFactor
		}
		if prior.IntervalDays > 0 {
			interval = prior.IntervalDays
		}
		if prior.Repetitions > 0 {
			repetitions = prior.Repetitions
		}
	}

	q := rating.Quality()
	if q >= 3 {
		switch repetitions {
		case 0:
			interval = 1
		case 1:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * ease))
		}
		repetitions++
		ease += 0.1 - float64(5-q)*(0.08+float64(5-q)*0.02)
	} else {
		repetitions = 0
		interval = 1
	}

	if ease < minEase {
		ease = minEase
	}

	day := models.DateOnly(today)
	return models.Schedule{
		IntervalDays:   interval,
		EaseFactor:     ease,
		Repetitions:    repetitions,
		NextReviewDate: day.AddDate(0, 0, interval),
	}
}
