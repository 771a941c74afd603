package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/srs"
)

var today = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

func TestComputeNextReview_FirstReviewEasy(t *testing.T) {
	sched := srs.ComputeNextReview(srs.RatingEasy, nil, today)

	assert.Equal(t, 1, sched.IntervalDays, "first review should set interval to 1")
	assert.Equal(t, 1, sched.Repetitions)
	assert.InDelta(t, 2.6, sched.EaseFactor, 0.0001, "easy should raise ease by 0.1")
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), sched.NextReviewDate)
}

func TestComputeNextReview_SecondReviewMedium(t *testing.T) {
	prior := &models.ReviewRecord{
		EaseFactor:   2.5,
		IntervalDays: 1,
		Repetitions:  1,
	}

	sched := srs.ComputeNextReview(srs.RatingMedium, prior, today)

	assert.Equal(t, 6, sched.IntervalDays, "second qualifying review should set interval to 6")
	assert.Equal(t, 2, sched.Repetitions)
	assert.InDelta(t, 2.36, sched.EaseFactor, 0.0001, "medium should lower ease slightly")
}

func TestComputeNextReview_AgainResetsWithoutTouchingEase(t *testing.T) {
	prior := &models.ReviewRecord{
		EaseFactor:   2.0,
		IntervalDays: 20,
		Repetitions:  5,
	}

	sched := srs.ComputeNextReview(srs.RatingAgain, prior, today)

	assert.Equal(t, 1, sched.IntervalDays)
	assert.Equal(t, 0, sched.Repetitions)
	assert.InDelta(t, 2.0, sched.EaseFactor, 0.0001, "failing rating should leave ease unchanged")
}

func TestComputeNextReview_HardBehavesLikeAgain(t *testing.T) {
	prior := &models.ReviewRecord{
		EaseFactor:   2.5,
		IntervalDays: 15,
		Repetitions:  4,
	}

	hard := srs.ComputeNextReview(srs.RatingHard, prior, today)
	again := srs.ComputeNextReview(srs.RatingAgain, prior, today)

	assert.Equal(t, again, hard, "hard must reset exactly like again")
	assert.Equal(t, 1, hard.IntervalDays)
	assert.Equal(t, 0, hard.Repetitions)
}

func TestComputeNextReview_IntervalLadder(t *testing.T) {
	tests := []struct {
		name     string
		rating   srs.Rating
		prior    *models.ReviewRecord
		expected int
	}{
		{
			name:     "repetitions 0 becomes 1 day",
			rating:   srs.RatingMedium,
			prior:    nil,
			expected: 1,
		},
		{
			name:     "repetitions 1 becomes 6 days",
			rating:   srs.RatingMedium,
			prior:    &models.ReviewRecord{EaseFactor: 2.5, IntervalDays: 1, Repetitions: 1},
			expected: 6,
		},
		{
			name:     "established card multiplies by ease",
			rating:   srs.RatingMedium,
			prior:    &models.ReviewRecord{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2},
			expected: 15, // round(6 * 2.5)
		},
		{
			name:     "easy rating still uses prior ease for the interval",
			rating:   srs.RatingEasy,
			prior:    &models.ReviewRecord{EaseFactor: 2.0, IntervalDays: 10, Repetitions: 3},
			expected: 20, // round(10 * 2.0)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := srs.ComputeNextReview(tt.rating, tt.prior, today)
			assert.Equal(t, tt.expected, sched.IntervalDays)
		})
	}
}

func TestComputeNextReview_EaseGrowsOnRepeatedEasy(t *testing.T) {
	var prior *models.ReviewRecord
	ease := 0.0
	for i := 0; i < 8; i++ {
		sched := srs.ComputeNextReview(srs.RatingEasy, prior, today)
		if i > 0 {
			assert.Greater(t, sched.EaseFactor, ease, "ease must strictly increase on easy")
		}
		ease = sched.EaseFactor
		prior = &models.ReviewRecord{
			EaseFactor:   sched.EaseFactor,
			IntervalDays: sched.IntervalDays,
			Repetitions:  sched.Repetitions,
		}
	}
}

func TestComputeNextReview_EaseClampedOnRepeatedMedium(t *testing.T) {
	prior := &models.ReviewRecord{EaseFactor: 2.5, IntervalDays: 6, Repetitions: 2}
	for i := 0; i < 20; i++ {
		sched := srs.ComputeNextReview(srs.RatingMedium, prior, today)
		require.GreaterOrEqual(t, sched.EaseFactor, 1.3, "ease must never drop below 1.3")
		prior = &models.ReviewRecord{
			EaseFactor:   sched.EaseFactor,
			IntervalDays: sched.IntervalDays,
			Repetitions:  sched.Repetitions,
		}
	}
	assert.InDelta(t, 1.3, prior.EaseFactor, 0.0001, "repeated medium ratings should hit the floor")
}

func TestComputeNextReview_MalformedPriorDefaults(t *testing.T) {
	prior := &models.ReviewRecord{
		EaseFactor:   0, // missing
		IntervalDays: -3,
		Repetitions:  -1,
	}

	sched := srs.ComputeNextReview(srs.RatingEasy, prior, today)

	assert.Equal(t, 1, sched.IntervalDays)
	assert.Equal(t, 1, sched.Repetitions)
	assert.InDelta(t, 2.6, sched.EaseFactor, 0.0001, "missing ease should default to 2.5 before the update")
}

func TestRating_Quality(t *testing.T) {
	assert.Equal(t, 0, srs.RatingAgain.Quality())
	assert.Equal(t, 2, srs.RatingHard.Quality())
	assert.Equal(t, 3, srs.RatingMedium.Quality())
	assert.Equal(t, 4, srs.RatingEasy.Quality())
	assert.False(t, srs.Rating("perfect").Valid())
}
