package srs

import (
	"math/rand"
	"time"

	"github.com/mhartley/sqeprep/internal/models"
)

// SessionMode selects which cards enter a study session.
type SessionMode string

const (
	ModeNew  SessionMode = "new"  // never rated medium or easy
	ModeWeak SessionMode = "weak" // latest rating was hard or again
	ModeDue  SessionMode = "due"  // latest next review date has passed
	ModeAll  SessionMode = "all"
)

// Valid reports whether m is a recognized session mode.
func (m SessionMode) Valid() bool {
	switch m {
	case ModeNew, ModeWeak, ModeDue, ModeAll:
		return true
	}
	return false
}

// SelectCards filters the pool by mode against each card's review history
// (records ordered oldest first), shuffles the survivors, and truncates to
// count. A count <= 0 returns every matching card.
func SelectCards(pool []models.Flashcard, history map[int64][]models.ReviewRecord, mode SessionMode, count int, today time.Time) []models.Flashcard {
	var selected []models.Flashcard
	for _, card := range pool {
		if matchesMode(history[card.ID], mode, today) {
			selected = append(selected, card)
		}
	}

	rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})

	if count > 0 && len(selected) > count {
		selected = selected[:count]
	}
	return selected
}

func matchesMode(records []models.ReviewRecord, mode SessionMode, today time.Time) bool {
	switch mode {
	case ModeNew:
		for _, rec := range records {
			if rec.Quality >= 3 {
				return false
			}
		}
		return true
	case ModeWeak:
		if len(records) == 0 {
			return false
		}
		return records[len(records)-1].Quality < 3
	case ModeDue:
		if len(records) == 0 {
			return false
		}
		next := records[len(records)-1].NextReviewDate
		return !models.DateOnly(next).After(models.DateOnly(today))
	case ModeAll:
		return true
	default:
		return false
	}
}
