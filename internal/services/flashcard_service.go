package services

import (
	"context"
	"strings"
	"time"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
	"github.com/mhartley/sqeprep/internal/srs"
)

// ReviewResult is what one card rating produced: the appended review record
// and the rewards the review earned.
type ReviewResult struct {
	Review *models.ReviewRecord `json:"review"`
	Reward *models.RewardResult `json:"reward"`
}

// FlashcardService handles flashcard business logic: card CRUD, study session
// assembly, and spaced-repetition scheduling of reviews.
type FlashcardService interface {
	CreateCard(ctx context.Context, userID int64, subject, front, back string) (*models.Flashcard, error)
	GetCard(ctx context.Context, id, userID int64) (*models.Flashcard, error)
	ListCards(ctx context.Context, userID int64) ([]models.Flashcard, error)
	BuildSession(ctx context.Context, userID int64, mode srs.SessionMode, count int) ([]models.Flashcard, error)
	RateCard(ctx context.Context, userID, cardID int64, rating srs.Rating) (*ReviewResult, error)
	CardHistory(ctx context.Context, userID, cardID int64) ([]models.ReviewRecord, error)
}

type flashcardService struct {
	repo            repository.FlashcardRepository
	gamificationSvc GamificationService
	sessionDefault  int
	sessionMax      int
	now             func() time.Time
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(repo repository.FlashcardRepository, gamificationSvc GamificationService, sessionDefault, sessionMax int) FlashcardService {
	return &flashcardService{
		repo:            repo,
		gamificationSvc: gamificationSvc,
		sessionDefault:  sessionDefault,
		sessionMax:      sessionMax,
		now:             time.Now,
	}
}

func (s *flashcardService) CreateCard(ctx context.Context, userID int64, subject, front, back string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: user_id=%d, subject=%s", userID, subject)

	if !models.IsSubject(subject) {
		return nil, errors.NewValidationError("subject", "must be one of the SQE subjects")
	}
	front = strings.TrimSpace(front)
	back = strings.TrimSpace(back)
	if front == "" {
		return nil, errors.NewValidationError("front", "cannot be empty")
	}
	if back == "" {
		return nil, errors.NewValidationError("back", "cannot be empty")
	}

	card := models.Flashcard{
		UserID:  userID,
		Subject: subject,
		Front:   front,
		Back:    back,
	}
	id, err := s.repo.Insert(ctx, card)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	card.ID = id
	card.CreatedAt = s.now()
	log.Info("flashcard created: id=%d, subject=%s", id, subject)
	return &card, nil
}

func (s *flashcardService) GetCard(ctx context.Context, id, userID int64) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	card, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) ListCards(ctx context.Context, userID int64) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)

	cards, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) BuildSession(ctx context.Context, userID int64, mode srs.SessionMode, count int) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("building study session: user_id=%d, mode=%s, count=%d", userID, mode, count)

	if !mode.Valid() {
		return nil, errors.NewValidationError("mode", "must be 'new', 'weak', 'due', or 'all'")
	}
	if count <= 0 {
		count = s.sessionDefault
	}
	if count > s.sessionMax {
		count = s.sessionMax
	}

	pool, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	history, err := s.repo.UserReviewHistory(ctx, userID)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return nil, errors.NewInternalError(err)
	}

	session := srs.SelectCards(pool, history, mode, count, s.now())
	log.Debug("session built: %d of %d cards selected", len(session), len(pool))
	return session, nil
}

func (s *flashcardService) RateCard(ctx context.Context, userID, cardID int64, rating srs.Rating) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("rating flashcard: user_id=%d, card_id=%d, rating=%s", userID, cardID, rating)

	if !rating.Valid() {
		return nil, errors.NewValidationError("rating", "must be 'again', 'hard', 'medium', or 'easy'")
	}

	card, err := s.repo.Get(ctx, cardID, userID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", cardID)
	}

	prior, err := s.repo.LatestReview(ctx, cardID)
	if err != nil {
		log.Error("failed to get latest review: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	schedule := srs.ComputeNextReview(rating, prior, now)

	record := models.ReviewRecord{
		FlashcardID:    cardID,
		ReviewDate:     now,
		Rating:         string(rating),
		Quality:        rating.Quality(),
		EaseFactor:     schedule.EaseFactor,
		IntervalDays:   schedule.IntervalDays,
		Repetitions:    schedule.Repetitions,
		NextReviewDate: schedule.NextReviewDate,
	}
	id, err := s.repo.AppendReview(ctx, record)
	if err != nil {
		log.Error("failed to append review: %v", err)
		return nil, errors.NewInternalError(err)
	}
	record.ID = id

	reward, err := s.gamificationSvc.ProcessActivity(ctx, userID, gamification.Activity{
		Kind:      gamification.ActivityFlashcardReviewed,
		RatedEasy: rating == srs.RatingEasy,
	})
	if err != nil {
		log.Error("failed to process review rewards: %v", err)
		return nil, err
	}

	log.Info("flashcard reviewed: card_id=%d, rating=%s, next_review=%s",
		cardID, rating, schedule.NextReviewDate.Format("2006-01-02"))
	return &ReviewResult{Review: &record, Reward: reward}, nil
}

func (s *flashcardService) CardHistory(ctx context.Context, userID, cardID int64) ([]models.ReviewRecord, error) {
	log := logger.FromContext(ctx)

	card, err := s.repo.Get(ctx, cardID, userID)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", cardID)
	}

	history, err := s.repo.ReviewHistory(ctx, cardID)
	if err != nil {
		log.Error("failed to load review history: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return history, nil
}
