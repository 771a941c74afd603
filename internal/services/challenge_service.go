package services

import (
	"context"
	"time"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

// ChallengeView is the daily challenge with its questions resolved.
type ChallengeView struct {
	Date      string            `json:"date"`
	Questions []models.Question `json:"questions"`
	Attempted bool              `json:"attempted"`
}

// AttemptResult is a graded challenge attempt with the rewards it earned.
type AttemptResult struct {
	Attempt models.ChallengeAttempt `json:"attempt"`
	Reward  *models.RewardResult    `json:"reward"`
}

// ChallengeService handles the shared daily challenge: one fixed question set
// per calendar date, one attempt per user per date.
type ChallengeService interface {
	TodayChallenge(ctx context.Context, userID int64) (*ChallengeView, error)
	EnsureToday(ctx context.Context) error
	SubmitAttempt(ctx context.Context, userID int64, answers map[int64]int) (*AttemptResult, error)
}

type challengeService struct {
	challengeRepo   repository.ChallengeRepository
	questionRepo    repository.QuestionRepository
	gamificationSvc GamificationService
	size            int
	now             func() time.Time
}

// NewChallengeService creates a new ChallengeService
func NewChallengeService(challengeRepo repository.ChallengeRepository, questionRepo repository.QuestionRepository, gamificationSvc GamificationService, size int) ChallengeService {
	return &challengeService{
		challengeRepo:   challengeRepo,
		questionRepo:    questionRepo,
		gamificationSvc: gamificationSvc,
		size:            size,
		now:             time.Now,
	}
}

func (s *challengeService) today() string {
	return s.now().Format("2006-01-02")
}

func (s *challengeService) TodayChallenge(ctx context.Context, userID int64) (*ChallengeView, error) {
	log := logger.FromContext(ctx)

	challenge, err := s.ensureFor(ctx, s.today())
	if err != nil {
		return nil, err
	}

	questions := make([]models.Question, 0, len(challenge.QuestionIDs))
	for _, id := range challenge.QuestionIDs {
		q, err := s.questionRepo.Get(ctx, id)
		if err != nil {
			log.Error("failed to get challenge question: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if q != nil {
			questions = append(questions, *q)
		}
	}

	attempt, err := s.challengeRepo.AttemptFor(ctx, userID, challenge.Date)
	if err != nil {
		log.Error("failed to check challenge attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &ChallengeView{
		Date:      challenge.Date,
		Questions: questions,
		Attempted: attempt != nil,
	}, nil
}

// EnsureToday creates today's challenge if it does not exist yet. The daily
// rotation job calls this at midnight; TodayChallenge also calls it lazily so
// the first request after a missed rotation still gets a challenge.
func (s *challengeService) EnsureToday(ctx context.Context) error {
	_, err := s.ensureFor(ctx, s.today())
	return err
}

func (s *challengeService) ensureFor(ctx context.Context, date string) (*models.DailyChallenge, error) {
	log := logger.FromContext(ctx)

	challenge, err := s.challengeRepo.Get(ctx, date)
	if err != nil {
		log.Error("failed to get daily challenge: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if challenge != nil {
		return challenge, nil
	}

	ids, err := s.questionRepo.RandomIDs(ctx, s.size)
	if err != nil {
		log.Error("failed to pick challenge questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(ids) == 0 {
		return nil, errors.NewValidationError("questions", "question bank is empty")
	}

	challenge = &models.DailyChallenge{Date: date, QuestionIDs: ids}
	if err := s.challengeRepo.Insert(ctx, *challenge); err != nil {
		log.Error("failed to insert daily challenge: %v", err)
		return nil, errors.NewInternalError(err)
	}

	// A concurrent creator may have won the insert; read back the stored set.
	stored, err := s.challengeRepo.Get(ctx, date)
	if err != nil {
		log.Error("failed to reread daily challenge: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stored != nil {
		challenge = stored
	}
	log.Info("daily challenge created: date=%s, questions=%d", date, len(challenge.QuestionIDs))
	return challenge, nil
}

func (s *challengeService) SubmitAttempt(ctx context.Context, userID int64, answers map[int64]int) (*AttemptResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting challenge attempt: user_id=%d, answers=%d", userID, len(answers))

	date := s.today()
	challenge, err := s.ensureFor(ctx, date)
	if err != nil {
		return nil, err
	}

	existing, err := s.challengeRepo.AttemptFor(ctx, userID, date)
	if err != nil {
		log.Error("failed to check challenge attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("today's challenge has already been attempted")
	}

	correct := 0
	for _, questionID := range challenge.QuestionIDs {
		selected, answered := answers[questionID]
		if !answered {
			continue
		}
		question, err := s.questionRepo.Get(ctx, questionID)
		if err != nil {
			log.Error("failed to get challenge question: %v", err)
			return nil, errors.NewInternalError(err)
		}
		if question == nil {
			continue
		}
		wasCorrect := selected == question.AnswerIndex
		if wasCorrect {
			correct++
		}
		record := models.AnswerRecord{
			UserID:        userID,
			QuestionID:    questionID,
			SelectedIndex: selected,
			WasCorrect:    wasCorrect,
			Source:        "challenge",
		}
		if _, err := s.questionRepo.InsertAnswer(ctx, record); err != nil {
			log.Error("failed to record challenge answer: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	attempt := models.ChallengeAttempt{
		UserID:        userID,
		ChallengeDate: date,
		Correct:       correct,
		Total:         len(challenge.QuestionIDs),
		Perfect:       correct == len(challenge.QuestionIDs),
	}
	id, err := s.challengeRepo.InsertAttempt(ctx, attempt)
	if err != nil {
		log.Error("failed to insert challenge attempt: %v", err)
		return nil, errors.NewInternalError(err)
	}
	attempt.ID = id

	reward, err := s.gamificationSvc.ProcessActivity(ctx, userID, gamification.Activity{
		Kind:    gamification.ActivityDailyChallenge,
		Perfect: attempt.Perfect,
	})
	if err != nil {
		log.Error("failed to process challenge rewards: %v", err)
		return nil, err
	}

	log.Info("challenge attempted: user_id=%d, date=%s, score=%d/%d", userID, date, correct, attempt.Total)
	return &AttemptResult{Attempt: attempt, Reward: reward}, nil
}
