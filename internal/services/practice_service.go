package services

import (
	"context"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

// AnswerResult is the outcome of one answered question: whether it was right,
// what the right answer was, and what the answer earned.
type AnswerResult struct {
	Correct     bool                 `json:"correct"`
	AnswerIndex int                  `json:"answer_index"`
	Explanation string               `json:"explanation"`
	Reward      *models.RewardResult `json:"reward"`
}

// PracticeService handles untimed question practice
type PracticeService interface {
	GetQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	SubmitAnswer(ctx context.Context, userID, questionID int64, selectedIndex int) (*AnswerResult, error)
}

type practiceService struct {
	questionRepo    repository.QuestionRepository
	gamificationSvc GamificationService
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(questionRepo repository.QuestionRepository, gamificationSvc GamificationService) PracticeService {
	return &practiceService{
		questionRepo:    questionRepo,
		gamificationSvc: gamificationSvc,
	}
}

func (s *practiceService) GetQuestions(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting practice questions: subject=%s, limit=%d", filter.Subject, filter.Limit)

	if filter.Subject != "" && !models.IsSubject(filter.Subject) {
		return nil, errors.NewValidationError("subject", "must be one of the SQE subjects")
	}

	questions, err := s.questionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return questions, nil
}

func (s *practiceService) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	log := logger.FromContext(ctx)

	question, err := s.questionRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewNotFoundError("question", id)
	}
	return question, nil
}

func (s *practiceService) SubmitAnswer(ctx context.Context, userID, questionID int64, selectedIndex int) (*AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting practice answer: user_id=%d, question_id=%d, selected=%d", userID, questionID, selectedIndex)

	question, err := s.questionRepo.Get(ctx, questionID)
	if err != nil {
		log.Error("failed to get question: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if question == nil {
		return nil, errors.NewNotFoundError("question", questionID)
	}
	if selectedIndex < 0 || selectedIndex >= len(question.Options) {
		return nil, errors.NewValidationError("selected_index", "out of range for question options")
	}

	correct := selectedIndex == question.AnswerIndex
	record := models.AnswerRecord{
		UserID:        userID,
		QuestionID:    questionID,
		SelectedIndex: selectedIndex,
		WasCorrect:    correct,
		Source:        "practice",
	}
	if _, err := s.questionRepo.InsertAnswer(ctx, record); err != nil {
		log.Error("failed to record answer: %v", err)
		return nil, errors.NewInternalError(err)
	}

	reward, err := s.gamificationSvc.ProcessActivity(ctx, userID, gamification.Activity{
		Kind:    gamification.ActivityQuestionAnswered,
		Correct: correct,
	})
	if err != nil {
		log.Error("failed to process answer rewards: %v", err)
		return nil, err
	}

	return &AnswerResult{
		Correct:     correct,
		AnswerIndex: question.AnswerIndex,
		Explanation: question.Explanation,
		Reward:      reward,
	}, nil
}
