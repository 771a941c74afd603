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

// StatsRefresher schedules a background rebuild of a user's cached dashboard.
// The jobs queue implements it; services stay unaware of the worker machinery.
type StatsRefresher interface {
	EnqueueStatsRefresh(userID int64)
}

// ExamSession is a started mock exam together with its question set.
type ExamSession struct {
	Exam      models.MockExam   `json:"exam"`
	Questions []models.Question `json:"questions"`
}

// ExamResult is a completed mock exam together with the rewards it earned.
type ExamResult struct {
	Exam   models.MockExam      `json:"exam"`
	Reward *models.RewardResult `json:"reward"`
}

// ExamService handles timed mock exam sessions. A user has at most one active
// exam; completing it scores the attempt and feeds the gamification engine.
type ExamService interface {
	StartExam(ctx context.Context, userID int64, size int) (*ExamSession, error)
	GetActiveExam(ctx context.Context, userID int64) (*models.MockExam, error)
	SubmitAnswer(ctx context.Context, userID, examID, questionID int64, selectedIndex int) (*AnswerResult, error)
	CompleteExam(ctx context.Context, userID, examID int64) (*ExamResult, error)
	ListExams(ctx context.Context, userID int64, limit int) ([]models.MockExam, error)
	GetStats(ctx context.Context, userID int64) (*models.ExamStats, error)
}

type examService struct {
	examRepo        repository.ExamRepository
	questionRepo    repository.QuestionRepository
	gamificationSvc GamificationService
	refresher       StatsRefresher
	now             func() time.Time
}

// NewExamService creates a new ExamService
func NewExamService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository, gamificationSvc GamificationService, refresher StatsRefresher) ExamService {
	return &examService{
		examRepo:        examRepo,
		questionRepo:    questionRepo,
		gamificationSvc: gamificationSvc,
		refresher:       refresher,
		now:             time.Now,
	}
}

func (s *examService) StartExam(ctx context.Context, userID int64, size int) (*ExamSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting mock exam: user_id=%d, size=%d", userID, size)

	if size <= 0 {
		size = 20
	}
	if size > 180 {
		return nil, errors.NewValidationError("size", "must be at most 180 questions")
	}

	active, err := s.examRepo.GetActiveExam(ctx, userID)
	if err != nil {
		log.Error("failed to check for active exam: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if active != nil {
		return nil, errors.NewConflictError("an active mock exam already exists")
	}

	questions, err := s.questionRepo.List(ctx, models.QuestionFilter{Limit: size, Random: true})
	if err != nil {
		log.Error("failed to pick exam questions: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(questions) == 0 {
		return nil, errors.NewValidationError("questions", "question bank is empty")
	}

	exam := models.MockExam{
		UserID:         userID,
		TotalQuestions: len(questions),
		StartedAt:      s.now(),
	}
	id, err := s.examRepo.InsertExam(ctx, exam)
	if err != nil {
		log.Error("failed to create mock exam: %v", err)
		return nil, errors.NewInternalError(err)
	}
	exam.ID = id

	log.Info("mock exam started: id=%d, questions=%d", id, len(questions))
	return &ExamSession{Exam: exam, Questions: questions}, nil
}

func (s *examService) GetActiveExam(ctx context.Context, userID int64) (*models.MockExam, error) {
	log := logger.FromContext(ctx)

	exam, err := s.examRepo.GetActiveExam(ctx, userID)
	if err != nil {
		log.Error("failed to get active exam: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return exam, nil
}

func (s *examService) SubmitAnswer(ctx context.Context, userID, examID, questionID int64, selectedIndex int) (*AnswerResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting exam answer: exam_id=%d, question_id=%d", examID, questionID)

	exam, err := s.ownedExam(ctx, userID, examID)
	if err != nil {
		return nil, err
	}
	if exam.CompletedAt != nil {
		return nil, errors.NewValidationError("exam", "exam is already completed")
	}

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
		ExamID:        &examID,
		SelectedIndex: selectedIndex,
		WasCorrect:    correct,
		Source:        "exam",
	}
	if _, err := s.questionRepo.InsertAnswer(ctx, record); err != nil {
		log.Error("failed to record exam answer: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if correct {
		exam.CorrectAnswers++
		if err := s.examRepo.UpdateExam(ctx, *exam); err != nil {
			log.Error("failed to update exam score: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}

	// Per-answer points are a practice mechanic; exams pay out on completion.
	return &AnswerResult{
		Correct:     correct,
		AnswerIndex: question.AnswerIndex,
		Explanation: question.Explanation,
	}, nil
}

func (s *examService) CompleteExam(ctx context.Context, userID, examID int64) (*ExamResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing mock exam: exam_id=%d", examID)

	exam, err := s.ownedExam(ctx, userID, examID)
	if err != nil {
		return nil, err
	}
	if exam.CompletedAt != nil {
		return nil, errors.NewValidationError("exam", "exam is already completed")
	}

	if exam.TotalQuestions > 0 {
		exam.ScorePercent = 100.0 * float64(exam.CorrectAnswers) / float64(exam.TotalQuestions)
	}
	now := s.now()
	exam.CompletedAt = &now
	if err := s.examRepo.UpdateExam(ctx, *exam); err != nil {
		log.Error("failed to complete exam: %v", err)
		return nil, errors.NewInternalError(err)
	}

	reward, err := s.gamificationSvc.ProcessActivity(ctx, userID, gamification.Activity{
		Kind:         gamification.ActivityMockCompleted,
		ScorePercent: exam.ScorePercent,
	})
	if err != nil {
		log.Error("failed to process exam rewards: %v", err)
		return nil, err
	}

	if s.refresher != nil {
		s.refresher.EnqueueStatsRefresh(userID)
	}

	log.Info("mock exam completed: id=%d, score=%.1f%%", examID, exam.ScorePercent)
	return &ExamResult{Exam: *exam, Reward: reward}, nil
}

func (s *examService) ListExams(ctx context.Context, userID int64, limit int) ([]models.MockExam, error) {
	log := logger.FromContext(ctx)

	exams, err := s.examRepo.ListExams(ctx, userID, limit)
	if err != nil {
		log.Error("failed to list exams: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return exams, nil
}

func (s *examService) GetStats(ctx context.Context, userID int64) (*models.ExamStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.examRepo.Stats(ctx, userID)
	if err != nil {
		log.Error("failed to get exam stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *examService) ownedExam(ctx context.Context, userID, examID int64) (*models.MockExam, error) {
	log := logger.FromContext(ctx)

	exam, err := s.examRepo.GetExam(ctx, examID)
	if err != nil {
		log.Error("failed to get exam: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if exam == nil {
		return nil, errors.NewNotFoundError("mock exam", examID)
	}
	if exam.UserID != userID {
		return nil, errors.NewValidationError("exam", "exam does not belong to user")
	}
	return exam, nil
}
