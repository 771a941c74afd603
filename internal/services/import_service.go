package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

// ImportService loads question banks from JSON files into the database
type ImportService interface {
	ImportFile(ctx context.Context, path string) (int, error)
	ImportQuestions(ctx context.Context, questions []models.Question) (int, error)
}

type importService struct {
	questionRepo repository.QuestionRepository
}

// NewImportService creates a new ImportService
func NewImportService(questionRepo repository.QuestionRepository) ImportService {
	return &importService{questionRepo: questionRepo}
}

func (s *importService) ImportFile(ctx context.Context, path string) (int, error) {
	log := logger.FromContext(ctx)
	log.Info("importing questions from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read question file: %v", err)
		return 0, errors.NewBadRequestError(fmt.Sprintf("cannot read question file: %v", err))
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		log.Error("failed to parse question file: %v", err)
		return 0, errors.NewBadRequestError(fmt.Sprintf("invalid question file: %v", err))
	}

	return s.ImportQuestions(ctx, questions)
}

func (s *importService) ImportQuestions(ctx context.Context, questions []models.Question) (int, error) {
	log := logger.FromContext(ctx)

	if len(questions) == 0 {
		return 0, errors.NewValidationError("questions", "cannot be empty")
	}
	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return 0, errors.NewValidationError(fmt.Sprintf("questions[%d]", i), err.Error())
		}
	}

	inserted, err := s.questionRepo.InsertBatch(ctx, questions)
	if err != nil {
		log.Error("failed to insert questions: %v", err)
		return 0, errors.NewInternalError(err)
	}
	log.Info("imported %d questions", inserted)
	return inserted, nil
}

func validateQuestion(q models.Question) error {
	if !models.IsSubject(q.Subject) {
		return fmt.Errorf("unknown subject %q", q.Subject)
	}
	if q.Prompt == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("need at least 2 options, got %d", len(q.Options))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("answer index %d out of range for %d options", q.AnswerIndex, len(q.Options))
	}
	return nil
}
