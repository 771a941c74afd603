package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/services"
	"github.com/mhartley/sqeprep/internal/testutil/mocks"
)

func validQuestion() models.Question {
	return models.Question{
		Subject:     "Criminal Law",
		Prompt:      "Which element is required for theft?",
		Options:     []string{"dishonesty", "recklessness", "negligence", "strict liability"},
		AnswerIndex: 0,
	}
}

func TestImportQuestions_Valid(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(mocks.MockQuestionRepository)

	questions := []models.Question{validQuestion(), validQuestion()}
	questionRepo.On("InsertBatch", ctx, questions).Return(2, nil)

	svc := services.NewImportService(questionRepo)
	inserted, err := svc.ImportQuestions(ctx, questions)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
}

func TestImportQuestions_RejectsUnknownSubject(t *testing.T) {
	q := validQuestion()
	q.Subject = "Space Law"

	svc := services.NewImportService(new(mocks.MockQuestionRepository))
	_, err := svc.ImportQuestions(context.Background(), []models.Question{q})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Space Law")
}

func TestImportQuestions_RejectsBadAnswerIndex(t *testing.T) {
	q := validQuestion()
	q.AnswerIndex = 10

	svc := services.NewImportService(new(mocks.MockQuestionRepository))
	_, err := svc.ImportQuestions(context.Background(), []models.Question{q})
	require.Error(t, err)
}

func TestImportQuestions_RejectsEmptyBatch(t *testing.T) {
	svc := services.NewImportService(new(mocks.MockQuestionRepository))
	_, err := svc.ImportQuestions(context.Background(), nil)
	require.Error(t, err)
}
