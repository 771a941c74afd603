package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/services"
	"github.com/mhartley/sqeprep/internal/testutil/mocks"
)

func TestSubmitPracticeAnswer_Correct(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(mocks.MockQuestionRepository)
	gam := new(mocks.MockGamificationService)

	question := &models.Question{
		ID:          4,
		Subject:     "Tort Law",
		Options:     []string{"a", "b", "c", "d"},
		AnswerIndex: 2,
		Explanation: "negligence requires a duty of care",
	}
	questionRepo.On("Get", ctx, int64(4)).Return(question, nil)
	questionRepo.On("InsertAnswer", ctx, mock.Anything).Return(int64(1), nil)
	gam.On("ProcessActivity", ctx, int64(1), gamification.Activity{
		Kind:    gamification.ActivityQuestionAnswered,
		Correct: true,
	}).Return(&models.RewardResult{PointsAwarded: 10, TotalPoints: 10, Level: 1}, nil)

	svc := services.NewPracticeService(questionRepo, gam)
	result, err := svc.SubmitAnswer(ctx, 1, 4, 2)
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, 2, result.AnswerIndex)
	assert.Equal(t, "negligence requires a duty of care", result.Explanation)
	assert.Equal(t, 10, result.Reward.PointsAwarded)

	questionRepo.AssertCalled(t, "InsertAnswer", ctx, mock.MatchedBy(func(rec models.AnswerRecord) bool {
		return rec.Source == "practice" && rec.ExamID == nil && rec.WasCorrect
	}))
}

func TestSubmitPracticeAnswer_IncorrectStillEarnsPoints(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(mocks.MockQuestionRepository)
	gam := new(mocks.MockGamificationService)

	question := &models.Question{ID: 4, Options: []string{"a", "b"}, AnswerIndex: 0}
	questionRepo.On("Get", ctx, int64(4)).Return(question, nil)
	questionRepo.On("InsertAnswer", ctx, mock.Anything).Return(int64(1), nil)
	gam.On("ProcessActivity", ctx, int64(1), gamification.Activity{
		Kind:    gamification.ActivityQuestionAnswered,
		Correct: false,
	}).Return(&models.RewardResult{PointsAwarded: 2, TotalPoints: 2, Level: 1}, nil)

	svc := services.NewPracticeService(questionRepo, gam)
	result, err := svc.SubmitAnswer(ctx, 1, 4, 1)
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Equal(t, 2, result.Reward.PointsAwarded)
}

func TestSubmitPracticeAnswer_IndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	questionRepo := new(mocks.MockQuestionRepository)

	question := &models.Question{ID: 4, Options: []string{"a", "b"}, AnswerIndex: 0}
	questionRepo.On("Get", ctx, int64(4)).Return(question, nil)

	svc := services.NewPracticeService(questionRepo, new(mocks.MockGamificationService))
	_, err := svc.SubmitAnswer(ctx, 1, 4, 5)
	require.Error(t, err)
}

func TestGetQuestions_RejectsUnknownSubject(t *testing.T) {
	svc := services.NewPracticeService(new(mocks.MockQuestionRepository), new(mocks.MockGamificationService))

	_, err := svc.GetQuestions(context.Background(), models.QuestionFilter{Subject: "Astrophysics"})
	require.Error(t, err)
}
