package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mhartley/sqeprep/internal/models"
)

// MockChallengeRepository is a mock implementation of repository.ChallengeRepository
type MockChallengeRepository struct {
	mock.Mock
}

func (m *MockChallengeRepository) Get(ctx context.Context, date string) (*models.DailyChallenge, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyChallenge), args.Error(1)
}

func (m *MockChallengeRepository) Insert(ctx context.Context, challenge models.DailyChallenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *MockChallengeRepository) InsertAttempt(ctx context.Context, attempt models.ChallengeAttempt) (int64, error) {
	args := m.Called(ctx, attempt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockChallengeRepository) AttemptFor(ctx context.Context, userID int64, date string) (*models.ChallengeAttempt, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChallengeAttempt), args.Error(1)
}
