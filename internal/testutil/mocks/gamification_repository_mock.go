package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mhartley/sqeprep/internal/models"
)

// MockGamificationRepository is a mock implementation of repository.GamificationRepository
type MockGamificationRepository struct {
	mock.Mock
}

func (m *MockGamificationRepository) GetUserState(ctx context.Context, userID int64) (*models.UserGamificationState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGamificationState), args.Error(1)
}

func (m *MockGamificationRepository) UpdateUserState(ctx context.Context, userID int64, patch models.UserStatePatch) error {
	args := m.Called(ctx, userID, patch)
	return args.Error(0)
}

func (m *MockGamificationRepository) ApplyRewards(ctx context.Context, userID int64, patch models.UserStatePatch, badges []models.UserBadge) ([]models.UserBadge, error) {
	args := m.Called(ctx, userID, patch, badges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserBadge), args.Error(1)
}

func (m *MockGamificationRepository) ListBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserBadge), args.Error(1)
}

func (m *MockGamificationRepository) BadgeAggregates(ctx context.Context, userID int64) (*models.BadgeAggregates, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BadgeAggregates), args.Error(1)
}
