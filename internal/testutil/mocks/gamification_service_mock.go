package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/models"
)

// MockGamificationService is a mock implementation of services.GamificationService
type MockGamificationService struct {
	mock.Mock
}

func (m *MockGamificationService) ProcessActivity(ctx context.Context, userID int64, activity gamification.Activity) (*models.RewardResult, error) {
	args := m.Called(ctx, userID, activity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RewardResult), args.Error(1)
}

func (m *MockGamificationService) GetState(ctx context.Context, userID int64) (*models.UserGamificationState, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGamificationState), args.Error(1)
}

func (m *MockGamificationService) ListBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserBadge), args.Error(1)
}

func (m *MockGamificationService) Catalog(ctx context.Context) []gamification.BadgeRule {
	m.Called(ctx)
	return gamification.Catalog
}
