package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/services"
	"github.com/mhartley/sqeprep/internal/testutil/mocks"
)

func quietAggregates() *models.BadgeAggregates {
	// Low enough that no catalog rule fires.
	return &models.BadgeAggregates{QuestionsAnswered: 5}
}

func TestProcessActivity_CorrectAnswersBelowLevelThreshold(t *testing.T) {
	ctx := context.Background()
	today := models.DateOnly(time.Now())

	points := 900
	for i := 0; i < 5; i++ {
		repo := new(mocks.MockGamificationRepository)
		state := &models.UserGamificationState{
			UserID:           1,
			Points:           points,
			Level:            1,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: &today,
		}
		repo.On("GetUserState", ctx, int64(1)).Return(state, nil)
		repo.On("BadgeAggregates", ctx, int64(1)).Return(quietAggregates(), nil)
		repo.On("ListBadges", ctx, int64(1)).Return([]models.UserBadge{}, nil)
		repo.On("ApplyRewards", ctx, int64(1), mock.Anything, mock.Anything).Return([]models.UserBadge{}, nil)

		svc := services.NewGamificationService(repo)
		result, err := svc.ProcessActivity(ctx, 1, gamification.Activity{
			Kind:    gamification.ActivityQuestionAnswered,
			Correct: true,
		})
		require.NoError(t, err)

		assert.Equal(t, 10, result.PointsAwarded)
		points = result.TotalPoints
	}

	// 900 + 5*10 = 950, still short of the 1000-point level 2 threshold.
	assert.Equal(t, 950, points)
	assert.Equal(t, 1, gamification.LevelForPoints(points))
}

func TestProcessActivity_WeekStreakAwardsBonusAndBadge(t *testing.T) {
	ctx := context.Background()
	yesterday := models.DateOnly(time.Now().AddDate(0, 0, -1))

	repo := new(mocks.MockGamificationRepository)
	state := &models.UserGamificationState{
		UserID:           1,
		Points:           0,
		Level:            1,
		CurrentStreak:    6,
		LongestStreak:    6,
		LastActivityDate: &yesterday,
	}
	repo.On("GetUserState", ctx, int64(1)).Return(state, nil)
	repo.On("BadgeAggregates", ctx, int64(1)).Return(quietAggregates(), nil)
	// streak_starter was earned on day three; only week_warrior is new.
	repo.On("ListBadges", ctx, int64(1)).Return([]models.UserBadge{
		{UserID: 1, BadgeID: "streak_starter", Points: 25},
	}, nil)
	repo.On("ApplyRewards", ctx, int64(1), mock.Anything, mock.Anything).Return([]models.UserBadge{
		{ID: 2, UserID: 1, BadgeID: "week_warrior", Name: "Week Warrior", Points: 75},
	}, nil)

	svc := services.NewGamificationService(repo)
	result, err := svc.ProcessActivity(ctx, 1, gamification.Activity{Kind: gamification.ActivityLogin})
	require.NoError(t, err)

	assert.Equal(t, 7, result.Streak.CurrentStreak)
	assert.Equal(t, 7, result.Streak.LongestStreak)
	assert.True(t, result.Streak.Updated)
	assert.False(t, result.Streak.Broken)
	// Daily streak point plus the 7-day bonus, then the badge's own points.
	assert.Equal(t, 60, result.Streak.BonusPoints)
	assert.Equal(t, 60+75, result.PointsAwarded)
	assert.Equal(t, 135, result.TotalPoints)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "week_warrior", result.NewBadges[0].BadgeID)
	assert.Equal(t, "Week Warrior", result.NewBadges[0].Name)

	repo.AssertCalled(t, "ApplyRewards", ctx, int64(1), mock.MatchedBy(func(p models.UserStatePatch) bool {
		return p.Points != nil && *p.Points == 135 &&
			p.CurrentStreak != nil && *p.CurrentStreak == 7 &&
			p.LongestStreak != nil && *p.LongestStreak == 7
	}), mock.MatchedBy(func(badges []models.UserBadge) bool {
		return len(badges) == 1 && badges[0].BadgeID == "week_warrior"
	}))
}

func TestProcessActivity_BadgePointsCascadeIntoLevel(t *testing.T) {
	ctx := context.Background()
	today := models.DateOnly(time.Now())

	repo := new(mocks.MockGamificationRepository)
	state := &models.UserGamificationState{
		UserID:           1,
		Points:           990,
		Level:            1,
		CurrentStreak:    1,
		LongestStreak:    1,
		LastActivityDate: &today,
	}
	repo.On("GetUserState", ctx, int64(1)).Return(state, nil)
	repo.On("BadgeAggregates", ctx, int64(1)).Return(quietAggregates(), nil)
	repo.On("ListBadges", ctx, int64(1)).Return([]models.UserBadge{}, nil)
	repo.On("ApplyRewards", ctx, int64(1), mock.Anything, mock.Anything).Return([]models.UserBadge{
		{ID: 1, UserID: 1, BadgeID: "rising_star", Name: "Rising Star", Points: 50},
	}, nil)

	svc := services.NewGamificationService(repo)
	result, err := svc.ProcessActivity(ctx, 1, gamification.Activity{
		Kind:    gamification.ActivityQuestionAnswered,
		Correct: true,
	})
	require.NoError(t, err)

	// 990 + 10 crosses 1000, firing rising_star, whose 50 points stick.
	assert.Equal(t, 1050, result.TotalPoints)
	assert.Equal(t, 2, result.Level)
	assert.True(t, result.LeveledUp)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "rising_star", result.NewBadges[0].BadgeID)
}

func TestProcessActivity_RetryAfterFailedWriteAwardsSameTotal(t *testing.T) {
	ctx := context.Background()
	today := models.DateOnly(time.Now())

	repo := new(mocks.MockGamificationRepository)
	state := &models.UserGamificationState{
		UserID:           1,
		Points:           995,
		Level:            1,
		CurrentStreak:    1,
		LongestStreak:    1,
		LastActivityDate: &today,
	}
	repo.On("GetUserState", ctx, int64(1)).Return(state, nil)
	repo.On("BadgeAggregates", ctx, int64(1)).Return(quietAggregates(), nil)
	repo.On("ListBadges", ctx, int64(1)).Return([]models.UserBadge{}, nil)

	// Points and badge rows commit together, so both attempts must persist the
	// same 995+10+50 total; a partial first write would re-fire rising_star on
	// the retry and count its points twice.
	wantPatch := mock.MatchedBy(func(p models.UserStatePatch) bool {
		return p.Points != nil && *p.Points == 1055
	})
	repo.On("ApplyRewards", ctx, int64(1), wantPatch, mock.Anything).
		Return(nil, errors.New("database is locked")).Once()
	repo.On("ApplyRewards", ctx, int64(1), wantPatch, mock.Anything).Return([]models.UserBadge{
		{ID: 1, UserID: 1, BadgeID: "rising_star", Name: "Rising Star", Points: 50},
	}, nil).Once()

	svc := services.NewGamificationService(repo)
	activity := gamification.Activity{Kind: gamification.ActivityQuestionAnswered, Correct: true}

	_, err := svc.ProcessActivity(ctx, 1, activity)
	require.Error(t, err)

	result, err := svc.ProcessActivity(ctx, 1, activity)
	require.NoError(t, err)
	assert.Equal(t, 1055, result.TotalPoints)
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "rising_star", result.NewBadges[0].BadgeID)
	repo.AssertExpectations(t)
}

func TestProcessActivity_SameDayActivityKeepsStreak(t *testing.T) {
	ctx := context.Background()
	today := models.DateOnly(time.Now())

	repo := new(mocks.MockGamificationRepository)
	state := &models.UserGamificationState{
		UserID:           1,
		Points:           100,
		Level:            1,
		CurrentStreak:    4,
		LongestStreak:    9,
		LastActivityDate: &today,
	}
	repo.On("GetUserState", ctx, int64(1)).Return(state, nil)
	repo.On("BadgeAggregates", ctx, int64(1)).Return(quietAggregates(), nil)
	repo.On("ListBadges", ctx, int64(1)).Return([]models.UserBadge{}, nil)
	repo.On("ApplyRewards", ctx, int64(1), mock.Anything, mock.Anything).Return([]models.UserBadge{}, nil)

	svc := services.NewGamificationService(repo)
	result, err := svc.ProcessActivity(ctx, 1, gamification.Activity{
		Kind:      gamification.ActivityFlashcardReviewed,
		RatedEasy: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Streak.CurrentStreak)
	assert.False(t, result.Streak.Updated)
	assert.Equal(t, 0, result.Streak.BonusPoints)
	assert.Equal(t, 8, result.PointsAwarded)
}

func TestGetState_NewUserGetsZeroState(t *testing.T) {
	ctx := context.Background()

	repo := new(mocks.MockGamificationRepository)
	repo.On("GetUserState", ctx, int64(7)).Return(nil, nil)

	svc := services.NewGamificationService(repo)
	state, err := svc.GetState(ctx, 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), state.UserID)
	assert.Equal(t, 0, state.Points)
	assert.Equal(t, 1, state.Level)
}
