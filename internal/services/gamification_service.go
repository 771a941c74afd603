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

// GamificationService processes reward-bearing activities and exposes the
// resulting state. ProcessActivity is the single entry point other services
// call after persisting their own domain records.
type GamificationService interface {
	ProcessActivity(ctx context.Context, userID int64, activity gamification.Activity) (*models.RewardResult, error)
	GetState(ctx context.Context, userID int64) (*models.UserGamificationState, error)
	ListBadges(ctx context.Context, userID int64) ([]models.UserBadge, error)
	Catalog(ctx context.Context) []gamification.BadgeRule
}

type gamificationService struct {
	repo repository.GamificationRepository
	now  func() time.Time
}

// NewGamificationService creates a new GamificationService
func NewGamificationService(repo repository.GamificationRepository) GamificationService {
	return &gamificationService{repo: repo, now: time.Now}
}

func (s *gamificationService) ProcessActivity(ctx context.Context, userID int64, activity gamification.Activity) (*models.RewardResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("processing activity: user_id=%d, kind=%s", userID, activity.Kind)

	state, err := s.repo.GetUserState(ctx, userID)
	if err != nil {
		log.Error("failed to get gamification state: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if state == nil {
		state = &models.UserGamificationState{UserID: userID}
	}

	today := s.now()
	streak := gamification.AdvanceStreak(state.CurrentStreak, state.LongestStreak, state.LastActivityDate, today)

	awarded := gamification.ActivityPoints(activity) + streak.BonusPoints
	totalPoints := state.Points + awarded

	agg, err := s.repo.BadgeAggregates(ctx, userID)
	if err != nil {
		log.Error("failed to compute badge aggregates: %v", err)
		return nil, errors.NewInternalError(err)
	}
	agg.LongestStreak = streak.LongestStreak

	existing, err := s.repo.ListBadges(ctx, userID)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, errors.NewInternalError(err)
	}
	earned := make(map[string]bool, len(existing))
	for _, b := range existing {
		earned[b.BadgeID] = true
	}

	// Badge points feed back into the point and level metrics, so evaluation
	// repeats until no further rule fires. The catalog bounds the loop.
	var newRules []gamification.BadgeRule
	for {
		agg.Points = totalPoints
		agg.Level = gamification.LevelForPoints(totalPoints)

		fired := gamification.NewlyEarned(*agg, earned)
		if len(fired) == 0 {
			break
		}
		for _, rule := range fired {
			earned[rule.ID] = true
			totalPoints += rule.Points
			newRules = append(newRules, rule)
		}
	}

	level := gamification.LevelForPoints(totalPoints)
	leveledUp := level > gamification.LevelForPoints(state.Points)

	patch := models.UserStatePatch{
		Points:        &totalPoints,
		Level:         &level,
		CurrentStreak: &streak.CurrentStreak,
		LongestStreak: &streak.LongestStreak,
	}
	if streak.Updated || state.LastActivityDate == nil {
		day := models.DateOnly(today)
		patch.LastActivityDate = &day
	}

	awards := make([]models.UserBadge, 0, len(newRules))
	for _, rule := range newRules {
		awards = append(awards, models.UserBadge{BadgeID: rule.ID, Name: rule.Name, Points: rule.Points})
	}

	// State and badge rows commit together. If the write fails nothing is
	// stored, so a retry recomputes the same rewards instead of stacking
	// badge points on top of an already-updated total.
	badges, err := s.repo.ApplyRewards(ctx, userID, patch, awards)
	if err != nil {
		log.Error("failed to persist rewards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	result := &models.RewardResult{
		PointsAwarded: awarded,
		TotalPoints:   totalPoints,
		Level:         level,
		LeveledUp:     leveledUp,
		NewBadges:     badges,
		Streak:        streak,
	}
	for _, rule := range newRules {
		result.PointsAwarded += rule.Points
		log.Info("badge awarded: user_id=%d, badge=%s", userID, rule.ID)
	}

	return result, nil
}

func (s *gamificationService) GetState(ctx context.Context, userID int64) (*models.UserGamificationState, error) {
	log := logger.FromContext(ctx)

	state, err := s.repo.GetUserState(ctx, userID)
	if err != nil {
		log.Error("failed to get gamification state: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if state == nil {
		// Users who have never earned anything still get a readable state.
		state = &models.UserGamificationState{UserID: userID, Level: gamification.LevelForPoints(0)}
	}
	return state, nil
}

func (s *gamificationService) ListBadges(ctx context.Context, userID int64) ([]models.UserBadge, error) {
	log := logger.FromContext(ctx)

	badges, err := s.repo.ListBadges(ctx, userID)
	if err != nil {
		log.Error("failed to list badges: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for i := range badges {
		if rule, ok := gamification.RuleByID(badges[i].BadgeID); ok {
			badges[i].Name = rule.Name
		}
	}
	return badges, nil
}

func (s *gamificationService) Catalog(_ context.Context) []gamification.BadgeRule {
	return gamification.Catalog
}
