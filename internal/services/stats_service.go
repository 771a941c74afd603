package services

import (
	"context"
	"time"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
)

const dashboardCacheTTL = 10 * time.Minute

// StatsService builds the progress dashboard. Dashboards are cached per user
// and rebuilt in the background after reward-bearing activity.
type StatsService interface {
	Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
	RefreshUser(ctx context.Context, userID int64) error
	SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectAccuracyStat, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
	examRepo  repository.ExamRepository
	now       func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository, examRepo repository.ExamRepository) StatsService {
	return &statsService{
		statsRepo: statsRepo,
		examRepo:  examRepo,
		now:       time.Now,
	}
}

func (s *statsService) Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	log := logger.FromContext(ctx)

	cached, err := s.statsRepo.CachedDashboard(ctx, userID)
	if err != nil {
		log.Error("failed to read dashboard cache: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if cached != nil && s.now().Sub(cached.RefreshedAt) < dashboardCacheTTL {
		log.Debug("dashboard cache hit: user_id=%d", userID)
		return cached, nil
	}

	dashboard, err := s.build(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.statsRepo.StoreDashboard(ctx, userID, *dashboard); err != nil {
		// Serving a fresh dashboard matters more than caching it.
		log.Warn("failed to store dashboard cache: %v", err)
	}
	return dashboard, nil
}

// RefreshUser rebuilds and stores the dashboard unconditionally. Background
// jobs call this after exams complete so the next read is a cache hit.
func (s *statsService) RefreshUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("refreshing dashboard: user_id=%d", userID)

	dashboard, err := s.build(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.statsRepo.StoreDashboard(ctx, userID, *dashboard); err != nil {
		log.Error("failed to store dashboard cache: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *statsService) SubjectAccuracy(ctx context.Context, userID int64) ([]models.SubjectAccuracyStat, error) {
	log := logger.FromContext(ctx)

	stats, err := s.statsRepo.SubjectAccuracy(ctx, userID)
	if err != nil {
		log.Error("failed to get subject accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) build(ctx context.Context, userID int64) (*models.Dashboard, error) {
	log := logger.FromContext(ctx)

	summary, err := s.statsRepo.Summary(ctx, userID)
	if err != nil {
		log.Error("failed to build dashboard summary: %v", err)
		return nil, errors.NewInternalError(err)
	}
	accuracy, err := s.statsRepo.SubjectAccuracy(ctx, userID)
	if err != nil {
		log.Error("failed to build subject accuracy: %v", err)
		return nil, errors.NewInternalError(err)
	}
	activity, err := s.statsRepo.DailyReviewCounts(ctx, userID, 30)
	if err != nil {
		log.Error("failed to build review activity: %v", err)
		return nil, errors.NewInternalError(err)
	}
	recent, err := s.examRepo.ListExams(ctx, userID, 5)
	if err != nil {
		log.Error("failed to list recent exams: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &models.Dashboard{
		Summary:         *summary,
		SubjectAccuracy: accuracy,
		ReviewActivity:  activity,
		RecentExams:     recent,
		RefreshedAt:     s.now(),
	}, nil
}
