package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
	"github.com/mhartley/sqeprep/internal/repository/sqlite"
	"github.com/mhartley/sqeprep/internal/testutil"
)

type StatsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.StatsRepository
}

func (s *StatsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewStatsRepository(s.db)
}

func (s *StatsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *StatsRepositorySuite) createUser(username string) int64 {
	res, err := s.db.ExecContext(context.Background(), `INSERT INTO users (username) VALUES (?)`, username)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *StatsRepositorySuite) TestSummary_EmptyUser() {
	ctx := context.Background()
	userID := s.createUser("alice")

	summary, err := s.repo.Summary(ctx, userID)
	s.Require().NoError(err)
	s.Equal(0, summary.TotalAnswered)
	s.Equal(0, summary.CardsTotal)
	s.Equal(0, summary.Points)
	s.Equal(0.0, summary.OverallAccuracy)
}

func (s *StatsRepositorySuite) TestSubjectAccuracy() {
	ctx := context.Background()
	userID := s.createUser("alice")

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (subject, prompt, options, answer_index)
		VALUES ('Trusts', 'q1', '["a","b"]', 0)
	`)
	s.Require().NoError(err)
	qID, err := res.LastInsertId()
	s.Require().NoError(err)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO answer_history (user_id, question_id, selected_index, was_correct, source)
		VALUES (?, ?, 0, 1, 'practice'), (?, ?, 1, 0, 'practice'), (?, ?, 0, 1, 'practice'), (?, ?, 0, 1, 'practice')
	`, userID, qID, userID, qID, userID, qID, userID, qID)
	s.Require().NoError(err)

	stats, err := s.repo.SubjectAccuracy(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(stats, 1)
	s.Equal("Trusts", stats[0].Subject)
	s.Equal(4, stats[0].Attempts)
	s.Equal(3, stats[0].Correct)
	s.InDelta(75.0, stats[0].Accuracy, 1e-9)
}

func (s *StatsRepositorySuite) TestDashboardCache_Roundtrip() {
	ctx := context.Background()
	userID := s.createUser("alice")

	miss, err := s.repo.CachedDashboard(ctx, userID)
	s.Require().NoError(err)
	s.Nil(miss)

	dashboard := models.Dashboard{
		Summary:     models.DashboardSummary{TotalAnswered: 42, Points: 500, Level: 1},
		RefreshedAt: time.Now(),
	}
	err = s.repo.StoreDashboard(ctx, userID, dashboard)
	s.Require().NoError(err)

	cached, err := s.repo.CachedDashboard(ctx, userID)
	s.Require().NoError(err)
	s.Require().NotNil(cached)
	s.Equal(42, cached.Summary.TotalAnswered)
	s.Equal(500, cached.Summary.Points)

	// Storing again overwrites the previous payload.
	dashboard.Summary.TotalAnswered = 43
	err = s.repo.StoreDashboard(ctx, userID, dashboard)
	s.Require().NoError(err)

	cached, err = s.repo.CachedDashboard(ctx, userID)
	s.Require().NoError(err)
	s.Equal(43, cached.Summary.TotalAnswered)
}

func TestStatsRepositorySuite(t *testing.T) {
	suite.Run(t, new(StatsRepositorySuite))
}
