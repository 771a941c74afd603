package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mhartley/sqeprep/internal/models"
	"github.com/mhartley/sqeprep/internal/repository"
	"github.com/mhartley/sqeprep/internal/repository/sqlite"
	"github.com/mhartley/sqeprep/internal/testutil"
)

type ChallengeRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ChallengeRepository
}

func (s *ChallengeRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewChallengeRepository(s.db)
}

func (s *ChallengeRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ChallengeRepositorySuite) createUser(username string) int64 {
	ctx := context.Background()
	res, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, username)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ChallengeRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()

	err := s.repo.Insert(ctx, models.DailyChallenge{Date: "2026-08-30", QuestionIDs: []int64{3, 1, 2}})
	s.Require().NoError(err)

	challenge, err := s.repo.Get(ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Require().NotNil(challenge)
	s.Equal([]int64{3, 1, 2}, challenge.QuestionIDs)
}

func (s *ChallengeRepositorySuite) TestInsert_SecondWriterLoses() {
	ctx := context.Background()

	err := s.repo.Insert(ctx, models.DailyChallenge{Date: "2026-08-30", QuestionIDs: []int64{1, 2}})
	s.Require().NoError(err)
	err = s.repo.Insert(ctx, models.DailyChallenge{Date: "2026-08-30", QuestionIDs: []int64{9, 9}})
	s.Require().NoError(err)

	challenge, err := s.repo.Get(ctx, "2026-08-30")
	s.Require().NoError(err)
	s.Equal([]int64{1, 2}, challenge.QuestionIDs)
}

func (s *ChallengeRepositorySuite) TestInsertAttempt_OnePerUserPerDay() {
	ctx := context.Background()
	userID := s.createUser("alice")

	err := s.repo.Insert(ctx, models.DailyChallenge{Date: "2026-08-30", QuestionIDs: []int64{1, 2}})
	s.Require().NoError(err)

	attempt := models.ChallengeAttempt{UserID: userID, ChallengeDate: "2026-08-30", Correct: 2, Total: 2, Perfect: true}
	_, err = s.repo.InsertAttempt(ctx, attempt)
	s.Require().NoError(err)

	_, err = s.repo.InsertAttempt(ctx, attempt)
	s.Error(err)

	got, err := s.repo.AttemptFor(ctx, userID, "2026-08-30")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.True(got.Perfect)
}

func (s *ChallengeRepositorySuite) TestAttemptFor_MissingReturnsNil() {
	ctx := context.Background()
	userID := s.createUser("alice")

	got, err := s.repo.AttemptFor(ctx, userID, "2026-08-30")
	s.Require().NoError(err)
	s.Nil(got)
}

func TestChallengeRepositorySuite(t *testing.T) {
	suite.Run(t, new(ChallengeRepositorySuite))
}
