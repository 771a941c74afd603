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

type FlashcardRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.FlashcardRepository
}

func (s *FlashcardRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewFlashcardRepository(s.db)
}

func (s *FlashcardRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *FlashcardRepositorySuite) createUser(username string) int64 {
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (username) VALUES (?)`, username)
	s.Require().NoError(err)

	var id int64
	err = s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = ?`, username).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *FlashcardRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	userID := s.createUser("alice")

	id, err := s.repo.Insert(ctx, models.Flashcard{
		UserID:  userID,
		Subject: "Trusts",
		Front:   "What are the three certainties?",
		Back:    "Intention, subject matter, objects",
	})
	s.Require().NoError(err)

	card, err := s.repo.Get(ctx, id, userID)
	s.Require().NoError(err)
	s.Require().NotNil(card)
	s.Equal("Trusts", card.Subject)
	s.Equal("What are the three certainties?", card.Front)
}

func (s *FlashcardRepositorySuite) TestGet_WrongUserReturnsNil() {
	ctx := context.Background()
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	id, err := s.repo.Insert(ctx, models.Flashcard{UserID: alice, Subject: "Trusts", Front: "f", Back: "b"})
	s.Require().NoError(err)

	card, err := s.repo.Get(ctx, id, bob)
	s.Require().NoError(err)
	s.Nil(card)
}

func (s *FlashcardRepositorySuite) TestReviewHistory_AppendOnlyOrdering() {
	ctx := context.Background()
	userID := s.createUser("alice")
	cardID, err := s.repo.Insert(ctx, models.Flashcard{UserID: userID, Subject: "Trusts", Front: "f", Back: "b"})
	s.Require().NoError(err)

	now := time.Now()
	first := models.ReviewRecord{
		FlashcardID: cardID, ReviewDate: now, Rating: "easy", Quality: 4,
		EaseFactor: 2.6, IntervalDays: 1, Repetitions: 1, NextReviewDate: now.AddDate(0, 0, 1),
	}
	second := models.ReviewRecord{
		FlashcardID: cardID, ReviewDate: now, Rating: "medium", Quality: 3,
		EaseFactor: 2.46, IntervalDays: 6, Repetitions: 2, NextReviewDate: now.AddDate(0, 0, 6),
	}
	_, err = s.repo.AppendReview(ctx, first)
	s.Require().NoError(err)
	_, err = s.repo.AppendReview(ctx, second)
	s.Require().NoError(err)

	history, err := s.repo.ReviewHistory(ctx, cardID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal("easy", history[0].Rating)
	s.Equal("medium", history[1].Rating)

	latest, err := s.repo.LatestReview(ctx, cardID)
	s.Require().NoError(err)
	s.Require().NotNil(latest)
	s.Equal("medium", latest.Rating)
	s.Equal(6, latest.IntervalDays)
	s.Equal(2, latest.Repetitions)
}

func (s *FlashcardRepositorySuite) TestLatestReview_NoHistoryReturnsNil() {
	ctx := context.Background()
	userID := s.createUser("alice")
	cardID, err := s.repo.Insert(ctx, models.Flashcard{UserID: userID, Subject: "Trusts", Front: "f", Back: "b"})
	s.Require().NoError(err)

	latest, err := s.repo.LatestReview(ctx, cardID)
	s.Require().NoError(err)
	s.Nil(latest)
}

func (s *FlashcardRepositorySuite) TestUserReviewHistory_GroupsByCard() {
	ctx := context.Background()
	userID := s.createUser("alice")

	cardA, err := s.repo.Insert(ctx, models.Flashcard{UserID: userID, Subject: "Trusts", Front: "a", Back: "a"})
	s.Require().NoError(err)
	cardB, err := s.repo.Insert(ctx, models.Flashcard{UserID: userID, Subject: "Land Law", Front: "b", Back: "b"})
	s.Require().NoError(err)

	now := time.Now()
	for _, cardID := range []int64{cardA, cardA, cardB} {
		_, err = s.repo.AppendReview(ctx, models.ReviewRecord{
			FlashcardID: cardID, ReviewDate: now, Rating: "medium", Quality: 3,
			EaseFactor: 2.5, IntervalDays: 1, Repetitions: 1, NextReviewDate: now.AddDate(0, 0, 1),
		})
		s.Require().NoError(err)
	}

	history, err := s.repo.UserReviewHistory(ctx, userID)
	s.Require().NoError(err)
	s.Len(history[cardA], 2)
	s.Len(history[cardB], 1)
}

func TestFlashcardRepositorySuite(t *testing.T) {
	suite.Run(t, new(FlashcardRepositorySuite))
}
