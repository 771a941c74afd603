package gamification

// Fixed point awards. These values are part of the product contract; changing
// them retroactively skews level progression for existing users.
const (
	PointsCorrectAnswer   = 10
	PointsIncorrectAnswer = 2

	PointsMockExam           = 100
	PointsMockHighScoreBonus = 50  // score >= 85%
	PointsMockPerfectBonus   = 100 // score == 100%, on top of the high-score bonus
	MockHighScoreThreshold   = 85.0

	PointsFlashcardReview    = 5
	PointsFlashcardEasyBonus = 3

	PointsDailyChallenge             = 50
	PointsDailyChallengePerfectBonus = 25

	PointsStreakDay        = 10
	PointsStreakWeekBonus  = 50  // awarded when the streak reaches 7
	PointsStreakMonthBonus = 200 // awarded when the streak reaches 30
	StreakWeekMark         = 7
	StreakMonthMark        = 30
)

// ActivityKind identifies the user action being rewarded.
type ActivityKind string

const (
	ActivityQuestionAnswered  ActivityKind = "question_answered"
	ActivityMockCompleted     ActivityKind = "mock_completed"
	ActivityFlashcardReviewed ActivityKind = "flashcard_reviewed"
	ActivityDailyChallenge    ActivityKind = "daily_challenge"
	ActivityLogin             ActivityKind = "login"
)

// Activity is one discrete user action. Only the fields relevant to the kind
// are read: Correct for answers, ScorePercent for mocks, RatedEasy for
// flashcard reviews, Perfect for challenges.
type Activity struct {
	Kind         ActivityKind
	Correct      bool
	RatedEasy    bool
	ScorePercent float64
	Perfect      bool
}

// ActivityPoints returns the base points for an activity, before streak
// bonuses and badge awards.
func ActivityPoints(a Activity) int {
	switch a.Kind {
	case ActivityQuestionAnswered:
		if a.Correct {
			return PointsCorrectAnswer
		}
		return PointsIncorrectAnswer
	case ActivityMockCompleted:
		points := PointsMockExam
		if a.ScorePercent >= MockHighScoreThreshold {
			points += PointsMockHighScoreBonus
		}
		if a.ScorePercent >= 100 {
			points += PointsMockPerfectBonus
		}
		return points
	case ActivityFlashcardReviewed:
		if a.RatedEasy {
			return PointsFlashcardReview + PointsFlashcardEasyBonus
		}
		return PointsFlashcardReview
	case ActivityDailyChallenge:
		if a.Perfect {
			return PointsDailyChallenge + PointsDailyChallengePerfectBonus
		}
		return PointsDailyChallenge
	case ActivityLogin:
		return 0 // login only advances the streak
	default:
		return 0
	}
}
