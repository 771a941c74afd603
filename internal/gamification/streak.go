package gamification

import (
	"time"

	"github.com/mhartley/sqeprep/internal/models"
)

// AdvanceStreak computes the streak transition for an activity happening today.
// Same-day activity is a no-op for the counter; activity exactly one day after
// the last continues the streak and earns the daily bonus (plus week/month
// bonuses as those marks are crossed); any other gap resets the streak to 1.
// Broken is only set when a prior activity date existed and was not yesterday.
func AdvanceStreak(current, longest int, lastActivity *time.Time, today time.Time) models.StreakInfo {
	day := models.DateOnly(today)

	info := models.StreakInfo{
		CurrentStreak: current,
		LongestStreak: longest,
	}

	switch {
	case lastActivity != nil && models.SameDay(*lastActivity, day):
		// Already counted today.
	case lastActivity != nil && models.SameDay(lastActivity.AddDate(0, 0, 1), day):
		info.CurrentStreak = current + 1
		info.Updated = true
		info.BonusPoints = PointsStreakDay
		if info.CurrentStreak == StreakWeekMark {
			info.BonusPoints += PointsStreakWeekBonus
		}
		if info.CurrentStreak == StreakMonthMark {
			info.BonusPoints += PointsStreakMonthBonus
		}
	default:
		info.CurrentStreak = 1
		info.Updated = true
		info.Broken = lastActivity != nil
	}

	if info.CurrentStreak > info.LongestStreak {
		info.LongestStreak = info.CurrentStreak
	}
	return info
}
