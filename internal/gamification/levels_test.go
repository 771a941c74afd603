package gamification_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mhartley/sqeprep/internal/gamification"
)

func TestLevelForPoints(t *testing.T) {
	tests := []struct {
		points int
		level  int
	}{
		{0, 1},
		{900, 1},
		{999, 1},
		{1000, 2},
		{2499, 2},
		{2500, 3},
		{9999, 4},
		{10000, 5},
		{99999, 9},
		{100000, 10},
		{250000, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, gamification.LevelForPoints(tt.points), "points=%d", tt.points)
	}
}

func TestLevelForPoints_PureFunction(t *testing.T) {
	// Two users with identical points always compute identical levels.
	for points := 0; points <= 110000; points += 137 {
		assert.Equal(t, gamification.LevelForPoints(points), gamification.LevelForPoints(points))
	}
}

func TestLevelForPoints_Monotonic(t *testing.T) {
	prev := 0
	for points := 0; points <= 110000; points += 500 {
		level := gamification.LevelForPoints(points)
		assert.GreaterOrEqual(t, level, prev, "level must never decrease as points grow")
		prev = level
	}
	assert.Equal(t, gamification.MaxLevel, prev)
}

func TestPointsToNextLevel(t *testing.T) {
	assert.Equal(t, 100, gamification.PointsToNextLevel(900))
	assert.Equal(t, 1500, gamification.PointsToNextLevel(1000))
	assert.Equal(t, 0, gamification.PointsToNextLevel(100000), "top level has no next threshold")
}

func TestLevelThreshold(t *testing.T) {
	assert.Equal(t, 0, gamification.LevelThreshold(1))
	assert.Equal(t, 1000, gamification.LevelThreshold(2))
	assert.Equal(t, 100000, gamification.LevelThreshold(10))
	assert.Equal(t, 0, gamification.LevelThreshold(11))
}
