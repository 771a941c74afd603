package gamification

// levelThresholds[i] is the minimum point total for level i+1. Ten levels,
// 0 through 100,000 points.
var levelThresholds = []int{
	0,       // level 1
	1000,    // level 2
	2500,    // level 3
	5000,    // level 4
	10000,   // level 5
	20000,   // level 6
	35000,   // level 7
	50000,   // level 8
	75000,   // level 9
	100000,  // level 10
}

// MaxLevel is the highest reachable level.
const MaxLevel = 10

// LevelForPoints derives the level from a point total. Level is always a pure
// function of points; stored levels are only a cache of this computation.
func LevelForPoints(points int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if points >= threshold {
			level = i + 1
		}
	}
	return level
}

// LevelThreshold returns the minimum points for the given level, or 0 for
// out-of-range levels.
func LevelThreshold(level int) int {
	if level < 1 || level > len(levelThresholds) {
		return 0
	}
	return levelThresholds[level-1]
}

// PointsToNextLevel returns how many points are missing until the next level,
// or 0 at the top level.
func PointsToNextLevel(points int) int {
	level := LevelForPoints(points)
	if level >= MaxLevel {
		return 0
	}
	return levelThresholds[level] - points
}
