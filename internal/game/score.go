package game

import "time"

// baseLineScores maps lines cleared in one lock to base points. Four
// is the maximum per lock since no piece spans more than four rows.
var baseLineScores = [5]int{0, 100, 300, 500, 800}

// ScoreForLines returns the points awarded for a lock that cleared
// the given number of lines, plus the new combo streak. A clear
// increments the streak first; once the streak exceeds 1 each lock
// earns a 50*(streak-1)*level bonus on top of the base table. A lock
// that clears nothing resets the streak and scores zero.
func ScoreForLines(lines, level, streak int) (points, newStreak int) {
	if lines <= 0 {
		return 0, 0
	}
	if lines >= len(baseLineScores) {
		lines = len(baseLineScores) - 1
	}
	newStreak = streak + 1
	points = baseLineScores[lines] * level
	if newStreak > 1 {
		points += 50 * (newStreak - 1) * level
	}
	return points, newStreak
}

// LevelForLines returns the level for a cumulative line count: one
// level per ten lines, starting at level 1.
func LevelForLines(total int) int {
	return total/10 + 1
}

// SpeedForLevel returns the gravity tick interval for a level,
// dropping 50ms per level from 800ms with a 100ms floor.
func SpeedForLevel(level int) time.Duration {
	ms := 800 - (level-1)*50
	if ms < 100 {
		ms = 100
	}
	return time.Duration(ms) * time.Millisecond
}
