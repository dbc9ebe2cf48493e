package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreForLines(t *testing.T) {
	tests := []struct {
		name       string
		lines      int
		level      int
		streak     int
		wantPoints int
		wantStreak int
	}{
		{name: "no clear scores zero", lines: 0, level: 3, streak: 4, wantPoints: 0, wantStreak: 0},
		{name: "single", lines: 1, level: 1, streak: 0, wantPoints: 100, wantStreak: 1},
		{name: "double", lines: 2, level: 1, streak: 0, wantPoints: 300, wantStreak: 1},
		{name: "triple", lines: 3, level: 1, streak: 0, wantPoints: 500, wantStreak: 1},
		{name: "quad", lines: 4, level: 1, streak: 0, wantPoints: 800, wantStreak: 1},
		{name: "level multiplies", lines: 2, level: 5, streak: 0, wantPoints: 1500, wantStreak: 1},
		{name: "second consecutive clear earns combo", lines: 1, level: 1, streak: 1, wantPoints: 100 + 50, wantStreak: 2},
		{name: "deep streak", lines: 1, level: 2, streak: 3, wantPoints: 200 + 50*3*2, wantStreak: 4},
		{name: "negative lines treated as no clear", lines: -2, level: 1, streak: 2, wantPoints: 0, wantStreak: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, streak := ScoreForLines(tt.lines, tt.level, tt.streak)
			assert.Equal(t, tt.wantPoints, points)
			assert.Equal(t, tt.wantStreak, streak)
		})
	}
}

func TestLevelForLines(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{20, 3},
		{100, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForLines(tt.total), "total %d", tt.total)
	}
}

func TestSpeedForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 800 * time.Millisecond},
		{2, 750 * time.Millisecond},
		{10, 350 * time.Millisecond},
		{15, 100 * time.Millisecond},
		{50, 100 * time.Millisecond}, // floored
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SpeedForLevel(tt.level), "level %d", tt.level)
	}
}
