package trends

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectHotStreak(t *testing.T) {
	pattern, ok := Detect([]int{22, 25, 31, 20, 28})
	assert.True(t, ok)
	assert.Equal(t, PatternHotStreak, pattern)
}

func TestDetectStreakBroken(t *testing.T) {
	pattern, ok := Detect([]int{24, 21, 33, 20, 19})
	assert.True(t, ok)
	assert.Equal(t, PatternStreakBroken, pattern)
}

func TestDetectNoPattern(t *testing.T) {
	cases := [][]int{
		{19, 25, 31, 20, 28},  // early dip breaks both patterns
		{22, 25, 18, 20, 15},  // dip in the middle
		{10, 12, 14, 16, 18},  // never reached the floor
		{22, 25, 31, 20},      // four games is not a window
		{},                    // nothing at all
		nil,                   // defensive nil
	}
	for _, points := range cases {
		_, ok := Detect(points)
		assert.False(t, ok, "points %v", points)
	}
}

func TestDetectFloorIsInclusive(t *testing.T) {
	_, ok := Detect([]int{20, 20, 20, 20, 20})
	assert.True(t, ok, "exactly 20 counts toward the streak")

	pattern, ok := Detect([]int{20, 20, 20, 20, 19})
	assert.True(t, ok)
	assert.Equal(t, PatternStreakBroken, pattern)
}
