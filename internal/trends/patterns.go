package trends

// scoringFloor is the point total a game must reach to count toward a
// streak.
const scoringFloor = 20

// Pattern names a detected scoring trend.
type Pattern string

const (
	// PatternHotStreak is five straight games at 20+ points.
	PatternHotStreak Pattern = "5 straight games with 20+ points"
	// PatternStreakBroken is four straight 20+ games followed by one under 20.
	PatternStreakBroken Pattern = "4 straight 20+ games then one under 20"
)

// Detect classifies the last five games, oldest first. The hot streak wins
// when both would apply (it cannot, but the precedence mirrors the check
// order). Returns false for anything other than exactly five games.
func Detect(points []int) (Pattern, bool) {
	if isHotStreak(points) {
		return PatternHotStreak, true
	}
	if isStreakBroken(points) {
		return PatternStreakBroken, true
	}
	return "", false
}

func isHotStreak(points []int) bool {
	if len(points) != 5 {
		return false
	}
	for _, p := range points {
		if p < scoringFloor {
			return false
		}
	}
	return true
}

func isStreakBroken(points []int) bool {
	if len(points) != 5 {
		return false
	}
	for _, p := range points[:4] {
		if p < scoringFloor {
			return false
		}
	}
	return points[4] < scoringFloor
}
