package progression

import "strings"

const (
	// XPPerLevel is the width of every level band.
	XPPerLevel = 200

	// SkillCompletionXP is awarded once when every module of a skill is done.
	SkillCompletionXP = 60

	// WordSolvedXP is awarded for each fully revealed word.
	WordSolvedXP = 40

	// QuizBaseXP is the floor of a quiz completion award. A perfect score
	// doubles it.
	QuizBaseXP = 50
)

// LevelForXP derives the level from xp: floor(xp/200)+1. Negative xp floors
// toward minus infinity, so -1 is level 0.
func LevelForXP(xp int) int {
	q := xp / XPPerLevel
	if xp%XPPerLevel != 0 && xp < 0 {
		q--
	}
	return q + 1
}

// XPForLevel returns the minimum xp at which level is reached.
func XPForLevel(level int) int {
	return (level - 1) * XPPerLevel
}

// QuizAward returns the rounded percentage for score out of total and the xp
// it earns: QuizBaseXP + round(percent/2). Halves round up.
func QuizAward(score, total int) (percent, gain int) {
	if total <= 0 {
		return 0, QuizBaseXP
	}
	if score < 0 {
		score = 0
	}
	if score > total {
		score = total
	}
	percent = (200*score + total) / (2 * total)
	gain = QuizBaseXP + (percent+1)/2
	return percent, gain
}

// BadgeKey is the badge issued for completing skill: the skill lowercased and
// trimmed, inner whitespace runs replaced by "_", suffixed with "_champ".
func BadgeKey(skill string) string {
	fields := strings.Fields(strings.ToLower(skill))
	return strings.Join(fields, "_") + "_champ"
}
