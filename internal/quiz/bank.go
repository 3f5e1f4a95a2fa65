package quiz

import (
	"slices"
	"strings"
)

// Question is one multiple-choice item. Answer indexes Options.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"-"`
}

// Banks maps a subject to its ordered questions.
type Banks map[string][]Question

// DefaultBanks returns the built-in question banks.
func DefaultBanks() Banks {
	return Banks{
		"math": {
			{Prompt: "What is 12 × 8?", Options: []string{"96", "108", "88", "112"}, Answer: 0},
			{Prompt: "Solve: 2x + 6 = 18", Options: []string{"x=4", "x=6", "x=8", "x=12"}, Answer: 0},
			{Prompt: "Square root of 144?", Options: []string{"10", "11", "12", "13"}, Answer: 2},
		},
		"science": {
			{Prompt: "Who proposed the atomic model with orbits?", Options: []string{"Dalton", "Bohr", "Rutherford", "Thomson"}, Answer: 1},
			{Prompt: "Electron charge is:", Options: []string{"Positive", "Negative", "Neutral", "It depends"}, Answer: 1},
		},
		"english": {
			{Prompt: "Choose the synonym of 'Rapid'", Options: []string{"Slow", "Swift", "Dull", "Hard"}, Answer: 1},
			{Prompt: "Fill in the blank: She ___ to school daily.", Options: []string{"go", "goes", "gone", "going"}, Answer: 1},
		},
		"history": {
			{Prompt: "Who was the first Mughal Emperor?", Options: []string{"Akbar", "Babur", "Shah Jahan", "Aurangzeb"}, Answer: 1},
		},
		"geography": {
			{Prompt: "The largest continent is:", Options: []string{"Africa", "Asia", "Europe", "Antarctica"}, Answer: 1},
		},
	}
}

// Subjects lists the subjects with at least one question, sorted.
func (b Banks) Subjects() []string {
	out := make([]string, 0, len(b))
	for s, qs := range b {
		if len(qs) > 0 {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

func (b Banks) lookup(subject string) (string, []Question, bool) {
	key := strings.ToLower(strings.TrimSpace(subject))
	qs := b[key]
	return key, qs, len(qs) > 0
}
