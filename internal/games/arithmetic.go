package games

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
)

const (
	minOperand  = 2
	maxOperand  = 12
	maxOffset   = 10
	choiceCount = 4
)

var operators = []string{"+", "-", "×"}

// ArithmeticRound is one generated problem. Answer stays server side.
type ArithmeticRound struct {
	ID       string `json:"id"`
	A        int    `json:"a"`
	B        int    `json:"b"`
	Operator string `json:"operator"`
	Answer   int    `json:"-"`
	Choices  []int  `json:"choices"`
	Solved   bool   `json:"solved"`
}

// Problem renders the round as "a op b = ?".
func (r ArithmeticRound) Problem() string {
	return fmt.Sprintf("%d %s %d = ?", r.A, r.Operator, r.B)
}

type ArithmeticView struct {
	Round    *ArithmeticRound `json:"round"`
	Problem  string           `json:"problem,omitempty"`
	Correct  int              `json:"correct"`
	Attempts int              `json:"attempts"`
}

// SelectResult is the outcome of picking a choice.
type SelectResult struct {
	Correct bool           `json:"correct"`
	View    ArithmeticView `json:"view"`
}

// Arithmetic generates quick-fire arithmetic rounds. A correct pick records
// an activity and schedules the next round; it grants no xp.
type Arithmetic struct {
	mu       sync.Mutex
	rng      *rand.Rand
	sched    Scheduler
	activity ActivityRecorder
	delay    time.Duration

	round    *ArithmeticRound
	correct  int
	attempts int
	next     pending
}

func NewArithmetic(rng *rand.Rand, sched Scheduler, activity ActivityRecorder, delay time.Duration) *Arithmetic {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Arithmetic{rng: rng, sched: sched, activity: activity, delay: delay}
}

// NewRound replaces the current round. Any scheduled next round is canceled.
func (g *Arithmetic) NewRound(ctx context.Context) ArithmeticView {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next.invalidate()
	g.newRound(ctx)
	return g.view()
}

func (g *Arithmetic) newRound(ctx context.Context) {
	a := g.between(minOperand, maxOperand)
	b := g.between(minOperand, maxOperand)
	op := operators[g.rng.Intn(len(operators))]

	var answer int
	switch op {
	case "+":
		answer = a + b
	case "-":
		answer = a - b
	default:
		answer = a * b
	}

	g.round = &ArithmeticRound{
		ID:       uuid.NewString(),
		A:        a,
		B:        b,
		Operator: op,
		Answer:   answer,
		Choices:  g.choices(answer),
	}
	logger.FromContext(ctx).WithPrefix("math_game").Debug("new round %s: %s", g.round.ID, g.round.Problem())
}

// choices returns the answer plus distinct distractors within maxOffset of
// it, shuffled.
func (g *Arithmetic) choices(answer int) []int {
	out := []int{answer}
	for len(out) < choiceCount {
		c := answer + g.between(-maxOffset, maxOffset)
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func (g *Arithmetic) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}

// Select checks value against the current round. Every pick counts as an
// attempt. A pick on a solved round adds no correct answer and schedules
// nothing.
func (g *Arithmetic) Select(ctx context.Context, value int) (SelectResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("math_game")
	if g.round == nil {
		return SelectResult{}, ErrNoRound
	}
	g.attempts++
	if g.round.Solved {
		log.Debug("round %s already solved, pick %d only counted (%d/%d)", g.round.ID, value, g.correct, g.attempts)
		return SelectResult{Correct: value == g.round.Answer, View: g.view()}, nil
	}

	ok := value == g.round.Answer
	if ok {
		g.correct++
		g.round.Solved = true
		g.activity.Record(ctx, models.ActivityGameCorrect, "Math game correct",
			map[string]any{"roundId": g.round.ID})
		g.scheduleNext()
	}
	log.Debug("round %s: picked %d, correct=%t (%d/%d)", g.round.ID, value, ok, g.correct, g.attempts)
	return SelectResult{Correct: ok, View: g.view()}, nil
}

func (g *Arithmetic) scheduleNext() {
	g.next.invalidate()
	gen := g.next.generation
	g.next.cancel = g.sched.After(g.delay, "math_next_round", func(ctx context.Context) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.next.generation != gen {
			return
		}
		g.next.cancel = nil
		g.newRound(ctx)
	})
}

// Stop tears the game down: the round is dropped and any pending next round
// is canceled. Counters are kept.
func (g *Arithmetic) Stop(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next.invalidate()
	g.round = nil
	logger.FromContext(ctx).WithPrefix("math_game").Debug("stopped")
}

func (g *Arithmetic) View() ArithmeticView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *Arithmetic) view() ArithmeticView {
	v := ArithmeticView{Correct: g.correct, Attempts: g.attempts}
	if g.round != nil {
		r := *g.round
		r.Choices = slices.Clone(g.round.Choices)
		v.Round = &r
		v.Problem = r.Problem()
	}
	return v
}
