package games

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/progression"
)

const hidden = "_"

type WordPair struct {
	Word string `json:"-"`
	Hint string `json:"hint"`
}

// DefaultWords is the built-in word cycle.
func DefaultWords() []WordPair {
	return []WordPair{
		{Word: "ATOM", Hint: "Smallest unit of matter"},
		{Word: "DELTA", Hint: "Landform at river mouth"},
		{Word: "NOUN", Hint: "Part of speech"},
	}
}

type WordRound struct {
	ID     string   `json:"id"`
	Hint   string   `json:"hint"`
	Slots  []string `json:"slots"`
	Used   []string `json:"used"`
	Solved bool     `json:"solved"`
	word   string
}

// Masked renders the slots separated by spaces, e.g. "A _ O _".
func (r WordRound) Masked() string {
	return strings.Join(r.Slots, " ")
}

type WordView struct {
	Round  *WordRound `json:"round"`
	Masked string     `json:"masked,omitempty"`
	Solved int        `json:"solved"`
}

type GuessResult struct {
	Hit      bool     `json:"hit"`
	Repeated bool     `json:"repeated"`
	Solved   bool     `json:"solved"`
	View     WordView `json:"view"`
}

// WordReveal is the letter-guessing game. Guessing reveals every occurrence
// of a letter. A fully revealed word records one activity, grants
// WordSolvedXP once and schedules the next word in the cycle.
type WordReveal struct {
	mu       sync.Mutex
	words    []WordPair
	sched    Scheduler
	xp       XPAwarder
	activity ActivityRecorder
	users    CurrentUserSource
	delay    time.Duration

	index  int
	round  *WordRound
	solved int
	next   pending
}

func NewWordReveal(words []WordPair, sched Scheduler, xp XPAwarder, activity ActivityRecorder, users CurrentUserSource, delay time.Duration) *WordReveal {
	if len(words) == 0 {
		words = DefaultWords()
	}
	return &WordReveal{
		words:    words,
		sched:    sched,
		xp:       xp,
		activity: activity,
		users:    users,
		delay:    delay,
	}
}

// NewRound starts the current word of the cycle afresh.
func (g *WordReveal) NewRound(ctx context.Context) WordView {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next.invalidate()
	g.newRound(ctx)
	return g.view()
}

func (g *WordReveal) newRound(ctx context.Context) {
	pair := g.words[g.index%len(g.words)]
	word := strings.ToUpper(pair.Word)
	slots := make([]string, len([]rune(word)))
	for i := range slots {
		slots[i] = hidden
	}
	g.round = &WordRound{
		ID:    uuid.NewString(),
		Hint:  pair.Hint,
		Slots: slots,
		Used:  []string{},
		word:  word,
	}
	logger.FromContext(ctx).WithPrefix("word_game").Debug("new round %s: %d letters", g.round.ID, len(slots))
}

// Guess reveals letter. Used letters and guesses on a solved word change
// nothing.
func (g *WordReveal) Guess(ctx context.Context, letter string) (GuessResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("word_game")

	ch, ok := normalizeLetter(letter)
	if !ok {
		return GuessResult{}, ErrInvalidLetter
	}
	if g.round == nil {
		return GuessResult{}, ErrNoRound
	}
	r := g.round
	if r.Solved || slices.Contains(r.Used, ch) {
		return GuessResult{Repeated: true, Solved: r.Solved, View: g.view()}, nil
	}

	r.Used = append(r.Used, ch)
	hit := false
	for i, c := range []rune(r.word) {
		if string(c) == ch {
			r.Slots[i] = ch
			hit = true
		}
	}
	log.Debug("round %s: guessed %s, hit=%t, %s", r.ID, ch, hit, r.Masked())

	if hit && !slices.Contains(r.Slots, hidden) {
		g.complete(ctx)
	}
	return GuessResult{Hit: hit, Solved: r.Solved, View: g.view()}, nil
}

func (g *WordReveal) complete(ctx context.Context) {
	log := logger.FromContext(ctx).WithPrefix("word_game")

	g.round.Solved = true
	g.solved++
	g.activity.Record(ctx, models.ActivityGameComplete, "Word game word solved",
		map[string]any{"roundId": g.round.ID, "word": g.round.word})
	if user, ok := g.users.CurrentUser(ctx); ok {
		g.xp.AwardXP(ctx, user.ID, progression.WordSolvedXP, "solving word game")
	} else {
		log.Debug("word solved without a signed-in learner, no xp")
	}

	g.index = (g.index + 1) % len(g.words)
	g.next.invalidate()
	gen := g.next.generation
	g.next.cancel = g.sched.After(g.delay, "word_next_round", func(ctx context.Context) {
		g.mu.Lock()
		defer g.mu.Unlock()
		if g.next.generation != gen {
			return
		}
		g.next.cancel = nil
		g.newRound(ctx)
	})
}

func normalizeLetter(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return "", false
	}
	return s, true
}

// Stop drops the round and cancels any pending next round. The position in
// the word cycle is kept.
func (g *WordReveal) Stop(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next.invalidate()
	g.round = nil
	logger.FromContext(ctx).WithPrefix("word_game").Debug("stopped")
}

func (g *WordReveal) View() WordView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.view()
}

func (g *WordReveal) view() WordView {
	v := WordView{Solved: g.solved}
	if g.round != nil {
		r := *g.round
		r.Slots = slices.Clone(g.round.Slots)
		r.Used = slices.Clone(g.round.Used)
		v.Round = &r
		v.Masked = r.Masked()
	}
	return v
}
