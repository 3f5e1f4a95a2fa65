package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/progression"
)

var (
	ErrUnknownSubject   = errors.New("quiz: unknown subject")
	ErrNotInProgress    = errors.New("quiz: no quiz in progress")
	ErrOptionOutOfRange = errors.New("quiz: option out of range")
)

type State int

const (
	Idle State = iota
	InProgress
)

func (s State) String() string {
	if s == InProgress {
		return "in_progress"
	}
	return "idle"
}

// XPAwarder grants xp to a learner.
type XPAwarder interface {
	AwardXP(ctx context.Context, userID int64, amount int, reason string) (*models.Profile, bool)
}

// ActivityRecorder appends to the activity feed.
type ActivityRecorder interface {
	Record(ctx context.Context, typ models.ActivityType, message string, meta map[string]any) models.ActivityEntry
}

// CurrentUserSource resolves the signed-in learner.
type CurrentUserSource interface {
	CurrentUser(ctx context.Context) (*models.Profile, bool)
}

// QuestionView is what a surface renders for the current question.
type QuestionView struct {
	AttemptID       string   `json:"attemptId"`
	Subject         string   `json:"subject"`
	Title           string   `json:"title"`
	Index           int      `json:"index"`
	Total           int      `json:"total"`
	Prompt          string   `json:"prompt"`
	Options         []string `json:"options"`
	Selected        int      `json:"selected"`
	Progress        string   `json:"progress"`
	ProgressPercent int      `json:"progressPercent"`
}

// Result is the outcome of a finished attempt.
type Result struct {
	AttemptID string `json:"attemptId"`
	Subject   string `json:"subject"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
	XPGained  int    `json:"xpGained"`
	Awarded   bool   `json:"awarded"`
}

// Step is returned by Advance: either the next question or the final result.
type Step struct {
	Finished bool          `json:"finished"`
	Question *QuestionView `json:"question,omitempty"`
	Result   *Result       `json:"result,omitempty"`
}

// Session drives one quiz attempt at a time. Selection and advancement are
// separate; only the last selection for a question counts.
type Session struct {
	mu       sync.Mutex
	banks    Banks
	xp       XPAwarder
	activity ActivityRecorder
	users    CurrentUserSource
	newID    func() string

	state     State
	attemptID string
	subject   string
	questions []Question
	index     int
	answers   []int
}

func NewSession(banks Banks, xp XPAwarder, activity ActivityRecorder, users CurrentUserSource) *Session {
	if banks == nil {
		banks = DefaultBanks()
	}
	return &Session{
		banks:    banks,
		xp:       xp,
		activity: activity,
		users:    users,
		newID:    uuid.NewString,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins a new attempt for subject, discarding any attempt in
// progress. An unknown subject leaves the session untouched.
func (s *Session) Start(ctx context.Context, subject string) (QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx).WithPrefix("quiz")

	key, questions, ok := s.banks.lookup(subject)
	if !ok {
		log.Debug("no question bank for %q", subject)
		return QuestionView{}, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
	if s.state == InProgress {
		log.Debug("abandoning attempt %s for a new %s quiz", s.attemptID, key)
	}

	s.state = InProgress
	s.attemptID = s.newID()
	s.subject = key
	s.questions = questions
	s.index = 0
	s.answers = make([]int, len(questions))
	for i := range s.answers {
		s.answers[i] = -1
	}

	s.activity.Record(ctx, models.ActivityQuizStart, fmt.Sprintf("Started %s quiz", key),
		map[string]any{"subject": key, "attemptId": s.attemptID})
	log.Info("quiz started: subject=%s, attempt=%s, questions=%d", key, s.attemptID, len(questions))
	return s.view(), nil
}

// SelectAnswer records option for the current question and reports whether
// it is correct. It does not advance.
func (s *Session) SelectAnswer(ctx context.Context, option int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return false, ErrNotInProgress
	}
	q := s.questions[s.index]
	if option < 0 || option >= len(q.Options) {
		return false, fmt.Errorf("%w: %d", ErrOptionOutOfRange, option)
	}

	s.answers[s.index] = option
	correct := option == q.Answer
	logger.FromContext(ctx).WithPrefix("quiz").Debug("attempt %s q%d: selected %d, correct=%t", s.attemptID, s.index, option, correct)
	return correct, nil
}

// Score counts questions whose recorded selection is correct.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score()
}

func (s *Session) score() int {
	n := 0
	for i, a := range s.answers {
		if a == s.questions[i].Answer {
			n++
		}
	}
	return n
}

// Advance moves to the next question, or finalizes the attempt on the last
// one: xp is awarded to the signed-in learner, a completion entry is
// recorded and the session returns to Idle.
func (s *Session) Advance(ctx context.Context) (Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return Step{}, ErrNotInProgress
	}
	if s.index < len(s.questions)-1 {
		s.index++
		v := s.view()
		return Step{Question: &v}, nil
	}

	result := s.finish(ctx)
	return Step{Finished: true, Result: &result}, nil
}

func (s *Session) finish(ctx context.Context) Result {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	score, total := s.score(), len(s.questions)
	percent, gain := progression.QuizAward(score, total)
	result := Result{
		AttemptID: s.attemptID,
		Subject:   s.subject,
		Score:     score,
		Total:     total,
		Percent:   percent,
		XPGained:  gain,
	}

	if user, ok := s.users.CurrentUser(ctx); ok {
		_, result.Awarded = s.xp.AwardXP(ctx, user.ID, gain, fmt.Sprintf("completing %s quiz (%d%%)", s.subject, percent))
	} else {
		log.Debug("attempt %s finished without a signed-in learner, no xp", s.attemptID)
	}
	s.activity.Record(ctx, models.ActivityQuizComplete, fmt.Sprintf("Completed %s quiz", s.subject),
		map[string]any{"score": score, "total": total})

	log.Info("quiz finished: attempt=%s, score=%d/%d, xp=%d", s.attemptID, score, total, gain)
	s.reset()
	return result
}

// Exit abandons the attempt without scoring. It reports whether an attempt
// was in progress.
func (s *Session) Exit(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != InProgress {
		return false
	}
	logger.FromContext(ctx).WithPrefix("quiz").Debug("attempt %s exited at question %d", s.attemptID, s.index)
	s.reset()
	return true
}

func (s *Session) reset() {
	s.state = Idle
	s.attemptID = ""
	s.subject = ""
	s.questions = nil
	s.index = 0
	s.answers = nil
}

// View returns the current question, or false when Idle.
func (s *Session) View() (QuestionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != InProgress {
		return QuestionView{}, false
	}
	return s.view(), true
}

func (s *Session) view() QuestionView {
	q := s.questions[s.index]
	total := len(s.questions)
	return QuestionView{
		AttemptID:       s.attemptID,
		Subject:         s.subject,
		Title:           strings.ToUpper(s.subject[:1]) + s.subject[1:] + " Quiz",
		Index:           s.index,
		Total:           total,
		Prompt:          q.Prompt,
		Options:         append([]string(nil), q.Options...),
		Selected:        s.answers[s.index],
		Progress:        fmt.Sprintf("%d/%d", s.index, total),
		ProgressPercent: (200*s.index + total) / (2 * total),
	}
}
