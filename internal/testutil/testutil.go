package testutil

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/vytor/eduplay/internal/db"
	"github.com/vytor/eduplay/internal/store"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It is pinned to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *sql.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), sqlDB), "failed to apply migrations")
	return sqlDB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// NewSeededStore returns a memory-backed store holding the first-run data.
func NewSeededStore(t *testing.T) (*store.Store, *store.Memory) {
	mem := store.NewMemory()
	s := store.New(mem)
	require.NoError(t, store.EnsureSeed(context.Background(), s))
	return s, mem
}

// FlakyBackend wraps a backend and fails the next n loads of chosen keys.
type FlakyBackend struct {
	store.Backend

	mu       sync.Mutex
	failures map[string]int
}

func NewFlakyBackend(inner store.Backend) *FlakyBackend {
	return &FlakyBackend{Backend: inner, failures: map[string]int{}}
}

// FailLoads makes the next n loads of key return an error.
func (b *FlakyBackend) FailLoads(key string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[key] += n
}

func (b *FlakyBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	if b.failures[key] > 0 {
		b.failures[key]--
		b.mu.Unlock()
		return nil, false, errors.New("database is locked")
	}
	b.mu.Unlock()
	return b.Backend.Load(ctx, key)
}

// FakeClock returns successive instants starting at start, each step apart.
type FakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func NewFakeClock(start time.Time, step time.Duration) *FakeClock {
	return &FakeClock{now: start, step: step}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// FakeScheduler records deferred callbacks instead of running them on a
// timer. Tests fire them explicitly.
type FakeScheduler struct {
	mu    sync.Mutex
	tasks []*FakeTask
}

type FakeTask struct {
	Name     string
	Delay    time.Duration
	Canceled bool
	Ran      bool
	fn       func(context.Context)
}

func (s *FakeScheduler) After(delay time.Duration, name string, fn func(context.Context)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &FakeTask{Name: name, Delay: delay, fn: fn}
	s.tasks = append(s.tasks, task)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.Canceled = true
	}
}

// Tasks returns every callback scheduled so far.
func (s *FakeScheduler) Tasks() []*FakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*FakeTask(nil), s.tasks...)
}

// Pending returns callbacks that are neither canceled nor run.
func (s *FakeScheduler) Pending() []*FakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*FakeTask
	for _, t := range s.tasks {
		if !t.Canceled && !t.Ran {
			out = append(out, t)
		}
	}
	return out
}

// FireAll runs every pending callback in scheduling order.
func (s *FakeScheduler) FireAll(ctx context.Context) int {
	n := 0
	for _, t := range s.Pending() {
		s.Fire(ctx, t)
		n++
	}
	return n
}

// Fire runs task regardless of cancellation, as a timer racing a cancel would.
func (s *FakeScheduler) Fire(ctx context.Context, task *FakeTask) {
	s.mu.Lock()
	task.Ran = true
	s.mu.Unlock()
	task.fn(ctx)
}
