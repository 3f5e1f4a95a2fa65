package worker

import (
	"context"
	"sync"
	"time"
)

// Deferred schedules one-shot delayed callbacks and runs them on a Pool, so
// callbacks never run concurrently with each other when the pool has one
// worker.
type Deferred struct {
	pool *Pool
}

func NewDeferred(pool *Pool) *Deferred {
	return &Deferred{pool: pool}
}

// task is a single pending callback. Cancel wins over a timer that has
// already fired but whose job has not run yet.
type task struct {
	mu       sync.Mutex
	canceled bool
	timer    *time.Timer
}

func (t *task) cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.canceled = true
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *task) live() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.canceled
}

// After runs fn on the pool once d has elapsed. The returned function cancels
// the callback; calling it after fn ran is harmless.
func (d *Deferred) After(delay time.Duration, name string, fn func(context.Context)) (cancel func()) {
	t := &task{}
	t.mu.Lock()
	t.timer = time.AfterFunc(delay, func() {
		if !t.live() {
			return
		}
		_ = d.pool.Submit(FuncJob{JobName: name, Fn: func(ctx context.Context) error {
			if t.live() {
				fn(ctx)
			}
			return nil
		}})
	})
	t.mu.Unlock()
	return t.cancel
}
