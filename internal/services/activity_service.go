package services

import (
	"context"
	"slices"
	"sync/atomic"
	"time"

	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/store"
)

// ActivityService appends learner events to the persisted feed.
type ActivityService interface {
	Record(ctx context.Context, typ models.ActivityType, message string, meta map[string]any) models.ActivityEntry
	All(ctx context.Context) models.ActivityLog
	Recent(ctx context.Context, n int) []models.ActivityEntry
	Unread() int
	MarkRead()
}

type ActivityOption func(*activityService)

// WithNotifier registers fn to be called after every recorded entry.
func WithNotifier(fn func(models.ActivityEntry)) ActivityOption {
	return func(s *activityService) {
		s.notify = fn
	}
}

// WithClock overrides the time source used for ids and timestamps.
func WithClock(now func() time.Time) ActivityOption {
	return func(s *activityService) {
		s.now = now
	}
}

type activityService struct {
	store  *store.Store
	now    func() time.Time
	notify func(models.ActivityEntry)
	unread atomic.Int64
}

// NewActivityService creates a new ActivityService
func NewActivityService(st *store.Store, opts ...ActivityOption) ActivityService {
	s := &activityService{store: st, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record always appends. The id is the current time in milliseconds, bumped
// past the previous id when the clock has not moved.
func (s *activityService) Record(ctx context.Context, typ models.ActivityType, message string, meta map[string]any) models.ActivityEntry {
	log := logger.FromContext(ctx).WithPrefix("activity")

	if meta == nil {
		meta = map[string]any{}
	}
	now := s.now().UTC()
	entry := models.ActivityEntry{
		Type:      typ,
		Message:   message,
		Meta:      meta,
		Timestamp: now,
	}

	_, err := store.Update(ctx, s.store, store.KeyActivity, models.ActivityLog{}, func(l models.ActivityLog) (models.ActivityLog, error) {
		entry.ID = max(now.UnixMilli(), l.LastID()+1)
		return append(l, entry), nil
	})
	if err != nil {
		log.Warn("activity %s not persisted: %v", typ, err)
	}
	log.Debug("recorded %s: %s", typ, message)

	s.unread.Add(1)
	if s.notify != nil {
		s.notify(entry)
	}
	return entry
}

func (s *activityService) All(ctx context.Context) models.ActivityLog {
	return store.GetOr(ctx, s.store, store.KeyActivity, models.ActivityLog{})
}

// Recent returns at most n entries, newest first.
func (s *activityService) Recent(ctx context.Context, n int) []models.ActivityEntry {
	all := s.All(ctx)
	if n <= 0 {
		return []models.ActivityEntry{}
	}
	if len(all) > n {
		all = all[len(all)-n:]
	}
	out := slices.Clone([]models.ActivityEntry(all))
	slices.Reverse(out)
	return out
}

// Unread is the number of entries recorded since the last MarkRead.
func (s *activityService) Unread() int {
	return int(s.unread.Load())
}

func (s *activityService) MarkRead() {
	s.unread.Store(0)
}
