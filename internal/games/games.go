package games

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/eduplay/internal/models"
)

var (
	ErrNoRound       = errors.New("games: no active round")
	ErrInvalidLetter = errors.New("games: guess must be a single letter A-Z")
)

// Scheduler runs fn once after delay. The returned function cancels it.
type Scheduler interface {
	After(delay time.Duration, name string, fn func(context.Context)) (cancel func())
}

type XPAwarder interface {
	AwardXP(ctx context.Context, userID int64, amount int, reason string) (*models.Profile, bool)
}

type ActivityRecorder interface {
	Record(ctx context.Context, typ models.ActivityType, message string, meta map[string]any) models.ActivityEntry
}

type CurrentUserSource interface {
	CurrentUser(ctx context.Context) (*models.Profile, bool)
}

// pending tracks the one deferred next-round callback a generator may have
// outstanding. Every new round or stop bumps the generation, so a callback
// that slipped past cancellation sees it is stale and does nothing.
type pending struct {
	generation uint64
	cancel     func()
}

func (p *pending) invalidate() {
	p.generation++
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
