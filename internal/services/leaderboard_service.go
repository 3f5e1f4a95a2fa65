package services

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/store"
)

var errNoLeaderboardEntry = errors.New("no leaderboard entry for profile")

// LeaderboardService keeps the roster consistent with profile xp.
type LeaderboardService interface {
	Sync(ctx context.Context, profile models.Profile) (models.LeaderboardEntry, bool)
	List(ctx context.Context) []models.RankedEntry
}

type leaderboardService struct {
	store          *store.Store
	defaultEntryID int64
}

// NewLeaderboardService creates a new LeaderboardService. defaultEntryID is
// the entry updated for a profile nothing else resolves to.
func NewLeaderboardService(st *store.Store, defaultEntryID int64) LeaderboardService {
	return &leaderboardService{store: st, defaultEntryID: defaultEntryID}
}

// Sync copies the profile's xp onto its entry and re-sorts the roster by xp,
// descending and stable. The entry is found by explicit link, then by display
// name, then by id, then the default entry. A name or id match is linked to
// the profile so later syncs skip the lookup.
func (s *leaderboardService) Sync(ctx context.Context, profile models.Profile) (models.LeaderboardEntry, bool) {
	log := logger.FromContext(ctx).WithPrefix("leaderboard")

	var synced models.LeaderboardEntry
	_, err := store.Update(ctx, s.store, store.KeyLeaderboard, models.Leaderboard{}, func(lb models.Leaderboard) (models.Leaderboard, error) {
		idx, how := s.resolve(lb, profile)
		if idx < 0 {
			return lb, errNoLeaderboardEntry
		}
		switch how {
		case "name", "id":
			lb[idx].ProfileID = profile.ID
		case "default":
			log.Warn("no entry for profile %d (%s), updating default entry %d", profile.ID, profile.Username, lb[idx].ID)
		}
		lb[idx].XP = profile.XP
		synced = lb[idx]
		log.Debug("synced entry %d by %s: xp=%d", synced.ID, how, synced.XP)

		slices.SortStableFunc(lb, func(a, b models.LeaderboardEntry) int {
			return cmp.Compare(b.XP, a.XP)
		})
		return lb, nil
	})
	if errors.Is(err, errNoLeaderboardEntry) {
		log.Warn("leaderboard has no entry for profile %d, nothing synced", profile.ID)
		return models.LeaderboardEntry{}, false
	}
	if errors.Is(err, store.ErrReadFailure) {
		log.Warn("leaderboard unreadable, profile %d not synced: %v", profile.ID, err)
		return models.LeaderboardEntry{}, false
	}
	if err != nil {
		log.Warn("leaderboard sync not persisted: %v", err)
	}
	return synced, true
}

func (s *leaderboardService) resolve(lb models.Leaderboard, profile models.Profile) (int, string) {
	if i := slices.IndexFunc(lb, func(e models.LeaderboardEntry) bool { return e.ProfileID == profile.ID }); i >= 0 {
		return i, "link"
	}
	name := profile.Username
	if name == "" {
		name = "User " + itoa(profile.ID)
	}
	unlinked := func(e models.LeaderboardEntry) bool { return e.ProfileID == 0 }
	if i := slices.IndexFunc(lb, func(e models.LeaderboardEntry) bool { return unlinked(e) && e.Username == name }); i >= 0 {
		return i, "name"
	}
	if i := slices.IndexFunc(lb, func(e models.LeaderboardEntry) bool { return unlinked(e) && e.ID == profile.ID }); i >= 0 {
		return i, "id"
	}
	if i := slices.IndexFunc(lb, func(e models.LeaderboardEntry) bool { return e.ID == s.defaultEntryID }); i >= 0 {
		return i, "default"
	}
	return -1, ""
}

// List returns the roster in rank order. Stored order is already sorted, but
// hand-edited data may not be.
func (s *leaderboardService) List(ctx context.Context) []models.RankedEntry {
	lb := store.GetOr(ctx, s.store, store.KeyLeaderboard, models.Leaderboard{})
	slices.SortStableFunc(lb, func(a, b models.LeaderboardEntry) int {
		return cmp.Compare(b.XP, a.XP)
	})

	out := make([]models.RankedEntry, len(lb))
	for i, e := range lb {
		out[i] = models.RankedEntry{Rank: i + 1, LeaderboardEntry: e}
	}
	return out
}
