package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vytor/eduplay/internal/services"
	"github.com/vytor/eduplay/internal/store"
	"github.com/vytor/eduplay/internal/testutil"
)

type engine struct {
	store       *store.Store
	mem         *store.Memory
	activity    services.ActivityService
	leaderboard services.LeaderboardService
	progression services.ProgressionService
	auth        services.AuthService
	catalog     services.CatalogService
}

func newEngine(t *testing.T, opts ...services.ActivityOption) *engine {
	st, mem := testutil.NewSeededStore(t)
	clock := testutil.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), time.Second)
	opts = append([]services.ActivityOption{services.WithClock(clock.Now)}, opts...)

	activity := services.NewActivityService(st, opts...)
	leaderboard := services.NewLeaderboardService(st, 1)
	return &engine{
		store:       st,
		mem:         mem,
		activity:    activity,
		leaderboard: leaderboard,
		progression: services.NewProgressionService(st, leaderboard, activity, nil),
		auth:        services.NewAuthService(st, activity),
		catalog:     services.NewCatalogService(st, activity),
	}
}

func jsonOf(v any) ([]byte, error) {
	return json.Marshal(v)
}
