package services_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/eduplay/internal/models"
	"github.com/vytor/eduplay/internal/services"
	"github.com/vytor/eduplay/internal/store"
)

func isSortedDesc(entries []models.RankedEntry) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i-1].XP < entries[i].XP {
			return false
		}
	}
	return true
}

func TestLeaderboard_SyncLinksByIDAndResorts(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	entry, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 1, Username: "rahulsharma", XP: 100})
	require.True(t, ok)
	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, int64(1), entry.ProfileID)

	list := e.leaderboard.List(ctx)
	assert.True(t, isSortedDesc(list))
	assert.Equal(t, "Rahul Sharma", list[len(list)-1].Username)
	assert.Equal(t, 5, list[len(list)-1].Rank)
}

func TestLeaderboard_SyncPrefersNameMatch(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	entry, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 1, Username: "Neha Mehta", XP: 5000})
	require.True(t, ok)
	assert.Equal(t, int64(4), entry.ID)

	list := e.leaderboard.List(ctx)
	assert.Equal(t, "Neha Mehta", list[0].Username)
	assert.Equal(t, 1, list[0].Rank)
}

func TestLeaderboard_ExplicitLinkSurvivesRename(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 1, Username: "rahulsharma", XP: 2500})
	require.True(t, ok)

	entry, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 1, Username: "Priya Singh", XP: 2600})
	require.True(t, ok)
	assert.Equal(t, int64(1), entry.ID)

	board := store.GetOr(ctx, e.store, store.KeyLeaderboard, models.Leaderboard{})
	for _, row := range board {
		if row.Username == "Priya Singh" {
			assert.Equal(t, 2100, row.XP)
		}
	}
}

func TestLeaderboard_FallsBackToDefaultEntry(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	entry, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 99, Username: "ghost", XP: 10})
	require.True(t, ok)
	assert.Equal(t, int64(1), entry.ID)
	assert.Zero(t, entry.ProfileID)
}

func TestLeaderboard_EmptyBoardIsNoop(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemory())
	svc := services.NewLeaderboardService(st, 1)

	_, ok := svc.Sync(ctx, models.Profile{ID: 1, XP: 10})
	assert.False(t, ok)

	has, err := st.Has(ctx, store.KeyLeaderboard)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestLeaderboard_StableTies(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 5, Username: "Vikram Kumar", XP: 2100})
	require.True(t, ok)

	list := e.leaderboard.List(ctx)
	assert.Equal(t, "Priya Singh", list[1].Username)
	assert.Equal(t, "Vikram Kumar", list[2].Username)
}

func TestLeaderboard_StaysSortedUnderRandomSyncs(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		id := int64(rng.Intn(5) + 1)
		e.leaderboard.Sync(ctx, models.Profile{ID: id, XP: rng.Intn(5000)})
		require.True(t, isSortedDesc(e.leaderboard.List(ctx)))

		stored := store.GetOr(ctx, e.store, store.KeyLeaderboard, models.Leaderboard{})
		for j := 1; j < len(stored); j++ {
			require.GreaterOrEqual(t, stored[j-1].XP, stored[j].XP)
		}
	}
}

func TestLeaderboard_ListOrdersExtremeXP(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	require.NoError(t, e.store.Set(ctx, store.KeyLeaderboard, models.Leaderboard{
		{ID: 1, Username: "low", XP: math.MinInt},
		{ID: 2, Username: "mid", XP: 0},
		{ID: 3, Username: "high", XP: math.MaxInt},
	}))

	list := e.leaderboard.List(ctx)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{list[0].Username, list[1].Username, list[2].Username})
	assert.True(t, isSortedDesc(list))
}

func TestLeaderboard_SyncToMaxXPRanksFirst(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t)

	_, ok := e.leaderboard.Sync(ctx, models.Profile{ID: 5, Username: "Vikram Kumar", XP: math.MaxInt})
	require.True(t, ok)

	list := e.leaderboard.List(ctx)
	assert.Equal(t, "Vikram Kumar", list[0].Username)
	assert.Equal(t, math.MaxInt, list[0].XP)
	assert.True(t, isSortedDesc(list))
}
