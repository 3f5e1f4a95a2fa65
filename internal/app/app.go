package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/vytor/eduplay/internal/config"
	"github.com/vytor/eduplay/internal/db"
	"github.com/vytor/eduplay/internal/games"
	"github.com/vytor/eduplay/internal/logger"
	"github.com/vytor/eduplay/internal/quiz"
	"github.com/vytor/eduplay/internal/services"
	"github.com/vytor/eduplay/internal/store"
	"github.com/vytor/eduplay/internal/store/sqlite"
	"github.com/vytor/eduplay/internal/worker"
)

// App is the wired engine shared by the HTTP server and the CLI.
type App struct {
	Config      config.Config
	DB          *db.DB
	Store       *store.Store
	Pool        *worker.Pool
	Activity    services.ActivityService
	Leaderboard services.LeaderboardService
	Progression services.ProgressionService
	Auth        services.AuthService
	Catalog     services.CatalogService
	Quiz        *quiz.Session
	Math        *games.Arithmetic
	Word        *games.WordReveal
}

// Open opens the sqlite database at cfg.DBPath and wires the engine over it.
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a, err := New(ctx, cfg, sqlite.NewBackend(database.DB))
	if err != nil {
		database.Close()
		return nil, err
	}
	a.DB = database
	return a, nil
}

// New wires the engine over backend, seeds first-run data and starts the
// deferred-round pool.
func New(ctx context.Context, cfg config.Config, backend store.Backend, opts ...services.ActivityOption) (*App, error) {
	log := logger.FromContext(ctx).WithPrefix("app")

	st := store.New(backend)
	if err := store.EnsureSeed(ctx, st); err != nil {
		log.Warn("seeding incomplete: %v", err)
	}

	pool := worker.NewPool(cfg.SchedulerWorkers, cfg.SchedulerQueueSize)
	pool.Start(logger.NewContext(context.Background(), logger.FromContext(ctx)))
	sched := worker.NewDeferred(pool)

	activity := services.NewActivityService(st, opts...)
	leaderboard := services.NewLeaderboardService(st, cfg.DefaultLeaderboardEntry)
	progression := services.NewProgressionService(st, leaderboard, activity, nil)
	auth := services.NewAuthService(st, activity)

	a := &App{
		Config:      cfg,
		Store:       st,
		Pool:        pool,
		Activity:    activity,
		Leaderboard: leaderboard,
		Progression: progression,
		Auth:        auth,
		Catalog:     services.NewCatalogService(st, activity),
		Quiz:        quiz.NewSession(quiz.DefaultBanks(), progression, activity, auth),
		Math:        games.NewArithmetic(rand.New(rand.NewSource(time.Now().UnixNano())), sched, activity, cfg.MathRoundDelay),
		Word:        games.NewWordReveal(games.DefaultWords(), sched, progression, activity, auth, cfg.WordRoundDelay),
	}
	log.Debug("engine ready")
	return a, nil
}

// Close cancels pending rounds, drains the pool and closes the database.
func (a *App) Close(ctx context.Context) {
	a.Math.Stop(ctx)
	a.Word.Stop(ctx)
	a.Quiz.Exit(ctx)
	a.Pool.Stop()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.FromContext(ctx).WithPrefix("app").Error("failed to close database: %v", err)
		}
	}
}
