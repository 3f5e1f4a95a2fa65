package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/eduplay/internal/api"
	"github.com/vytor/eduplay/internal/app"
	"github.com/vytor/eduplay/internal/config"
	"github.com/vytor/eduplay/internal/logger"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("EduPlay Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("activity_feed_size=%d", cfg.ActivityFeedSize)
	log.Debug("math_round_delay=%v", cfg.MathRoundDelay)
	log.Debug("word_round_delay=%v", cfg.WordRoundDelay)
	log.Debug("default_leaderboard_entry=%d", cfg.DefaultLeaderboardEntry)
	log.Debug("scheduler_workers=%d", cfg.SchedulerWorkers)
	log.Debug("scheduler_queue_size=%d", cfg.SchedulerQueueSize)

	ctx := logger.NewContext(context.Background(), log)

	engine, err := app.Open(ctx, cfg)
	if err != nil {
		log.Error("failed to open engine: %v", err)
		os.Exit(1)
	}

	srv := api.NewServer(engine)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping games and scheduler pool")
	engine.Close(ctx)

	log.Info("===========================================")
	log.Info("EduPlay Server Stopped")
	log.Info("===========================================")
}
