package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vytor/eduplay/internal/app"
	"github.com/vytor/eduplay/internal/config"
	"github.com/vytor/eduplay/internal/logger"
)

func openApp(cmd *cobra.Command, opts *options) (context.Context, *app.App, func(), error) {
	cfg := config.Load()
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	level := logger.WARN
	if opts.verbose {
		level = logger.ParseLevel(cfg.LogLevel)
	}
	log := logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(level),
		logger.WithColors(false),
	)
	logger.SetDefault(log)

	ctx := logger.NewContext(context.Background(), log)
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup := func() {
		a.Close(ctx)
	}
	return ctx, a, cleanup, nil
}
