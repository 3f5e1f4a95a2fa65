package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/eduplay/internal/app"
	"github.com/vytor/eduplay/internal/store/sqlite"
	"github.com/vytor/eduplay/internal/ui"
)

// newSeedCmd opens the store, which writes any missing first-run data, and
// reports what is there.
func newSeedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write first-run sample data where it is missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSeed, "Store ready"))
			fmt.Fprintln(out, ui.LabelValue("Users", len(a.Catalog.Users(ctx))))
			fmt.Fprintln(out, ui.LabelValue("Courses", len(a.Catalog.Courses(ctx))))
			fmt.Fprintln(out, ui.LabelValue("Leaderboard", len(a.Leaderboard.List(ctx))))
			fmt.Fprintln(out, ui.LabelValue("Activity", len(a.Activity.All(ctx))))
			return printKeys(ctx, cmd, a)
		},
	}
	return cmd
}

// printKeys lists the stored keys, with their last write time when the store
// is backed by sqlite.
func printKeys(ctx context.Context, cmd *cobra.Command, a *app.App) error {
	keys, err := a.Store.Keys(ctx)
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}

	var backend *sqlite.Backend
	if a.DB != nil {
		backend = sqlite.NewBackend(a.DB.DB)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconKey, "Keys"))
	for _, key := range keys {
		line := "- " + ui.Key.Render(key)
		if backend != nil {
			at, ok, err := backend.UpdatedAt(ctx, key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", key, err)
			}
			if ok {
				line += " " + ui.Muted.Render("updated "+at.Local().Format("2006-01-02 15:04:05"))
			}
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
