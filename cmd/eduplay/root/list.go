package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vytor/eduplay/internal/progression"
	"github.com/vytor/eduplay/internal/ui"
)

func newLeaderboardCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard ranked by xp",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Leaderboard"))
			for _, e := range a.Leaderboard.List(ctx) {
				fmt.Fprintf(out, "%s %-16s %s %s\n", ui.Rank(e.Rank), e.Username,
					ui.Good.Render(fmt.Sprintf("%d XP", e.XP)), ui.Muted.Render(fmt.Sprintf("grade %d", e.Grade)))
			}
			return nil
		},
	}
}

func newActivityCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show the most recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("-n must be positive (got %d)", limit)
			}
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			entries := a.Activity.Recent(ctx, limit)
			fmt.Fprintln(out, ui.Heading(ui.IconFeed, "Activity"))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no activity yet)"))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s %s\n", ui.Muted.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
					ui.ActivityType(string(e.Type)), e.Message)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}

func newUsersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered learners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconUser, "Users"))
			for _, u := range a.Catalog.Users(ctx) {
				next := progression.XPForLevel(u.Level + 1)
				fmt.Fprintf(out, "- %s %s %s %s %s\n", ui.Key.Render(fmt.Sprintf("#%d", u.ID)), u.DisplayName(),
					ui.Muted.Render(u.Email), ui.Good.Render(fmt.Sprintf("lvl %d, %d XP", u.Level, u.XP)),
					ui.Muted.Render(fmt.Sprintf("(next level at %d XP)", next)))
			}
			return nil
		},
	}
}

func newCoursesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List the course catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, cleanup, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Courses"))
			for _, c := range a.Catalog.Courses(ctx) {
				fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(fmt.Sprintf("#%d", c.ID)), c.Title,
					ui.Muted.Render(fmt.Sprintf("(%s, grade %d, %d lessons)", c.Subject, c.Grade, c.Lessons)))
			}
			return nil
		},
	}
}
