package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vytor/eduplay/internal/ui"
)

const Version = "0.1.0"

type options struct {
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "eduplay",
		Short:         "EduPlay admin console",
		Long:          "eduplay inspects and administers the EduPlay learner store: roster, courses, leaderboard and activity feed.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Database path (defaults to DB_PATH)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log engine activity to stderr")

	cmd.AddCommand(
		newSeedCmd(opts),
		newLeaderboardCmd(opts),
		newActivityCmd(opts),
		newUsersCmd(opts),
		newCoursesCmd(opts),
		newCourseCmd(opts),
		newUserCmd(opts),
		newXPCmd(opts),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
